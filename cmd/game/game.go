package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/input"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/render"
	"github.com/1siamBot/dungeon-engine/engine/scene"
)

// Game implements ebiten.Game
type Game struct {
	settings *config.Settings
	log      log.Log
	scenes   *scene.Manager
	loop     *core.GameLoop
	renderer *render.Renderer
	keyboard *input.Keyboard
}

func NewGame(s *config.Settings, l log.Log, scenes *scene.Manager, r *render.Renderer, kb *input.Keyboard) (*Game, error) {
	g := &Game{
		settings: s,
		log:      l,
		scenes:   scenes,
		renderer: r,
		keyboard: kb,
	}
	g.loop = core.NewGameLoop(scenes.Update, s.Loop.TickRate, s.Loop.MaxFrameTime)
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) start() error {
	if err := g.scenes.Load(scene.NewGameScene(g.settings, g.log)); err != nil {
		return err
	}
	g.loop.Play()
	g.log.Info("frame loop started",
		log.Float64("tickRate", g.loop.TickRate),
		log.Float64("maxFrameTime", g.loop.MaxFrameTime),
	)
	return nil
}

func (g *Game) Update() error {
	switch {
	case input.IsKeyJustPressed(ebiten.KeyEscape), input.IsKeyJustPressed(ebiten.KeyP):
		g.togglePause()
	case g.loop.State == core.StateGameOver && (input.IsKeyJustPressed(ebiten.KeyR) || g.keyboard.JustPressed(core.ActionInteract)):
		if err := g.start(); err != nil {
			g.log.Error("restart failed", log.Error(err))
		}
	}

	g.loop.Update()

	if w := g.scenes.World(); w != nil && g.loop.State == core.StatePlaying && !w.Entities.Has(w.Player) {
		g.loop.State = core.StateGameOver
		g.log.Info("frame loop stopped", log.Uint64("steps", g.loop.Steps()), log.Stringer("state", g.loop.State))
	}
	return nil
}

func (g *Game) togglePause() {
	switch g.loop.State {
	case core.StatePlaying:
		g.loop.Pause()
	case core.StatePaused:
		g.loop.Play()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.scenes.World()
	if w == nil {
		return
	}
	g.renderer.Draw(screen, w)
	g.renderer.DrawHUD(screen, w, g.loop.State)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.Camera.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
