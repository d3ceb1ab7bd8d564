// Command term plays the dungeon in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/scene"
	"github.com/1siamBot/dungeon-engine/engine/termui"
)

type app struct {
	screen tcell.Screen
	keys   *termui.KeySource
	view   *termui.View
	scenes *scene.Manager
	loop   *core.GameLoop
	log    log.Log
}

func main() {
	configPath := flag.String("config", "", "settings file (YAML); built-in defaults when empty")
	logPath := flag.String("log", "dungeon-term.log", "log file; the terminal is owned by the game")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "dungeon-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	settings, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := newFileLogger(settings, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	bindings, err := settings.Bindings()
	if err != nil {
		return err
	}
	keys, err := termui.NewKeySource(bindings)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	a := &app{
		screen: screen,
		keys:   keys,
		scenes: scene.NewManager(keys, logger),
		log:    logger,
	}
	cols, rows := screen.Size()
	tile := settings.Level.TileSize
	a.view = termui.NewView(cols, rows, tile/2, tile)
	a.loop = core.NewGameLoop(a.scenes.Update, settings.Loop.TickRate, settings.Loop.MaxFrameTime)

	if err := a.scenes.Load(scene.NewGameScene(settings, logger)); err != nil {
		return err
	}
	a.loop.Play()
	a.run()
	logger.Info("terminal session ended", log.Uint64("steps", a.loop.Steps()))
	return nil
}

func newFileLogger(s *config.Settings, path string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := log.NewWriter(level, s.Log.Encoding, f)
	return l, func() {
		_ = l.Sync()
		_ = f.Close()
	}, nil
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.loop.Update()
			a.checkGameOver()
			if w := a.scenes.World(); w != nil {
				a.view.Render(w)
				a.status()
				a.view.Draw(a.screen)
			}
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P'):
			a.togglePause()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R') && a.loop.State == core.StateGameOver:
			a.restart()
		default:
			a.keys.HandleEvent(ev)
		}
	case *tcell.EventResize:
		cols, rows := a.screen.Size()
		a.view.Resize(cols, rows)
		a.screen.Sync()
	}
	return true
}

func (a *app) togglePause() {
	switch a.loop.State {
	case core.StatePlaying:
		a.loop.Pause()
		a.keys.Release()
	case core.StatePaused:
		a.loop.Play()
	}
}

func (a *app) restart() {
	s, ok := a.scenes.Active().(*scene.GameScene)
	if !ok {
		return
	}
	a.keys.Release()
	if err := a.scenes.Load(scene.NewGameScene(s.Settings, a.log)); err != nil {
		a.log.Error("restart failed", log.Error(err))
		return
	}
	a.loop.Play()
}

func (a *app) checkGameOver() {
	w := a.scenes.World()
	if w == nil || a.loop.State != core.StatePlaying || w.Entities.Has(w.Player) {
		return
	}
	a.loop.State = core.StateGameOver
	a.log.Info("player died", log.Uint64("steps", a.loop.Steps()))
}

func (a *app) status() {
	var msg string
	switch a.loop.State {
	case core.StatePaused:
		msg = "PAUSED  p resume  esc quit"
	case core.StateGameOver:
		msg = "GAME OVER  r restart  esc quit"
	default:
		return
	}
	a.view.Text(0, 1, msg, termui.White)
}
