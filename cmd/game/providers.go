package main

import (
	"github.com/google/wire"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/input"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/render"
	"github.com/1siamBot/dungeon-engine/engine/scene"
)

var providerSet = wire.NewSet(
	config.LoadFile,
	provideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	provideKeyboard,
	wire.Bind(new(core.ActionSource), new(*input.Keyboard)),
	render.NewSpriteManager,
	provideRenderer,
	scene.NewManager,
	NewGame,
)

func provideLogger(s *config.Settings) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	l, err := log.New(level, s.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

func provideKeyboard(s *config.Settings) (*input.Keyboard, error) {
	bindings, err := s.Bindings()
	if err != nil {
		return nil, err
	}
	return input.NewKeyboard(bindings)
}

func provideRenderer(s *config.Settings, sprites *render.SpriteManager) *render.Renderer {
	return render.NewRenderer(s.Window.Width, s.Window.Height, sprites)
}
