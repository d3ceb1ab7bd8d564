package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/dungeon-engine/engine/log"
)

func main() {
	configPath := flag.String("config", "", "settings file (YAML); built-in defaults when empty")
	flag.Parse()

	game, cleanup, err := initGame(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dungeon: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ebiten.SetWindowSize(game.settings.Window.Width, game.settings.Window.Height)
	ebiten.SetWindowTitle(game.settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		game.log.Error("game exited", log.Error(err))
		cleanup()
		os.Exit(1)
	}
}
