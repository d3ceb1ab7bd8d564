package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// short names accepted in config on top of ebiten's own key names
var aliases = map[string]ebiten.Key{
	"up":     ebiten.KeyArrowUp,
	"down":   ebiten.KeyArrowDown,
	"left":   ebiten.KeyArrowLeft,
	"right":  ebiten.KeyArrowRight,
	"space":  ebiten.KeySpace,
	"enter":  ebiten.KeyEnter,
	"esc":    ebiten.KeyEscape,
	"escape": ebiten.KeyEscape,
	"shift":  ebiten.KeyShift,
	"ctrl":   ebiten.KeyControl,
	"tab":    ebiten.KeyTab,
}

// ParseKey resolves a config key name such as "w", "space" or "ArrowUp"
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	if k, ok := aliases[strings.ToLower(name)]; ok {
		return k, nil
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("input: unknown key %q", name)
	}
	return k, nil
}

// Keyboard polls ebiten's keyboard state and maps it to logical actions.
// It is read once per tick by the world.
type Keyboard struct {
	bindings map[core.Action][]ebiten.Key

	// Pressed reports whether a key is down, ebiten.IsKeyPressed by default
	Pressed func(ebiten.Key) bool
}

// NewKeyboard builds a keyboard source from action -> key name bindings
func NewKeyboard(bindings map[core.Action][]string) (*Keyboard, error) {
	kb := &Keyboard{
		bindings: make(map[core.Action][]ebiten.Key, len(bindings)),
		Pressed:  ebiten.IsKeyPressed,
	}
	for action, names := range bindings {
		for _, name := range names {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("bind %s: %w", action, err)
			}
			kb.bindings[action] = append(kb.bindings[action], k)
		}
	}
	return kb, nil
}

// Actions returns every action with at least one bound key held
func (kb *Keyboard) Actions() core.ActionSet {
	var set core.ActionSet
	for action, keys := range kb.bindings {
		for _, k := range keys {
			if kb.Pressed(k) {
				set = set.With(action)
				break
			}
		}
	}
	return set
}

// JustPressed reports whether any key bound to a was pressed this frame
func (kb *Keyboard) JustPressed(a core.Action) bool {
	for _, k := range kb.bindings[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsKeyJustPressed returns true if key was just pressed this frame
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
