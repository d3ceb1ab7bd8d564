package termui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat event. Terminals report no key releases.
const DefaultHoldWindow = 150 * time.Millisecond

type key struct {
	code tcell.Key
	r    rune
}

var namedKeys = map[string]key{
	"space":  {tcell.KeyRune, ' '},
	"up":     {tcell.KeyUp, 0},
	"down":   {tcell.KeyDown, 0},
	"left":   {tcell.KeyLeft, 0},
	"right":  {tcell.KeyRight, 0},
	"enter":  {tcell.KeyEnter, 0},
	"esc":    {tcell.KeyEscape, 0},
	"escape": {tcell.KeyEscape, 0},
	"tab":    {tcell.KeyTab, 0},
}

func parseKey(name string) (key, error) {
	name = strings.TrimSpace(name)
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return k, nil
	}
	if r := []rune(name); len(r) == 1 {
		return key{tcell.KeyRune, toLower(r[0])}, nil
	}
	for code, n := range tcell.KeyNames {
		if strings.EqualFold(n, name) {
			return key{code, 0}, nil
		}
	}
	return key{}, fmt.Errorf("termui: unknown key %q", name)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

// KeySource turns terminal key events into held actions. Events arrive on
// the polling goroutine while Actions is read by the frame loop.
type KeySource struct {
	Hold time.Duration
	Now  func() time.Time

	mu       sync.Mutex
	bindings map[key]core.Action
	pressed  [core.ActionMax]time.Time
}

// NewKeySource maps action -> key name bindings
func NewKeySource(bindings map[core.Action][]string) (*KeySource, error) {
	ks := &KeySource{
		Hold:     DefaultHoldWindow,
		Now:      time.Now,
		bindings: make(map[key]core.Action),
	}
	for action, names := range bindings {
		for _, name := range names {
			k, err := parseKey(name)
			if err != nil {
				return nil, fmt.Errorf("bind %s: %w", action, err)
			}
			ks.bindings[k] = action
		}
	}
	return ks, nil
}

// HandleEvent records a key event; it reports whether the key is bound
func (ks *KeySource) HandleEvent(ev *tcell.EventKey) bool {
	return ks.Press(ev.Key(), ev.Rune())
}

// Press records a key press by code and rune
func (ks *KeySource) Press(code tcell.Key, r rune) bool {
	k := key{code: code}
	if code == tcell.KeyRune {
		k.r = toLower(r)
	}
	action, ok := ks.bindings[k]
	if !ok {
		return false
	}
	ks.mu.Lock()
	ks.pressed[action] = ks.Now()
	ks.mu.Unlock()
	return true
}

// Actions returns the actions pressed within the hold window
func (ks *KeySource) Actions() core.ActionSet {
	now := ks.Now()
	ks.mu.Lock()
	defer ks.mu.Unlock()
	var set core.ActionSet
	for a := core.Action(0); a < core.ActionMax; a++ {
		t := ks.pressed[a]
		if !t.IsZero() && now.Sub(t) <= ks.Hold {
			set = set.With(a)
		}
	}
	return set
}

// Release forgets every press
func (ks *KeySource) Release() {
	ks.mu.Lock()
	ks.pressed = [core.ActionMax]time.Time{}
	ks.mu.Unlock()
}
