package core

import "strings"

// Action is a logical control, independent of the key bound to it
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionAttack
	ActionInteract
	ActionMax
)

var actionNames = [ActionMax]string{
	ActionUp:       "up",
	ActionDown:     "down",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionAttack:   "attack",
	ActionInteract: "interact",
}

func (a Action) String() string {
	if a < ActionMax {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction resolves a logical action name, case-insensitively
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return ActionMax, false
}

// ActionSet is the set of actions held during one frame
type ActionSet uint16

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s ActionSet) Has(a Action) bool { return a < ActionMax && s&(1<<a) != 0 }

func (s ActionSet) With(a Action) ActionSet {
	if a >= ActionMax {
		return s
	}
	return s | 1<<a
}

func (s ActionSet) Without(a Action) ActionSet { return s &^ (1 << a) }

// Direction returns the unnormalized movement direction of the held keys.
// Opposing keys do not cancel: down overrides up and right overrides left.
func (s ActionSet) Direction() Vec2 {
	var d Vec2
	if s.Has(ActionUp) {
		d.Y = -1
	}
	if s.Has(ActionDown) {
		d.Y = 1
	}
	if s.Has(ActionLeft) {
		d.X = -1
	}
	if s.Has(ActionRight) {
		d.X = 1
	}
	return d
}

func (s ActionSet) String() string {
	var names []string
	for a := Action(0); a < ActionMax; a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// ActionSource produces the held-action snapshot for a frame
type ActionSource interface {
	Actions() ActionSet
}

// ActionSourceFunc adapts a function to ActionSource
type ActionSourceFunc func() ActionSet

func (f ActionSourceFunc) Actions() ActionSet { return f() }
