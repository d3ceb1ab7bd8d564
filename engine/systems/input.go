package systems

import "github.com/1siamBot/dungeon-engine/engine/core"

// InputSystem copies the frame's held actions into every Input component
type InputSystem struct{}

func (s *InputSystem) Update(ctx *core.UpdateContext) {
	for _, entry := range core.Entries[*core.Input](ctx.Components) {
		entry.Value.Held = ctx.Input
	}
}
