package systems

import (
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
)

// DefaultInteractionDistance grows the player's box when testing prop reach
const DefaultInteractionDistance = 25

// InteractionSystem fires a prop once per press of the interact action
// while the player is within reach of it.
type InteractionSystem struct {
	Distance float64
	Log      log.Log
}

func NewInteractionSystem(distance float64, l log.Log) *InteractionSystem {
	return &InteractionSystem{Distance: distance, Log: log.OrNop(l)}
}

func (s *InteractionSystem) Update(ctx *core.UpdateContext) {
	if !ctx.HasPlayer() {
		return
	}
	player, ok := bounds(ctx, ctx.Player)
	if !ok {
		return
	}
	reach := player.Expand(s.Distance)

	held := ctx.Input.Has(core.ActionInteract)
	if in, ok := core.Get[*core.Input](ctx.Components, ctx.Player); ok {
		held = in.Held.Has(core.ActionInteract)
	}

	for _, entry := range core.Entries[*core.Prop](ctx.Components) {
		prop := entry.Value
		box, ok := bounds(ctx, entry.Entity)
		if !ok {
			continue
		}
		prop.InReach = reach.Overlaps(box)

		if !held {
			prop.Fired = false
			continue
		}
		if !prop.InReach || prop.Fired {
			continue
		}
		prop.Fired = true
		if prop.OnInteract != nil {
			prop.OnInteract(ctx, entry.Entity)
		}
		ctx.Emit(core.EvtPropInteracted, core.PropInteracted{Prop: entry.Entity, Player: ctx.Player})
		s.Log.Debug("prop interacted", log.Uint64("prop", uint64(entry.Entity)))
	}
}
