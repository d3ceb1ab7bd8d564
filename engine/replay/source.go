package replay

import "github.com/1siamBot/dungeon-engine/engine/core"

// Recorder wraps an action source and records every change of the held
// set. The world polls its source once per tick, so each call to Actions
// is one tick.
type Recorder struct {
	src    core.ActionSource
	replay *Replay
	tick   uint64
	last   core.ActionSet
}

func NewRecorder(src core.ActionSource, seed uint64, dt float64) *Recorder {
	return &Recorder{src: src, replay: &Replay{Seed: seed, DT: dt}}
}

func (r *Recorder) Actions() core.ActionSet {
	var held core.ActionSet
	if r.src != nil {
		held = r.src.Actions()
	}
	if held != r.last || (r.tick == 0 && held != 0) {
		r.replay.Changes = append(r.replay.Changes, Change{Tick: r.tick, Actions: held})
		r.last = held
	}
	r.tick++
	r.replay.Ticks = r.tick
	return held
}

// Replay returns the recording so far
func (r *Recorder) Replay() *Replay { return r.replay }

// Player feeds a recording back as an action source
type Player struct {
	replay *Replay
	tick   uint64
	next   int
	held   core.ActionSet
}

func NewPlayer(r *Replay) *Player { return &Player{replay: r} }

func (p *Player) Actions() core.ActionSet {
	for p.next < len(p.replay.Changes) && p.replay.Changes[p.next].Tick <= p.tick {
		p.held = p.replay.Changes[p.next].Actions
		p.next++
	}
	p.tick++
	return p.held
}

// Done reports whether every recorded tick has been played
func (p *Player) Done() bool { return p.tick >= p.replay.Ticks }
