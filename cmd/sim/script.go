package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

type segment struct {
	actions core.ActionSet
	seconds float64
}

// script replays held actions over simulated time. Past its end it holds
// nothing.
type script struct {
	segments []segment
	elapsed  float64
}

// parseScript reads "right+attack:1.5,idle:0.5,down:2". The action name
// "idle" holds nothing.
func parseScript(s string) (*script, error) {
	sc := &script{}
	if strings.TrimSpace(s) == "" {
		return sc, nil
	}
	for _, part := range strings.Split(s, ",") {
		names, dur, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("script segment %q: missing duration", part)
		}
		seconds, err := strconv.ParseFloat(dur, 64)
		if err != nil || seconds < 0 {
			return nil, fmt.Errorf("script segment %q: bad duration", part)
		}
		var set core.ActionSet
		for _, name := range strings.Split(names, "+") {
			if name == "idle" {
				continue
			}
			a, ok := core.ParseAction(name)
			if !ok {
				return nil, fmt.Errorf("script segment %q: unknown action %q", part, name)
			}
			set = set.With(a)
		}
		sc.segments = append(sc.segments, segment{actions: set, seconds: seconds})
	}
	return sc, nil
}

// Advance moves the script clock forward by dt seconds
func (sc *script) Advance(dt float64) { sc.elapsed += dt }

func (sc *script) Actions() core.ActionSet {
	t := sc.elapsed
	for _, seg := range sc.segments {
		if t < seg.seconds {
			return seg.actions
		}
		t -= seg.seconds
	}
	return 0
}

// Duration is the total scripted time
func (sc *script) Duration() float64 {
	var total float64
	for _, seg := range sc.segments {
		total += seg.seconds
	}
	return total
}
