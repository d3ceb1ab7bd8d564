package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

func TestGameLoopVariableStep(t *testing.T) {
	var steps []float64
	gl := core.NewGameLoop(func(dt float64) { steps = append(steps, dt) }, 0, 0.25)

	gl.Advance(0.5)
	assert.Empty(t, steps, "no steps before Play")

	gl.Play()
	gl.Advance(0.125)
	gl.Advance(1)

	assert.Equal(t, []float64{0.125, 0.25}, steps)
}

func TestGameLoopFixedStep(t *testing.T) {
	n := 0
	gl := core.NewGameLoop(func(dt float64) {
		assert.Equal(t, 0.0625, dt)
		n++
	}, 16, 0.25)
	gl.Play()

	alpha := gl.Advance(0.15625)

	assert.Equal(t, 2, n)
	assert.InDelta(t, 0.5, alpha, 1e-9)

	gl.Pause()
	gl.Advance(0.25)
	assert.Equal(t, 2, n)
	assert.EqualValues(t, 2, gl.Steps())
}

func TestGameLoopUpdateUsesClock(t *testing.T) {
	now := time.Unix(100, 0)
	var got float64
	gl := core.NewGameLoop(func(dt float64) { got = dt }, 0, 0.25)
	gl.Now = func() time.Time { return now }
	gl.Play()

	now = now.Add(100 * time.Millisecond)
	gl.Update()

	assert.InDelta(t, 0.1, got, 1e-9)
}
