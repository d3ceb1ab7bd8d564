package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "loading"
	}
}

// GameLoop turns wall-clock frames into simulation steps. With a zero
// TickRate every frame is one variable step; otherwise steps are fixed.
type GameLoop struct {
	Step         func(dt float64)
	State        GameState
	TickRate     float64 // fixed steps per second, 0 for variable
	MaxFrameTime float64 // seconds
	Now          func() time.Time
	accumulator  float64
	lastTime     time.Time
	steps        uint64
}

// NewGameLoop creates a paused-in-loading loop that calls step
func NewGameLoop(step func(dt float64), tickRate, maxFrameTime float64) *GameLoop {
	if maxFrameTime <= 0 {
		maxFrameTime = 0.25
	}
	return &GameLoop{
		Step:         step,
		TickRate:     tickRate,
		MaxFrameTime: maxFrameTime,
		Now:          time.Now,
	}
}

// Update should be called every render frame. It returns the interpolation
// alpha for fixed-step loops and 0 otherwise.
func (gl *GameLoop) Update() float64 {
	now := gl.Now()
	if gl.lastTime.IsZero() {
		gl.lastTime = now
	}
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance runs the simulation for frameTime seconds of wall time
func (gl *GameLoop) Advance(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > gl.MaxFrameTime {
		frameTime = gl.MaxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}
	if gl.State != StatePlaying {
		return 0
	}

	if gl.TickRate <= 0 {
		gl.step(frameTime)
		return 0
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime
	for gl.accumulator >= dt {
		gl.step(dt)
		gl.accumulator -= dt
	}
	return gl.accumulator / dt
}

func (gl *GameLoop) step(dt float64) {
	if gl.Step != nil {
		gl.Step(dt)
	}
	gl.steps++
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
	gl.accumulator = 0
}

// Steps returns the number of simulation steps taken
func (gl *GameLoop) Steps() uint64 {
	return gl.steps
}
