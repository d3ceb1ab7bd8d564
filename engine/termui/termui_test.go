package termui_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/termui"
)

func newKeys(t *testing.T) (*termui.KeySource, *time.Time) {
	t.Helper()
	ks, err := termui.NewKeySource(map[core.Action][]string{
		core.ActionUp:       {"w", "up"},
		core.ActionAttack:   {"space"},
		core.ActionInteract: {"E"},
	})
	require.NoError(t, err)
	now := time.Unix(100, 0)
	ks.Now = func() time.Time { return now }
	return ks, &now
}

func TestKeySourceHoldWindow(t *testing.T) {
	ks, now := newKeys(t)

	assert.True(t, ks.Press(tcell.KeyRune, 'W'))
	assert.True(t, ks.Actions().Has(core.ActionUp))

	*now = now.Add(termui.DefaultHoldWindow)
	assert.True(t, ks.Actions().Has(core.ActionUp), "still held at the window edge")

	*now = now.Add(time.Millisecond)
	assert.False(t, ks.Actions().Has(core.ActionUp))
}

func TestKeySourceBindings(t *testing.T) {
	ks, _ := newKeys(t)

	assert.True(t, ks.Press(tcell.KeyUp, 0))
	assert.True(t, ks.Press(tcell.KeyRune, ' '))
	assert.True(t, ks.Press(tcell.KeyRune, 'e'))
	assert.False(t, ks.Press(tcell.KeyRune, 'x'))

	assert.Equal(t, core.NewActionSet(core.ActionUp, core.ActionAttack, core.ActionInteract), ks.Actions())

	ks.Release()
	assert.Equal(t, core.ActionSet(0), ks.Actions())
}

func TestKeySourceUnknownKey(t *testing.T) {
	_, err := termui.NewKeySource(map[core.Action][]string{core.ActionUp: {"hyperspace"}})
	assert.Error(t, err)
}

func TestViewRasterizes(t *testing.T) {
	w := core.NewWorld()
	w.Player = w.Spawn(core.NewTransform(0, 0),
		&core.Renderable{Shape: core.ShapeRect, Width: 20, Height: 20, Color: "#f00"},
		&core.Health{Current: 7, Max: 10})
	w.Spawn(core.NewTransform(20, 0),
		&core.Renderable{Shape: core.ShapeCircle, Width: 10, Height: 10, Color: "#0f0", Z: 1})
	w.Spawn(core.NewTransform(-20, 0),
		&core.Renderable{Shape: core.ShapeRect, Width: 10, Height: 10, Color: "#00f", Hidden: true})
	// camera at the origin puts world (0,0) at column 4, row 2
	w.Spawn(core.NewTransform(0, 0), &core.Camera{})

	v := termui.NewView(8, 4, 10, 10)
	v.Render(w)

	red := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, termui.Cell{Rune: '█', Color: red}, v.At(4, 2))
	assert.Equal(t, termui.Cell{Rune: '█', Color: red}, v.At(5, 3))
	assert.Equal(t, '●', v.At(6, 2).Rune)
	assert.Equal(t, rune(0), v.At(2, 2).Rune, "hidden entities are skipped")
	assert.Equal(t, 'H', v.At(0, 0).Rune)
	assert.Equal(t, '7', v.At(3, 0).Rune)
}

func TestViewHudWithoutPlayer(t *testing.T) {
	v := termui.NewView(10, 1, 10, 10)
	v.Render(core.NewWorld())

	assert.Equal(t, 'Y', v.At(0, 0).Rune)
	assert.Equal(t, termui.Cell{}, v.At(-1, 0))
}

func TestViewDrawsToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 2)

	v := termui.NewView(10, 2, 10, 10)
	v.Render(core.NewWorld())
	assert.NotPanics(t, func() { v.Draw(screen) })
}
