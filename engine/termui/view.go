package termui

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/render/palette"
)

// Cell is one terminal character of a frame
type Cell struct {
	Rune  rune
	Color color.RGBA
}

// White is the HUD text color
var White = color.RGBA{255, 255, 255, 255}

var glyphs = map[core.Shape]rune{
	core.ShapeRect:   '█',
	core.ShapeCircle: '●',
	core.ShapeSprite: '▓',
}

// View rasterizes a world into terminal cells. A cell covers CellW x CellH
// world pixels; terminal cells are about twice as tall as they are wide.
type View struct {
	CellW, CellH float64
	Cols, Rows   int

	cells []Cell
}

func NewView(cols, rows int, cellW, cellH float64) *View {
	v := &View{CellW: cellW, CellH: cellH}
	v.Resize(cols, rows)
	return v
}

func (v *View) Resize(cols, rows int) {
	v.Cols, v.Rows = max(cols, 0), max(rows, 0)
	v.cells = make([]Cell, v.Cols*v.Rows)
}

// At returns the cell at column x, row y
func (v *View) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= v.Cols || y >= v.Rows {
		return Cell{}
	}
	return v.cells[y*v.Cols+x]
}

// Render rasterizes w centered on its camera entity, or on the player
func (v *View) Render(w *core.World) {
	clear(v.cells)
	center := v.center(w)
	// world position of the top-left cell
	ox := center.X - float64(v.Cols)*v.CellW/2
	oy := center.Y - float64(v.Rows)*v.CellH/2

	items := core.Entries[*core.Renderable](w.Components)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value.Z < items[j].Value.Z })
	for _, it := range items {
		r := it.Value
		if r.Hidden {
			continue
		}
		tr, ok := core.Get[*core.Transform](w.Components, it.Entity)
		if !ok {
			continue
		}
		x0 := int(math.Floor((tr.Position.X - ox) / v.CellW))
		y0 := int(math.Floor((tr.Position.Y - oy) / v.CellH))
		x1 := int(math.Ceil((tr.Position.X+r.Width-ox)/v.CellW)) - 1
		y1 := int(math.Ceil((tr.Position.Y+r.Height-oy)/v.CellH)) - 1
		cell := Cell{Rune: glyphs[r.Shape], Color: palette.Lookup(r.Color)}
		for y := max(y0, 0); y <= min(y1, v.Rows-1); y++ {
			for x := max(x0, 0); x <= min(x1, v.Cols-1); x++ {
				v.cells[y*v.Cols+x] = cell
			}
		}
	}

	v.hud(w)
}

func (v *View) center(w *core.World) core.Vec2 {
	for _, cam := range core.Entries[*core.Camera](w.Components) {
		if tr, ok := core.Get[*core.Transform](w.Components, cam.Entity); ok {
			return tr.Position
		}
	}
	if tr, ok := core.Get[*core.Transform](w.Components, w.Player); ok {
		return tr.Position
	}
	return core.Vec2{}
}

func (v *View) hud(w *core.World) {
	msg := "YOU DIED"
	if hp, ok := core.Get[*core.Health](w.Components, w.Player); ok {
		msg = fmt.Sprintf("HP %d/%d", hp.Current, hp.Max)
	}
	v.Text(0, 0, msg, White)
}

// Text writes s into row y from column x, clipped to the view
func (v *View) Text(x, y int, s string, clr color.RGBA) {
	if y < 0 || y >= v.Rows {
		return
	}
	for _, r := range s {
		if x >= v.Cols {
			return
		}
		if x >= 0 {
			v.cells[y*v.Cols+x] = Cell{Rune: r, Color: clr}
		}
		x++
	}
}

// Draw copies the view onto screen and shows it
func (v *View) Draw(screen tcell.Screen) {
	screen.Clear()
	for y := 0; y < v.Rows; y++ {
		for x := 0; x < v.Cols; x++ {
			c := v.cells[y*v.Cols+x]
			if c.Rune == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B)))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
