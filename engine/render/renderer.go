package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/render/palette"
)

var (
	Background = color.RGBA{24, 20, 28, 255}
	healthBack = color.RGBA{40, 0, 0, 200}
	healthFill = color.RGBA{0, 200, 60, 230}
	healthLow  = color.RGBA{230, 60, 30, 230}
	reachLight = color.RGBA{255, 255, 255, 160}
	reachDark  = color.RGBA{0, 0, 0, 160}
)

// Renderer draws a world's Renderable entities through a 2D camera. It
// only reads components.
type Renderer struct {
	Camera  *Camera
	Sprites *SpriteManager

	drawables []drawable
}

type drawable struct {
	entity core.Entity
	pos    core.Vec2
	r      *core.Renderable
}

// NewRenderer creates a renderer for a screenW x screenH viewport
func NewRenderer(screenW, screenH int, sprites *SpriteManager) *Renderer {
	return &Renderer{
		Camera:  NewCamera(screenW, screenH),
		Sprites: sprites,
	}
}

// Draw renders every visible entity back to front by Z
func (r *Renderer) Draw(screen *ebiten.Image, w *core.World) {
	screen.Fill(Background)
	r.Camera.Follow(w)
	view := r.Camera.Visible()

	r.drawables = r.drawables[:0]
	for _, e := range core.Entries[*core.Renderable](w.Components) {
		if e.Value.Hidden {
			continue
		}
		tr, ok := core.Get[*core.Transform](w.Components, e.Entity)
		if !ok {
			continue
		}
		box := core.Rect{X: tr.Position.X, Y: tr.Position.Y, W: e.Value.Width, H: e.Value.Height}
		if !box.Overlaps(view) {
			continue
		}
		r.drawables = append(r.drawables, drawable{entity: e.Entity, pos: tr.Position, r: e.Value})
	}
	sort.SliceStable(r.drawables, func(i, j int) bool {
		return r.drawables[i].r.Z < r.drawables[j].r.Z
	})

	for _, d := range r.drawables {
		r.drawShape(screen, d)
	}
	for _, d := range r.drawables {
		if hp, ok := core.Get[*core.Health](w.Components, d.entity); ok && hp.IsDamaged() {
			r.drawHealthBar(screen, d, hp)
		}
		if p, ok := core.Get[*core.Prop](w.Components, d.entity); ok && p.InReach {
			outline := reachLight
			if palette.Luma(palette.Lookup(d.r.Color)) > 160 {
				outline = reachDark
			}
			r.drawOutline(screen, d, outline)
		}
	}
}

func (r *Renderer) drawShape(screen *ebiten.Image, d drawable) {
	sx, sy := r.Camera.WorldToScreen(d.pos.X, d.pos.Y)
	zoom := r.Camera.Zoom
	sw, sh := d.r.Width*zoom, d.r.Height*zoom
	clr := palette.Lookup(d.r.Color)

	switch d.r.Shape {
	case core.ShapeCircle:
		radius := min(sw, sh) / 2
		vector.DrawFilledCircle(screen, float32(sx+sw/2), float32(sy+sh/2), float32(radius), clr, true)
		return
	case core.ShapeSprite:
		if r.Sprites != nil {
			if img := r.Sprites.Get(d.r.Sprite, int(sw), int(sh)); img != nil {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(sx, sy)
				screen.DrawImage(img, op)
				return
			}
		}
	}
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), clr, false)
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, d drawable, hp *core.Health) {
	sx, sy := r.Camera.WorldToScreen(d.pos.X, d.pos.Y)
	width := float32(d.r.Width * r.Camera.Zoom)
	y := float32(sy) - 6
	fill := healthFill
	if hp.IsLow() {
		fill = healthLow
	}
	vector.DrawFilledRect(screen, float32(sx), y, width, 4, healthBack, false)
	vector.DrawFilledRect(screen, float32(sx), y, width*float32(hp.Ratio()), 4, fill, false)
}

func (r *Renderer) drawOutline(screen *ebiten.Image, d drawable, clr color.Color) {
	sx, sy := r.Camera.WorldToScreen(d.pos.X, d.pos.Y)
	zoom := r.Camera.Zoom
	vector.StrokeRect(screen, float32(sx), float32(sy), float32(d.r.Width*zoom), float32(d.r.Height*zoom), 2, clr, false)
}

// DrawHUD prints the player's health and the loop state in the corner
func (r *Renderer) DrawHUD(screen *ebiten.Image, w *core.World, state core.GameState) {
	msg := fmt.Sprintf("TPS %.0f  FPS %.0f  %s", ebiten.ActualTPS(), ebiten.ActualFPS(), state)
	if hp, ok := core.Get[*core.Health](w.Components, w.Player); ok {
		msg += fmt.Sprintf("\nHP %d/%d", hp.Current, hp.Max)
	} else {
		msg += "\nYOU DIED"
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
