package level

import (
	"errors"
	"fmt"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// Tile is one character of a level layout
type Tile byte

const (
	TileFloor  Tile = ' '
	TileWall   Tile = '#'
	TileMud    Tile = 's'
	TileHeal   Tile = 'h'
	TileHazard Tile = 'd'
	TileBox    Tile = 'b'
	TileEnemy  Tile = 'e'
	TilePlayer Tile = 'p'
)

var tileNames = map[Tile]string{
	TileFloor:  "floor",
	TileWall:   "wall",
	TileMud:    "mud",
	TileHeal:   "heal",
	TileHazard: "hazard",
	TileBox:    "box",
	TileEnemy:  "enemy",
	TilePlayer: "player",
}

func (t Tile) String() string {
	if n, ok := tileNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tile(%q)", byte(t))
}

// Solid reports whether the tile spawns a body that blocks movement
func (t Tile) Solid() bool {
	switch t {
	case TileWall, TileHeal, TileHazard, TileBox:
		return true
	}
	return false
}

var (
	ErrEmptyLevel  = errors.New("level has no rows")
	ErrUnknownTile = errors.New("unknown tile")
	ErrNoPlayer    = errors.New("level has no player start")
)

// Layout is a parsed rectangular grid of tiles. Rows shorter than the
// widest row are padded with floor.
type Layout struct {
	Name     string
	TileSize float64
	Width    int
	Height   int
	Tiles    []Tile

	Start   Cell   // player start
	Enemies []Cell // in row-major order
}

// Cell addresses a tile by column and row
type Cell struct {
	X, Y int
}

// Parse builds a layout from ASCII rows. Exactly one player start is required.
func Parse(name string, rows []string, tileSize float64) (*Layout, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyLevel
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("level %s: tile size %v must be positive", name, tileSize)
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	l := &Layout{
		Name:     name,
		TileSize: tileSize,
		Width:    width,
		Height:   len(rows),
		Tiles:    make([]Tile, width*len(rows)),
	}

	starts := 0
	for y, r := range rows {
		for x := 0; x < width; x++ {
			t := TileFloor
			if x < len(r) {
				t = Tile(r[x])
			}
			if _, ok := tileNames[t]; !ok {
				return nil, fmt.Errorf("level %s: row %d col %d: %w %q", name, y, x, ErrUnknownTile, byte(t))
			}
			switch t {
			case TilePlayer:
				starts++
				l.Start = Cell{x, y}
			case TileEnemy:
				l.Enemies = append(l.Enemies, Cell{x, y})
			}
			l.Tiles[y*width+x] = t
		}
	}

	switch {
	case starts == 0:
		return nil, fmt.Errorf("level %s: %w", name, ErrNoPlayer)
	case starts > 1:
		return nil, fmt.Errorf("level %s: %d player starts", name, starts)
	}
	return l, nil
}

// At returns the tile at (x, y); outside the layout it reports a wall
func (l *Layout) At(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.Tiles[y*l.Width+x]
}

func (l *Layout) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// Origin returns the world position of a cell's top-left corner
func (l *Layout) Origin(c Cell) core.Vec2 {
	return core.Vec2{X: float64(c.X) * l.TileSize, Y: float64(c.Y) * l.TileSize}
}

// CellAt returns the cell containing a world position
func (l *Layout) CellAt(p core.Vec2) Cell {
	return Cell{X: floorDiv(p.X, l.TileSize), Y: floorDiv(p.Y, l.TileSize)}
}

// Bounds is the world-space area covered by the layout
func (l *Layout) Bounds() core.Rect {
	return core.Rect{W: float64(l.Width) * l.TileSize, H: float64(l.Height) * l.TileSize}
}

// Count returns how many tiles of kind t the layout holds
func (l *Layout) Count(t Tile) int {
	n := 0
	for _, v := range l.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

func floorDiv(v, size float64) int {
	n := int(v / size)
	if v < 0 && float64(n)*size != v {
		n--
	}
	return n
}
