package level_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/level"
)

func TestParse(t *testing.T) {
	l, err := level.Parse("test", []string{
		"#####",
		"#p e#",
		"#sbh",
		"#####",
	}, 10)

	require.NoError(t, err)
	assert.Equal(t, 5, l.Width)
	assert.Equal(t, 4, l.Height)
	assert.Equal(t, level.Cell{X: 1, Y: 1}, l.Start)
	assert.Equal(t, []level.Cell{{X: 3, Y: 1}}, l.Enemies)
	assert.Equal(t, level.TileMud, l.At(1, 2))
	assert.Equal(t, level.TileFloor, l.At(4, 2), "short rows are padded")
	assert.Equal(t, level.TileWall, l.At(-1, 0), "outside is wall")
	assert.Equal(t, 13, l.Count(level.TileWall))
	assert.Equal(t, core.Rect{W: 50, H: 40}, l.Bounds())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		size    float64
		wantErr error
	}{
		{name: "empty", rows: nil, size: 10, wantErr: level.ErrEmptyLevel},
		{name: "unknown tile", rows: []string{"p x"}, size: 10, wantErr: level.ErrUnknownTile},
		{name: "no player", rows: []string{"###"}, size: 10, wantErr: level.ErrNoPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := level.Parse("bad", tt.rows, tt.size)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := level.Parse("two", []string{"pp"}, 10)
	assert.Error(t, err)
	_, err = level.Parse("size", []string{"p"}, 0)
	assert.Error(t, err)
}

func TestCellMapping(t *testing.T) {
	l, err := level.Parse("m", []string{"p "}, 50)
	require.NoError(t, err)

	assert.Equal(t, core.Vec2{X: 50, Y: 0}, l.Origin(level.Cell{X: 1}))
	assert.Equal(t, level.Cell{X: 1, Y: 0}, l.CellAt(core.Vec2{X: 99.9, Y: 49}))
	assert.Equal(t, level.Cell{X: -1, Y: 0}, l.CellAt(core.Vec2{X: -0.5, Y: 0}))
}

func TestTileSolid(t *testing.T) {
	assert.True(t, level.TileWall.Solid())
	assert.True(t, level.TileBox.Solid())
	assert.False(t, level.TileMud.Solid())
	assert.False(t, level.TileFloor.Solid())
	assert.Equal(t, "hazard", level.TileHazard.String())
}

func spawnDefault(t *testing.T, rows []string) (*core.World, level.Spawned, *config.Settings) {
	t.Helper()
	s := config.Default()
	l, err := level.Parse("t", rows, s.Level.TileSize)
	require.NoError(t, err)
	w := core.NewWorld()
	sp, err := l.Spawn(w, s, nil)
	require.NoError(t, err)
	return w, sp, s
}

func TestSpawnPlayer(t *testing.T) {
	w, sp, s := spawnDefault(t, []string{" p"})

	assert.Equal(t, sp.Player, w.Player)
	tr, ok := core.Get[*core.Transform](w.Components, sp.Player)
	require.True(t, ok)
	assert.Equal(t, core.Vec2{X: 50}, tr.Position)
	hp, ok := core.Get[*core.Health](w.Components, sp.Player)
	require.True(t, ok)
	assert.Equal(t, s.Player.Health, hp.Current)
	assert.Equal(t, s.Player.MaxHealth, hp.Max)
	for _, ct := range []core.ComponentType{core.CompPhysics, core.CompInput, core.CompWeapon, core.CompRenderable} {
		assert.True(t, w.Components.Has(sp.Player, ct), ct.String())
	}

	cam, ok := core.Get[*core.Camera](w.Components, sp.Camera)
	require.True(t, ok)
	assert.Equal(t, sp.Player, cam.Target)
	require.NotNil(t, cam.Bounds)
	assert.Equal(t, core.Rect{W: 100, H: 50}, *cam.Bounds)
}

func TestSpawnTiles(t *testing.T) {
	w, sp, _ := spawnDefault(t, []string{
		"#s",
		"hd",
		"be",
		"p ",
	})

	// wall, mud, 2 props, box, enemy, player, camera
	assert.Equal(t, 8, w.Entities.Len())
	assert.Equal(t, 2, w.Components.Len(core.CompProp))
	assert.Equal(t, 1, w.Components.Len(core.CompDestructible))
	require.Len(t, sp.Enemies, 1)

	en, ok := core.Get[*core.Enemy](w.Components, sp.Enemies[0])
	require.True(t, ok)
	assert.Len(t, en.Agent, 36, "uuid agent id")
	tr, _ := core.Get[*core.Transform](w.Components, sp.Enemies[0])
	assert.Equal(t, core.Vec2{X: 55, Y: 105}, tr.Position, "centered in its tile")

	flags := map[core.CollisionFlag]int{}
	for _, p := range core.Entries[*core.Physics](w.Components) {
		flags[p.Value.Collision]++
	}
	assert.Equal(t, 1, flags[core.CollisionSemisolid])
	assert.Equal(t, 6, flags[core.CollisionSolid])
}

func TestSpawnedPropsAffectPlayer(t *testing.T) {
	w, sp, _ := spawnDefault(t, []string{"hpd"})
	hp, _ := core.Get[*core.Health](w.Components, sp.Player)
	ctx := w.Context(0)

	var heal, hurt *core.Prop
	for _, p := range core.Entries[*core.Prop](w.Components) {
		tr, _ := core.Get[*core.Transform](w.Components, p.Entity)
		if tr.Position.X == 0 {
			heal = p.Value
		} else {
			hurt = p.Value
		}
	}
	require.NotNil(t, heal)
	require.NotNil(t, hurt)

	heal.OnInteract(ctx, core.NoEntity)
	assert.Equal(t, 60, hp.Current)
	hurt.OnInteract(ctx, core.NoEntity)
	hurt.OnInteract(ctx, core.NoEntity)
	assert.Equal(t, 40, hp.Current)
}

func TestSpawnDefaultLevel(t *testing.T) {
	s := config.Default()
	l, err := level.Parse(s.Level.Name, s.Level.Rows, s.Level.TileSize)
	require.NoError(t, err)

	assert.Equal(t, level.Cell{X: 2, Y: 4}, l.Start)
	assert.Len(t, l.Enemies, 1)
	assert.Equal(t, 1, l.Count(level.TileHeal))
	assert.Equal(t, 1, l.Count(level.TileHazard))
}
