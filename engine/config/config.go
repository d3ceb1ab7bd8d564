package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

//go:embed default.yaml
var defaultYAML []byte

// Settings is the full game configuration
type Settings struct {
	Window      Window              `yaml:"window"`
	Controls    map[string][]string `yaml:"controls"`
	Movement    Movement            `yaml:"movement"`
	Collision   Collision           `yaml:"collision"`
	Combat      Combat              `yaml:"combat"`
	Interaction Interaction         `yaml:"interaction"`
	Pathfinding Pathfinding         `yaml:"pathfinding"`
	Player      Player              `yaml:"player"`
	Enemy       Enemy               `yaml:"enemy"`
	Loop        Loop                `yaml:"loop"`
	Log         Log                 `yaml:"log"`
	Level       Level               `yaml:"level"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Movement struct {
	Speed      float64 `yaml:"speed"`
	SlowFactor float64 `yaml:"slowFactor"`
}

type Collision struct {
	Resolution string `yaml:"resolution"` // penetration | rollback
}

type Combat struct {
	MeleeReach      float64 `yaml:"meleeReach"`
	SymmetricReach  bool    `yaml:"symmetricReach"`
	ProjectileSpeed float64 `yaml:"projectileSpeed"`
}

type Interaction struct {
	Distance float64 `yaml:"distance"`
}

type Pathfinding struct {
	GridSize    float64       `yaml:"gridSize"`
	UpdateDelay time.Duration `yaml:"updateDelay"`
	SearchLimit int           `yaml:"searchLimit"`

	// AlignedFootprint tests each cell's own square against obstacles
	// instead of the box anchored at the cell center
	AlignedFootprint bool `yaml:"alignedFootprint"`
}

type Player struct {
	Health      int     `yaml:"health"`
	MaxHealth   int     `yaml:"maxHealth"`
	Size        float64 `yaml:"size"`
	Weapon      string  `yaml:"weapon"`
	Damage      int     `yaml:"damage"`
	AttackSpeed float64 `yaml:"attackSpeed"`
	Range       float64 `yaml:"range"`
}

type Enemy struct {
	Speed             float64 `yaml:"speed"`
	Size              float64 `yaml:"size"`
	AggroRange        float64 `yaml:"aggroRange"`
	WaypointThreshold float64 `yaml:"waypointThreshold"`
	Health            int     `yaml:"health"`
	Damage            int     `yaml:"damage"`
	AttackSpeed       float64 `yaml:"attackSpeed"`
}

type Loop struct {
	TickRate     float64 `yaml:"tickRate"`
	MaxFrameTime float64 `yaml:"maxFrameTime"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type Level struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tileSize"`
	Rows     []string `yaml:"rows"`
}

// Default returns the built-in settings
func Default() *Settings {
	s := &Settings{}
	if err := yaml.Unmarshal(defaultYAML, s); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return s
}

// Load reads YAML from r on top of the defaults and validates the result
func Load(r io.Reader) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads settings from path. An empty path yields the defaults.
func LoadFile(path string) (*Settings, error) {
	if path == "" {
		return Load(bytes.NewReader(nil))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Write encodes s as YAML
func (s *Settings) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// Validate reports the first setting that cannot be used
func (s *Settings) Validate() error {
	switch {
	case s.Movement.Speed < 0:
		return fieldErr("movement.speed", "must not be negative")
	case s.Movement.SlowFactor < 0 || s.Movement.SlowFactor > 1:
		return fieldErr("movement.slowFactor", "must be within [0, 1]")
	case s.Collision.Resolution != "penetration" && s.Collision.Resolution != "rollback":
		return fieldErr("collision.resolution", "must be penetration or rollback")
	case s.Combat.MeleeReach < 0:
		return fieldErr("combat.meleeReach", "must not be negative")
	case s.Interaction.Distance < 0:
		return fieldErr("interaction.distance", "must not be negative")
	case s.Pathfinding.GridSize <= 0:
		return fieldErr("pathfinding.gridSize", "must be positive")
	case s.Pathfinding.UpdateDelay < 0:
		return fieldErr("pathfinding.updateDelay", "must not be negative")
	case s.Player.MaxHealth <= 0 || s.Player.Health < 0 || s.Player.Health > s.Player.MaxHealth:
		return fieldErr("player.health", "must be within [0, maxHealth] with a positive maxHealth")
	case s.Enemy.Health <= 0:
		return fieldErr("enemy.health", "must be positive")
	case s.Loop.TickRate < 0:
		return fieldErr("loop.tickRate", "must not be negative")
	case s.Level.TileSize <= 0:
		return fieldErr("level.tileSize", "must be positive")
	case len(s.Level.Rows) == 0:
		return fieldErr("level.rows", "must not be empty")
	}
	if _, err := ParseWeapon(s.Player.Weapon); err != nil {
		return err
	}
	_, err := s.Bindings()
	return err
}

// Bindings maps each logical action to its key names
func (s *Settings) Bindings() (map[core.Action][]string, error) {
	out := make(map[core.Action][]string, len(s.Controls))
	for name, keys := range s.Controls {
		a, ok := core.ParseAction(name)
		if !ok {
			return nil, fieldErr("controls."+name, "unknown action")
		}
		out[a] = keys
	}
	return out, nil
}

// ParseWeapon resolves a weapon kind name
func ParseWeapon(name string) (core.WeaponKind, error) {
	switch name {
	case "", "sword":
		return core.WeaponSword, nil
	case "bow":
		return core.WeaponBow, nil
	case "staff":
		return core.WeaponStaff, nil
	}
	return core.WeaponSword, fieldErr("player.weapon", fmt.Sprintf("unknown weapon %q", name))
}

// ErrInvalidSetting is wrapped by every validation failure
var ErrInvalidSetting = errors.New("invalid setting")

func fieldErr(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidSetting, field, reason)
}
