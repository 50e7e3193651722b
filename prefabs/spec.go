package prefabs

import (
	"fmt"

	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GravitySpec struct {
	Value      float64 `yaml:"value"`
	RiseScale  float64 `yaml:"rise_scale"`
	FallScale  float64 `yaml:"fall_scale"`
	JumpHeight float64 `yaml:"jump_height"`
	CoyoteTime float64 `yaml:"coyote_time"`
	JumpBuffer float64 `yaml:"jump_buffer_time"`
}

type DashSpec struct {
	Mode              string  `yaml:"mode"`
	Speed             float64 `yaml:"speed"`
	Duration          float64 `yaml:"duration"`
	DistanceIncrement float64 `yaml:"distance_increment"`
	JumpingAllowed    bool    `yaml:"jumping_allowed"`
	MoveWhileDashing  bool    `yaml:"move_while_dashing"`
}

type WallSpec struct {
	Drag         float64 `yaml:"drag"`
	JumpBoost    float64 `yaml:"jump_boost"`
	MaxWallJumps int     `yaml:"max_wall_jumps"`
}

// CharacterSpec is the yaml form of motion.Parameters.
type CharacterSpec struct {
	Name               string       `yaml:"name"`
	Collider           ColliderSpec `yaml:"collider"`
	MaxWalkSpeed       float64      `yaml:"max_walk_speed"`
	MaxSprintSpeed     float64      `yaml:"max_sprint_speed"`
	GroundAcceleration float64      `yaml:"ground_acceleration"`
	GroundDeceleration float64      `yaml:"ground_deceleration"`
	AirAcceleration    float64      `yaml:"air_acceleration"`
	Gravity            GravitySpec  `yaml:"gravity"`
	Dash               DashSpec     `yaml:"dash"`
	Wall               WallSpec     `yaml:"wall"`
}

// DefaultCharacterSpec mirrors motion.DefaultParameters so omitted yaml
// keys keep sensible values.
func DefaultCharacterSpec() CharacterSpec {
	p := motion.DefaultParameters()
	return CharacterSpec{
		Name:               "character",
		Collider:           ColliderSpec{Width: p.Width, Height: p.Height},
		MaxWalkSpeed:       p.MaxWalkSpeed,
		MaxSprintSpeed:     p.MaxSprintSpeed,
		GroundAcceleration: p.GroundAcceleration,
		GroundDeceleration: p.GroundDeceleration,
		AirAcceleration:    p.AirAcceleration,
		Gravity: GravitySpec{
			Value:      p.Gravity,
			RiseScale:  p.RiseGravityScale,
			FallScale:  p.FallGravityScale,
			JumpHeight: p.JumpHeight,
			CoyoteTime: p.CoyoteTime,
			JumpBuffer: p.JumpBufferTime,
		},
		Dash: DashSpec{
			Mode:              p.DashMode.String(),
			Speed:             p.DashSpeed,
			Duration:          p.DashDuration,
			DistanceIncrement: p.DashDistanceIncrement,
			JumpingAllowed:    p.DashJumpingAllowed,
			MoveWhileDashing:  p.MoveWhileDashing,
		},
		Wall: WallSpec{
			Drag:         p.WallDrag,
			JumpBoost:    p.WallJumpBoost,
			MaxWallJumps: p.MaxWallJumps,
		},
	}
}

// ParseCharacterSpec decodes yaml over the defaults.
func ParseCharacterSpec(data []byte) (CharacterSpec, error) {
	spec := DefaultCharacterSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: unmarshal character: %w", err)
	}
	return spec, nil
}

func LoadCharacterSpec(filename string) (CharacterSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseCharacterSpec(data)
	if err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// Parameters converts to motion.Parameters and validates the result.
func (s CharacterSpec) Parameters() (motion.Parameters, error) {
	mode, err := motion.ParseDashMode(s.Dash.Mode)
	if err != nil {
		return motion.Parameters{}, err
	}
	p := motion.Parameters{
		Width:                 s.Collider.Width,
		Height:                s.Collider.Height,
		MaxWalkSpeed:          s.MaxWalkSpeed,
		MaxSprintSpeed:        s.MaxSprintSpeed,
		GroundAcceleration:    s.GroundAcceleration,
		GroundDeceleration:    s.GroundDeceleration,
		AirAcceleration:       s.AirAcceleration,
		Gravity:               s.Gravity.Value,
		RiseGravityScale:      s.Gravity.RiseScale,
		FallGravityScale:      s.Gravity.FallScale,
		JumpHeight:            s.Gravity.JumpHeight,
		CoyoteTime:            s.Gravity.CoyoteTime,
		JumpBufferTime:        s.Gravity.JumpBuffer,
		DashMode:              mode,
		DashSpeed:             s.Dash.Speed,
		DashDuration:          s.Dash.Duration,
		DashDistanceIncrement: s.Dash.DistanceIncrement,
		DashJumpingAllowed:    s.Dash.JumpingAllowed,
		MoveWhileDashing:      s.Dash.MoveWhileDashing,
		WallDrag:              s.Wall.Drag,
		WallJumpBoost:         s.Wall.JumpBoost,
		MaxWallJumps:          s.Wall.MaxWallJumps,
	}
	if err := p.Validate(); err != nil {
		return motion.Parameters{}, err
	}
	return p, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ActorSpec places an extra scripted character in a level.
type ActorSpec struct {
	Prefab string     `yaml:"prefab"`
	Script string     `yaml:"script"`
	Spawn  VectorSpec `yaml:"spawn"`
}

// LevelSpec is a glyph tile map plus the characters that live in it.
type LevelSpec struct {
	Name     string      `yaml:"name"`
	TileSize float64     `yaml:"tile_size"`
	Origin   VectorSpec  `yaml:"origin"`
	Tiles    []string    `yaml:"tiles"`
	Player   string      `yaml:"player"`
	Actors   []ActorSpec `yaml:"actors"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return LevelSpec{}, err
	}
	if spec.TileSize == 0 {
		spec.TileSize = 1
	}
	if spec.Player == "" {
		spec.Player = "character.yaml"
	}
	return spec, nil
}
