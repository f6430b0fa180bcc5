// Package config provides YAML-based game configuration loading and
// difficulty presets for the skyshield platform.
package config

// GameConfig contains all tunables for the balloon simulation.
type GameConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Balloon    BalloonConfig    `yaml:"balloon"`
	Shield     ShieldConfig     `yaml:"shield"`
	Field      FieldConfig      `yaml:"field"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Camera     CameraConfig     `yaml:"camera"`
	Score      ScoreConfig      `yaml:"score"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the fixed-timestep scheduling parameters.
type PhysicsConfig struct {
	Step          float64 `yaml:"step"`            // Fixed physics step in seconds (1/120)
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Clamp on per-frame wall-clock delta
}

// BalloonConfig defines the balloon ascent model.
type BalloonConfig struct {
	Radius       float64 `yaml:"radius"`
	BaseSpeed    float64 `yaml:"base_speed"`   // Initial upward speed, world units/s
	Acceleration float64 `yaml:"acceleration"` // Upward speed gain per second of play
	SpeedCap     float64 `yaml:"speed_cap"`    // Global upward speed limit
	DriftAmpA    float64 `yaml:"drift_amp_a"`  // Primary sway amplitude
	DriftAmpB    float64 `yaml:"drift_amp_b"`  // Secondary sway amplitude
	DriftRate    float64 `yaml:"drift_rate"`   // Phase advance per second
	DriftRatio   float64 `yaml:"drift_ratio"`  // Frequency ratio of the secondary sway
}

// ShieldConfig defines the shield controller parameters.
type ShieldConfig struct {
	Smoothing     float64 `yaml:"smoothing"`      // Exponential smoothing factor per physics tick
	KeyboardSpeed float64 `yaml:"keyboard_speed"` // Keyboard target delta, world units/s
	Mass          float64 `yaml:"mass"`
	RadiusSmall   float64 `yaml:"radius_small"`
	RadiusNormal  float64 `yaml:"radius_normal"`
	RadiusLarge   float64 `yaml:"radius_large"`
}

// FieldConfig defines the shield attraction field and obstacle damping.
type FieldConfig struct {
	AttractK   float64 `yaml:"attract_k"`    // Inverse-square attraction constant
	Range      float64 `yaml:"range"`        // Outer attraction cutoff distance
	InnerPad   float64 `yaml:"inner_pad"`    // Added to summed radii for the inner cutoff
	Damping    float64 `yaml:"damping"`      // Per-tick multiplicative velocity damping
	CullMargin float64 `yaml:"cull_margin"`  // Distance below the view before deactivation
	NudgeDist  float64 `yaml:"nudge_dist"`   // Positional nudge on rectangular contacts
	MaxVelGain float64 `yaml:"max_vel_gain"` // Ceiling on the shield-velocity impulse term
	VelFactor  float64 `yaml:"vel_factor"`   // Fraction of shield speed fed into impulses
}

// SpawnConfig defines the pattern generator cadence and geometry.
type SpawnConfig struct {
	BaseInterval float64 `yaml:"base_interval"` // Spawn interval at difficulty 0, seconds
	MinInterval  float64 `yaml:"min_interval"`  // Spawn interval floor at difficulty 1
	Depth        float64 `yaml:"depth"`         // Spawn height above the visible window
	HistorySize  int     `yaml:"history_size"`  // Rolling pattern-name history length
}

// CameraConfig defines the camera follow behavior.
type CameraConfig struct {
	DeadZone float64 `yaml:"dead_zone"` // Hysteresis band before the camera scrolls
}

// ScoreConfig defines the altitude-to-score conversion.
type ScoreConfig struct {
	UnitsPerPoint float64 `yaml:"units_per_point"` // World units of climb per score point
}

// DifficultyConfig defines the difficulty ramp over elapsed play time.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy start, 1.0 = max from the first tick
	RampSeconds  float64 `yaml:"ramp_seconds"`  // Play time at which difficulty reaches 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyPreset adjusts a config in place for the given preset.
// "fixed" freezes the ramp at the configured initial level.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialLevel = 0.0
		cfg.Difficulty.Enabled = true
	case DifficultyNormal:
		cfg.Difficulty.InitialLevel = 0.3
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.InitialLevel = 0.7
		cfg.Difficulty.Enabled = true
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
