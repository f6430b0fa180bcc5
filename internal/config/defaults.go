package config

import (
	_ "embed"
)

//go:embed defaults/skyshield.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default simulation configuration.
// These values are the tuned baseline; the embedded YAML mirrors them.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Step:          1.0 / 120.0,
			MaxFrameDelta: 0.25,
		},
		Balloon: BalloonConfig{
			Radius:       26,
			BaseSpeed:    120,
			Acceleration: 3.5,
			SpeedCap:     420,
			DriftAmpA:    140,
			DriftAmpB:    55,
			DriftRate:    0.9,
			DriftRatio:   2.7,
		},
		Shield: ShieldConfig{
			Smoothing:     0.28,
			KeyboardSpeed: 1400,
			Mass:          5,
			RadiusSmall:   36,
			RadiusNormal:  42,
			RadiusLarge:   48,
		},
		Field: FieldConfig{
			AttractK:   8000,
			Range:      200,
			InnerPad:   10,
			Damping:    0.985,
			CullMargin: 240,
			NudgeDist:  6,
			MaxVelGain: 420,
			VelFactor:  0.35,
		},
		Spawn: SpawnConfig{
			BaseInterval: 1.2,
			MinInterval:  0.55,
			Depth:        160,
			HistorySize:  5,
		},
		Camera: CameraConfig{
			DeadZone: 320,
		},
		Score: ScoreConfig{
			UnitsPerPoint: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			RampSeconds:  180,
		},
	}
}
