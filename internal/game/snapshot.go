package game

import (
	"math"

	"skyshield/internal/core"
)

// BodyView is the read-only render view of a circular body. PrevPos allows
// the renderer to blend between the last two physics states using the
// interpolation value returned by Frame.
type BodyView struct {
	Pos     core.Vec2
	PrevPos core.Vec2
	Radius  float64
}

// ShieldView extends BodyView with the transient-feedback contact time.
type ShieldView struct {
	BodyView
	LastHitTime float64 // Elapsed-play-time seconds of the last contact
	HasHit      bool
}

// ObstacleView is the read-only render view of one obstacle.
type ObstacleView struct {
	ID        int
	Archetype Archetype
	Pos       core.Vec2
	PrevPos   core.Vec2
	Radius    float64
	W, H      float64
	Angle     float64
	Anchored  bool
	Arms      int
}

// Snapshot is the engine state exposed to the renderer after each frame.
// It is a value copy: the renderer never holds a writable reference into
// the simulation.
type Snapshot struct {
	State    State
	Score    int
	Altitude float64 // Scaled net climb in display units
	Elapsed  float64

	Balloon   BodyView
	Shield    ShieldView
	Obstacles []ObstacleView

	CameraY     float64
	PrevCameraY float64
	Alpha       float64

	ViewportW  float64
	ViewportH  float64
	Difficulty float64
	Debug      bool
}

// Snapshot returns a copy of the current render-facing state.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]ObstacleView, 0, len(e.obstacles))
	for i := range e.obstacles {
		o := &e.obstacles[i]
		if !o.Active {
			continue
		}
		obstacles = append(obstacles, ObstacleView{
			ID:        o.ID,
			Archetype: o.Archetype,
			Pos:       o.Pos,
			PrevPos:   o.PrevPos,
			Radius:    o.Radius,
			W:         o.W,
			H:         o.H,
			Angle:     o.Angle,
			Anchored:  o.Anchored,
			Arms:      o.Arms,
		})
	}

	return Snapshot{
		State:    e.state,
		Score:    e.score,
		Altitude: e.altitude(),
		Elapsed:  e.elapsed,
		Balloon: BodyView{
			Pos:     e.balloon.Pos,
			PrevPos: e.balloon.PrevPos,
			Radius:  e.balloon.Radius,
		},
		Shield: ShieldView{
			BodyView: BodyView{
				Pos:     e.shield.Pos,
				PrevPos: e.shield.PrevPos,
				Radius:  e.shield.Radius,
			},
			LastHitTime: e.shield.LastHitTime,
			HasHit:      e.shield.HasHit,
		},
		Obstacles:   obstacles,
		CameraY:     e.cameraY,
		PrevCameraY: e.prevCameraY,
		Alpha:       e.alpha,
		ViewportW:   e.viewportW,
		ViewportH:   e.viewportH,
		Difficulty:  e.gen.Difficulty(e.elapsed),
		Debug:       e.settings.Debug,
	}
}

// Hash folds the snapshot into a single value for determinism comparisons
// in tests (FNV-1a over the numeric state).
func (s Snapshot) Hash() uint64 {
	h := uint64(14695981039346656037)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= (v >> (8 * i)) & 0xff
			h *= 1099511628211
		}
	}
	mixF := func(f float64) { mix(math.Float64bits(f)) }

	mix(uint64(s.State))
	mix(uint64(s.Score))
	mixF(s.Elapsed)
	mixF(s.Balloon.Pos.X)
	mixF(s.Balloon.Pos.Y)
	mixF(s.Shield.Pos.X)
	mixF(s.Shield.Pos.Y)
	mixF(s.CameraY)
	mix(uint64(len(s.Obstacles)))
	for _, o := range s.Obstacles {
		mix(uint64(o.ID))
		mix(uint64(o.Archetype))
		mixF(o.Pos.X)
		mixF(o.Pos.Y)
		mixF(o.Angle)
	}
	return h
}
