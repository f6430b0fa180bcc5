// Package game implements the skyshield simulation core: a fragile ascending
// balloon must be kept clear of procedurally spawned obstacles by a
// player-steered shield. The package contains pure deterministic logic with
// no external dependencies; rendering and input capture live in the platform
// layer.
package game

import "skyshield/internal/core"

// Archetype discriminates obstacle behavior. Behavior varies by this tag
// rather than a type hierarchy: mass, collision geometry, and impulse
// response are all dispatched on it.
type Archetype uint8

const (
	Block Archetype = iota
	Spike
	Rotor
	Sweeper
	Shard
)

// String returns the archetype name used in pattern definitions and logs.
func (a Archetype) String() string {
	switch a {
	case Block:
		return "block"
	case Spike:
		return "spike"
	case Rotor:
		return "rotor"
	case Sweeper:
		return "sweeper"
	case Shard:
		return "shard"
	default:
		return "unknown"
	}
}

// archetypeMass maps each archetype to its mass for field forces and
// impulse response.
var archetypeMass = map[Archetype]float64{
	Block:   0.6,
	Rotor:   3.0,
	Shard:   0.2,
	Spike:   1.0,
	Sweeper: 2.0,
}

// Mass returns the archetype mass. Unknown tags fall back to 1.0 so an
// unregistered archetype can never crash the simulation.
func (a Archetype) Mass() float64 {
	if m, ok := archetypeMass[a]; ok {
		return m
	}
	return 1.0
}

// Rectangular reports whether the archetype uses the circle-vs-rectangle
// collision test. Everything else, including unknown tags, is circular.
func (a Archetype) Rectangular() bool {
	return a == Block || a == Sweeper
}

// impulseBase is the base repulsion impulse applied on shield contact,
// before the shield-velocity contribution. Anchored obstacles get a
// reduced value.
var impulseBase = map[Archetype]float64{
	Block:   260,
	Spike:   220,
	Rotor:   150,
	Sweeper: 180,
	Shard:   320,
}

// ImpulseBase returns the base impulse for the archetype.
func (a Archetype) ImpulseBase(anchored bool) float64 {
	base, ok := impulseBase[a]
	if !ok {
		base = 200
	}
	if anchored {
		return base * 0.4
	}
	return base
}

// GameObject is the capability set shared by all simulated bodies.
// Inactive objects are excluded from physics, collision, and rendering and
// are purged from the live collection at the end of each tick; an object is
// never reactivated.
type GameObject struct {
	ID      int
	Pos     core.Vec2
	PrevPos core.Vec2 // Position at the previous physics tick, for render interpolation
	Vel     core.Vec2
	Radius  float64
	Active  bool
}

// Balloon is the single player-protected ascending body. It is
// re-initialized, not recreated, on restart.
type Balloon struct {
	GameObject
	Phase float64 // Monotonic accumulator driving the horizontal sway
}

// Shield is the player-controlled deflector body.
type Shield struct {
	GameObject
	Target core.Vec2

	// Mass is the barrier's nominal inertia.
	Mass float64

	// LastHitTime is the elapsed-play-time (seconds) of the most recent
	// obstacle contact. Consumed by the renderer for transient feedback;
	// the renderer defines its own comparison semantics.
	LastHitTime float64
	HasHit      bool
}

// Obstacle is one of the five archetypal hazard bodies. Created only by the
// pattern generator; deactivated by the simulation loop on lifetime expiry,
// falling far below the camera, or (shards) shield contact.
type Obstacle struct {
	GameObject
	Archetype Archetype

	// Rectangular variants only.
	W, H float64

	Angle    float64 // Orientation, radians
	RotSpeed float64 // Radians per second (rotors)

	// Anchored obstacles do not translate in response to impulses; they may
	// still rotate or locally oscillate around Origin.
	Anchored bool
	Origin   core.Vec2 // Recorded spawn position for spring-return behavior

	Arms     int     // Rotor arm count
	SweepDir float64 // Sweeper horizontal direction, -1 or +1

	// Shards expire when Life reaches zero. HasLife distinguishes a zero
	// lifetime from "no lifetime at all".
	Life    float64
	HasLife bool
}

// Bounds returns the axis-aligned rectangle of a rectangular obstacle,
// centered on its position.
func (o *Obstacle) Bounds() core.Rect {
	return core.Rect{Center: o.Pos, W: o.W, H: o.H}
}
