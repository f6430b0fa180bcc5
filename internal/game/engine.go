package game

import (
	"fmt"
	"math"

	"skyshield/internal/config"
	"skyshield/internal/core"
)

// State is the engine's top-level state machine value.
// Transitions: menu -> playing <-> paused, playing -> gameOver,
// gameOver -> playing (restart). Only explicit commands trigger transitions,
// except the terminal balloon collision check.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the state name as exposed to subscribers.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// ShieldSize selects one of the fixed shield radii.
type ShieldSize int

const (
	ShieldSmall ShieldSize = iota
	ShieldNormal
	ShieldLarge
)

// Settings is the process-wide mutable configuration for one engine
// instance. Mutated only through the engine's setters; out-of-range values
// are silently clamped, never rejected.
type Settings struct {
	Sensitivity float64
	ShieldSize  ShieldSize
	Debug       bool
}

// Engine is the real-time simulation core. It owns all entity state and
// advances it in fixed 1/120 s physics ticks driven by external per-frame
// calls to Frame. The engine runs on a single logical thread: the caller
// must not invoke methods concurrently.
type Engine struct {
	cfg      config.GameConfig
	settings Settings

	balloon   Balloon
	shield    Shield
	obstacles []Obstacle
	gen       *Generator
	rnd       *rng

	state   State
	running bool

	elapsed     float64
	accumulator float64
	lastNow     float64
	hasLast     bool
	alpha       float64

	cameraY     float64
	prevCameraY float64
	startY      float64
	score       int

	viewportW, viewportH float64
	input                core.FrameInput

	seed     int64
	runCount int64

	onScore func(int)
	onState func(State)
}

// New creates an engine for the given terminal geometry. It fails if the
// viewport dimensions are unusable; there is no retry, since that indicates
// an unsupported host environment.
func New(cfg config.GameConfig, rt core.RuntimeConfig) (*Engine, error) {
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		return nil, fmt.Errorf("game: invalid viewport %dx%d", rt.ScreenW, rt.ScreenH)
	}

	e := &Engine{
		cfg:       cfg,
		settings:  Settings{Sensitivity: 1.0, ShieldSize: ShieldNormal},
		gen:       NewGenerator(cfg.Spawn, cfg.Difficulty, rt.Seed),
		rnd:       newRNG(rt.Seed + 1),
		state:     StateMenu,
		seed:      rt.Seed,
		viewportW: float64(rt.ScreenW) * core.CellWorldW,
		viewportH: float64(rt.ScreenH) * core.CellWorldH,
	}
	e.initRun()
	return e, nil
}

// SetScoreListener registers the optional score-changed subscriber.
// It is invoked at most once per actual score change.
func (e *Engine) SetScoreListener(fn func(int)) {
	e.onScore = fn
}

// SetStateListener registers the optional state-changed subscriber.
// It is invoked exactly once per state transition.
func (e *Engine) SetStateListener(fn func(State)) {
	e.onState = fn
}

// Start enables frame processing. The engine remains in the menu state
// until StartGame.
func (e *Engine) Start() {
	e.running = true
}

// Stop disables frame processing. No physics tick survives a stop: ticks
// run to completion inside Frame, so after Stop returns nothing advances.
func (e *Engine) Stop() {
	e.running = false
	e.hasLast = false
}

// StartGame begins a run from the menu.
func (e *Engine) StartGame() {
	if e.state != StateMenu {
		return
	}
	e.initRun()
	e.setState(StatePlaying)
}

// PauseGame suspends physics advancement. Rendering reads of current state
// continue unaffected.
func (e *Engine) PauseGame() {
	if e.state == StatePlaying {
		e.setState(StatePaused)
	}
}

// ResumeGame resumes a paused run.
func (e *Engine) ResumeGame() {
	if e.state == StatePaused {
		e.setState(StatePlaying)
	}
}

// RestartGame starts a fresh run after a game over. The balloon is
// re-initialized, not recreated.
func (e *Engine) RestartGame() {
	if e.state != StateGameOver {
		return
	}
	e.initRun()
	e.setState(StatePlaying)
}

// ToggleDebug flips the debug-visualization flag.
func (e *Engine) ToggleDebug() {
	e.settings.Debug = !e.settings.Debug
}

// SetSensitivity stores the pointer sensitivity multiplier, clamped to
// [0.5, 1.5].
func (e *Engine) SetSensitivity(v float64) {
	e.settings.Sensitivity = core.ClampF(v, 0.5, 1.5)
}

// SetShieldSize selects a shield radius preset, applied immediately.
func (e *Engine) SetShieldSize(size ShieldSize) {
	e.settings.ShieldSize = size
	e.shield.Radius = e.shieldRadiusFor(size)
}

// Settings returns the current settings values.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// State returns the current state machine value.
func (e *Engine) State() State {
	return e.state
}

// ShieldRadius returns the current shield radius in world units.
func (e *Engine) ShieldRadius() float64 {
	return e.shield.Radius
}

func (e *Engine) shieldRadiusFor(size ShieldSize) float64 {
	switch size {
	case ShieldSmall:
		return e.cfg.Shield.RadiusSmall
	case ShieldLarge:
		return e.cfg.Shield.RadiusLarge
	default:
		return e.cfg.Shield.RadiusNormal
	}
}

// initRun re-initializes all entity state for a fresh run.
func (e *Engine) initRun() {
	e.elapsed = 0
	e.accumulator = 0
	e.alpha = 0
	e.score = 0
	e.startY = 0

	e.balloon.ID = 0
	e.balloon.Pos = core.V(e.viewportW/2, e.startY)
	e.balloon.PrevPos = e.balloon.Pos
	e.balloon.Vel = core.V(0, -e.cfg.Balloon.BaseSpeed)
	e.balloon.Radius = e.cfg.Balloon.Radius
	e.balloon.Phase = 0
	e.balloon.Active = true

	e.cameraY = e.balloon.Pos.Y - e.cfg.Camera.DeadZone
	e.prevCameraY = e.cameraY

	e.shield.ID = 1
	e.shield.Pos = core.V(e.viewportW/2, e.startY+e.viewportH*0.35)
	e.shield.PrevPos = e.shield.Pos
	e.shield.Vel = core.Vec2{}
	e.shield.Target = e.shield.Pos
	e.shield.Radius = e.shieldRadiusFor(e.settings.ShieldSize)
	e.shield.Mass = e.cfg.Shield.Mass
	e.shield.Active = true
	e.shield.LastHitTime = 0
	e.shield.HasHit = false

	e.obstacles = e.obstacles[:0]
	e.gen.Reset(e.seed + e.runCount)
	e.runCount++
}

// Frame consumes one external display-frame tick and runs zero or more
// fixed physics steps. The remaining fractional step is exposed as the
// interpolation value for the renderer; the core itself never interpolates.
func (e *Engine) Frame(in core.FrameInput) float64 {
	if !e.running {
		return e.alpha
	}

	if in.ViewportW > 0 && in.ViewportH > 0 {
		e.viewportW = in.ViewportW
		e.viewportH = in.ViewportH
	}
	e.input = in

	if !e.hasLast {
		e.lastNow = in.Now
		e.hasLast = true
		return e.alpha
	}

	delta := in.Now - e.lastNow
	e.lastNow = in.Now
	if delta < 0 {
		delta = 0
	}
	// Bound catch-up work after a stall.
	if delta > e.cfg.Physics.MaxFrameDelta {
		delta = e.cfg.Physics.MaxFrameDelta
	}

	if e.state != StatePlaying {
		// Pause is a state-machine gate: unconsumed time is dropped so a
		// long pause never turns into a burst of catch-up ticks.
		e.accumulator = 0
		e.alpha = 0
		return e.alpha
	}

	e.accumulator += delta
	step := e.cfg.Physics.Step
	for e.accumulator >= step && e.state == StatePlaying {
		e.tick(step)
		e.accumulator -= step
	}
	if e.state != StatePlaying {
		// A terminal transition mid-frame invalidates the buffered remainder:
		// the renderer must never extrapolate past the final tick.
		e.accumulator = 0
	}
	e.alpha = e.accumulator / step
	return e.alpha
}

// tick advances the simulation by exactly one fixed physics step.
// Each tick runs to completion once started.
func (e *Engine) tick(dt float64) {
	e.elapsed += dt

	e.balloon.PrevPos = e.balloon.Pos
	e.shield.PrevPos = e.shield.Pos
	for i := range e.obstacles {
		e.obstacles[i].PrevPos = e.obstacles[i].Pos
	}
	e.prevCameraY = e.cameraY

	target := e.resolveShieldTarget(dt)
	e.advanceBalloon(dt)
	e.advanceShield(target, dt)
	e.advanceObstacles(dt)
	e.spawnObstacles(dt)
	e.updateCamera()

	if !e.checkBalloonCollisions() {
		e.checkShieldCollisions()
	}

	e.updateScore()
	e.purgeInactive()
}

// resolveShieldTarget derives the shield target for this tick. Held
// movement keys fully override the pointer; they never blend.
func (e *Engine) resolveShieldTarget(dt float64) core.Vec2 {
	target := e.shield.Target

	switch {
	case e.input.Held.Any():
		dir := e.input.Held.Dir().Norm()
		target = e.shield.Pos.Add(dir.Scale(e.cfg.Shield.KeyboardSpeed * dt))
	case e.input.PointerValid:
		sens := e.settings.Sensitivity
		cx := e.viewportW / 2
		cy := e.viewportH / 2
		target.X = cx + (e.input.Pointer.X-cx)*sens
		target.Y = e.cameraY + cy + (e.input.Pointer.Y-cy)*sens
	}

	r := e.shield.Radius
	target.X = core.ClampF(target.X, r, e.viewportW-r)
	target.Y = core.ClampF(target.Y, e.cameraY+r, e.cameraY+e.viewportH-r)
	return target
}

// advanceBalloon integrates the ascent model. Vertical speed increases
// monotonically toward min(cap, base + accel*elapsed); horizontal position
// is a pure function of the phase accumulator, with no inertia.
func (e *Engine) advanceBalloon(dt float64) {
	b := &e.balloon
	bc := e.cfg.Balloon

	maxSpeed := math.Min(bc.SpeedCap, bc.BaseSpeed+bc.Acceleration*e.elapsed)
	up := -b.Vel.Y
	if up < maxSpeed {
		up += bc.Acceleration * dt
		if up > maxSpeed {
			up = maxSpeed
		}
	}
	b.Vel.Y = -up
	b.Pos.Y += b.Vel.Y * dt

	b.Phase += bc.DriftRate * dt
	drift := bc.DriftAmpA*math.Sin(b.Phase) + bc.DriftAmpB*math.Sin(b.Phase*bc.DriftRatio)
	b.Pos.X = e.viewportW/2 + drift
}

// advanceShield applies exponential smoothing toward the target. The
// smoothing factor is per physics tick, not per second, so responsiveness
// is physics-rate-dependent. Effective velocity for collision impulses is
// the positional delta over dt.
func (e *Engine) advanceShield(target core.Vec2, dt float64) {
	s := &e.shield
	s.Target = target
	old := s.Pos
	s.Pos = s.Pos.Add(target.Sub(s.Pos).Scale(e.cfg.Shield.Smoothing))
	s.Vel = s.Pos.Sub(old).Scale(1 / dt)
}

// advanceObstacles integrates obstacle motion, field forces, rotation,
// lifetimes, and off-screen culling.
func (e *Engine) advanceObstacles(dt float64) {
	fc := e.cfg.Field
	cullLine := e.cameraY + e.viewportH + fc.CullMargin

	for i := range e.obstacles {
		o := &e.obstacles[i]
		if !o.Active {
			continue
		}

		if !o.Anchored {
			delta := e.shield.Pos.Sub(o.Pos)
			dist := delta.Len()
			inner := e.shield.Radius + o.Radius + fc.InnerPad
			if dist > inner && dist < fc.Range {
				pull := fc.AttractK / (dist * dist) / o.Archetype.Mass()
				o.Vel = o.Vel.Add(delta.Scale(pull / dist))
			}
		}

		o.Vel = o.Vel.Scale(fc.Damping)
		o.Pos = o.Pos.Add(o.Vel.Scale(dt))

		if o.Archetype == Rotor {
			o.Angle += o.RotSpeed * dt
		}

		if o.HasLife {
			o.Life -= dt
			if o.Life <= 0 {
				o.Active = false
				continue
			}
		}

		if o.Pos.Y > cullLine {
			o.Active = false
		}
	}
}

// spawnObstacles asks the pattern generator for new formations.
func (e *Engine) spawnObstacles(dt float64) {
	params := SpawnParams{
		CenterX:      e.viewportW / 2,
		SpawnY:       e.cameraY - e.cfg.Spawn.Depth,
		ViewportW:    e.viewportW,
		Altitude:     e.altitude(),
		BalloonSpeed: -e.balloon.Vel.Y,
		ShieldRadius: e.shield.Radius,
		Difficulty:   e.gen.Difficulty(e.elapsed),
	}
	e.obstacles = append(e.obstacles, e.gen.Update(dt, params)...)
}

// updateCamera scrolls upward with hysteresis: only when the balloon rises
// past the dead-zone line, snapping to exactly dead-zone distance behind it.
// The camera never scrolls downward.
func (e *Engine) updateCamera() {
	dz := e.cfg.Camera.DeadZone
	if e.balloon.Pos.Y < e.cameraY+dz {
		e.cameraY = e.balloon.Pos.Y - dz
	}
}

// checkBalloonCollisions tests the balloon against every active obstacle.
// Any positive detection is terminal: the engine transitions to gameOver
// and further collision checks for this tick are aborted.
func (e *Engine) checkBalloonCollisions() bool {
	for i := range e.obstacles {
		o := &e.obstacles[i]
		if !o.Active {
			continue
		}
		if _, hit := collideWithObstacle(e.balloon.Pos, e.balloon.Radius, o); hit {
			e.setState(StateGameOver)
			return true
		}
	}
	return false
}

// checkShieldCollisions resolves shield contacts independently; a single
// tick may resolve multiple simultaneous contacts.
func (e *Engine) checkShieldCollisions() {
	for i := range e.obstacles {
		o := &e.obstacles[i]
		if !o.Active {
			continue
		}
		info, hit := collideWithObstacle(e.shield.Pos, e.shield.Radius, o)
		if !hit {
			continue
		}

		e.shield.LastHitTime = e.elapsed
		e.shield.HasHit = true

		// Shards are single-use: deactivated on any shield contact.
		if o.Archetype == Shard {
			o.Active = false
			continue
		}

		e.applyShieldImpulse(o, info)
	}
}

// applyShieldImpulse computes the repulsion response for one contact.
func (e *Engine) applyShieldImpulse(o *Obstacle, info CollisionInfo) {
	fc := e.cfg.Field
	rect := o.Archetype.Rectangular()

	// Repulsion direction: the collision normal for rectangular archetypes
	// (prevents sticking against a flat face), center-to-center otherwise.
	var push core.Vec2
	if rect {
		push = info.Normal.Scale(-1)
	} else {
		push = o.Pos.Sub(e.shield.Pos).Norm()
		if push == (core.Vec2{}) {
			push = core.V(1, 0)
		}
	}

	if rect && !o.Anchored {
		// Resolve residual overlap against the flat face.
		o.Pos = o.Pos.Add(push.Scale(fc.NudgeDist))
	}

	impulse := o.Archetype.ImpulseBase(o.Anchored)
	if !o.Anchored {
		gain := e.shield.Vel.Len() * fc.VelFactor
		if gain > fc.MaxVelGain {
			gain = fc.MaxVelGain
		}
		impulse += gain
	}

	if !o.Anchored {
		o.Vel = o.Vel.Add(push.Scale(impulse / o.Archetype.Mass()))

		// Small random perturbation so bounce patterns never repeat
		// deterministically; gentler for rectangular archetypes.
		pert := 30.0
		if rect {
			pert = 12.0
		}
		o.Vel = o.Vel.Add(core.V(e.rnd.Range(-1, 1), e.rnd.Range(-1, 1)).Scale(pert))
		return
	}

	// Anchored obstacles get archetype-specific feedback instead of
	// translation.
	switch o.Archetype {
	case Rotor:
		// Spin up, preserving direction.
		if o.RotSpeed >= 0 {
			o.RotSpeed += 0.4
		} else {
			o.RotSpeed -= 0.4
		}
	case Spike, Block:
		o.Pos = o.Pos.Add(push.Scale(fc.NudgeDist))
		o.Vel = o.Origin.Sub(o.Pos).Scale(2.5)
	}
}

// altitude is the scaled net climb from the starting position, used for
// scoring and pattern unlocking. It reads the current position each tick,
// not a running maximum.
func (e *Engine) altitude() float64 {
	return (e.startY - e.balloon.Pos.Y) / e.cfg.Score.UnitsPerPoint
}

func (e *Engine) updateScore() {
	s := int(e.altitude())
	if s < 0 {
		s = 0
	}
	if s != e.score {
		e.score = s
		if e.onScore != nil {
			e.onScore(s)
		}
	}
}

// purgeInactive removes deactivated obstacles from the live collection.
// After a tick the collection never contains an inactive object.
func (e *Engine) purgeInactive() {
	live := e.obstacles[:0]
	for i := range e.obstacles {
		if e.obstacles[i].Active {
			live = append(live, e.obstacles[i])
		}
	}
	e.obstacles = live
}

func (e *Engine) setState(s State) {
	if s == e.state {
		return
	}
	e.state = s
	if e.onState != nil {
		e.onState(s)
	}
}
