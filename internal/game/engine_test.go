package game

import (
	"math"
	"testing"

	"skyshield/internal/config"
	"skyshield/internal/core"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(config.DefaultGameConfig(), core.RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    seed,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func newPlayingEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e := newTestEngine(t, seed)
	e.Start()
	e.StartGame()
	return e
}

func TestNewRejectsInvalidViewport(t *testing.T) {
	if _, err := New(config.DefaultGameConfig(), core.RuntimeConfig{ScreenW: 0, ScreenH: 24}); err == nil {
		t.Error("New accepted zero width")
	}
	if _, err := New(config.DefaultGameConfig(), core.RuntimeConfig{ScreenW: 80, ScreenH: -1}); err == nil {
		t.Error("New accepted negative height")
	}
}

func TestStateTransitions(t *testing.T) {
	e := newTestEngine(t, 1)

	var seen []State
	e.SetStateListener(func(s State) { seen = append(seen, s) })

	e.PauseGame()   // no-op in menu
	e.ResumeGame()  // no-op in menu
	e.RestartGame() // no-op in menu
	if e.State() != StateMenu {
		t.Fatalf("state = %v before StartGame, want menu", e.State())
	}

	e.StartGame()
	e.StartGame() // no-op while playing
	e.PauseGame()
	e.PauseGame() // no-op while paused
	e.ResumeGame()

	want := []State{StatePlaying, StatePaused, StatePlaying}
	if len(seen) != len(want) {
		t.Fatalf("listener saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("listener saw %v, want %v", seen, want)
		}
	}
}

func TestBalloonCollisionEndsRun(t *testing.T) {
	e := newPlayingEngine(t, 1)

	transitions := 0
	e.SetStateListener(func(s State) {
		if s == StateGameOver {
			transitions++
		}
	})

	// A block engulfing the balloon's start position, plus a shard on the
	// shield. The terminal balloon hit must abort shield resolution, so the
	// shard survives the tick.
	e.obstacles = append(e.obstacles,
		Obstacle{
			GameObject: GameObject{Pos: e.balloon.Pos, Radius: 100, Active: true},
			Archetype:  Block,
			W:          200,
			H:          200,
		},
		Obstacle{
			GameObject: GameObject{Pos: e.shield.Pos, Radius: 8, Active: true},
			Archetype:  Shard,
		},
	)

	e.tick(e.cfg.Physics.Step)

	if e.State() != StateGameOver {
		t.Fatalf("state = %v after balloon collision, want gameOver", e.State())
	}
	if transitions != 1 {
		t.Errorf("gameOver notified %d times, want 1", transitions)
	}
	shards := 0
	for _, o := range e.obstacles {
		if o.Archetype == Shard && o.Active {
			shards++
		}
	}
	if shards != 1 {
		t.Error("shield resolution ran after the terminal balloon collision")
	}
	if e.shield.HasHit {
		t.Error("shield recorded a contact after the terminal balloon collision")
	}
}

func TestRestartReinitializesRun(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: e.balloon.Pos, Radius: 100, Active: true},
		Archetype:  Spike,
	})
	e.tick(e.cfg.Physics.Step)
	if e.State() != StateGameOver {
		t.Fatal("setup failed to reach gameOver")
	}

	e.RestartGame()

	if e.State() != StatePlaying {
		t.Fatalf("state = %v after restart, want playing", e.State())
	}
	if e.Score() != 0 || e.elapsed != 0 {
		t.Errorf("score %d elapsed %v after restart, want zeroes", e.Score(), e.elapsed)
	}
	if len(e.obstacles) != 0 {
		t.Errorf("%d obstacles survived restart", len(e.obstacles))
	}
	if e.balloon.Pos != core.V(e.viewportW/2, 0) {
		t.Errorf("balloon at %v after restart", e.balloon.Pos)
	}
	if !almostEqual(e.cameraY, -e.cfg.Camera.DeadZone) {
		t.Errorf("cameraY = %v after restart, want %v", e.cameraY, -e.cfg.Camera.DeadZone)
	}
}

func TestShardSingleUse(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: e.shield.Pos.Add(core.V(30, 0)), Radius: 8, Active: true},
		Archetype:  Shard,
	})

	scoreBefore := e.Score()
	e.checkShieldCollisions()

	if e.obstacles[0].Active {
		t.Error("shard still active after shield contact")
	}
	if !e.shield.HasHit {
		t.Error("shield contact not recorded")
	}
	if e.Score() != scoreBefore {
		t.Error("shard contact changed the score")
	}
	if e.obstacles[0].Vel != (core.Vec2{}) {
		t.Error("deactivated shard received an impulse")
	}
}

func TestAnchoredRotorSpinsUpPreservingDirection(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.obstacles = append(e.obstacles,
		Obstacle{
			GameObject: GameObject{Pos: e.shield.Pos.Add(core.V(40, 0)), Radius: 30, Active: true},
			Archetype:  Rotor,
			Anchored:   true,
			RotSpeed:   -2.0,
		},
	)

	e.checkShieldCollisions()

	o := &e.obstacles[0]
	if !almostEqual(o.RotSpeed, -2.4) {
		t.Errorf("rotor speed %v after contact, want -2.4", o.RotSpeed)
	}
	if o.Vel != (core.Vec2{}) {
		t.Error("anchored rotor translated on contact")
	}

	// Opposite spin direction.
	o.RotSpeed = 1.0
	e.checkShieldCollisions()
	if !almostEqual(o.RotSpeed, 1.4) {
		t.Errorf("rotor speed %v after contact, want 1.4", o.RotSpeed)
	}
}

func TestAnchoredSpikeSpringsBack(t *testing.T) {
	e := newPlayingEngine(t, 1)

	origin := e.shield.Pos.Add(core.V(40, 0))
	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: origin, Radius: 20, Active: true},
		Archetype:  Spike,
		Anchored:   true,
		Origin:     origin,
	})

	e.checkShieldCollisions()

	o := &e.obstacles[0]
	nudge := e.cfg.Field.NudgeDist
	if !almostEqual(o.Pos.X, origin.X+nudge) {
		t.Errorf("spike nudged to x=%v, want %v", o.Pos.X, origin.X+nudge)
	}
	// Restoring velocity points back toward the anchor.
	if !almostEqual(o.Vel.X, -nudge*2.5) || !almostEqual(o.Vel.Y, 0) {
		t.Errorf("spike restoring velocity %v, want (%v, 0)", o.Vel, -nudge*2.5)
	}
}

func TestFreeBlockRepelledAlongFaceNormal(t *testing.T) {
	e := newPlayingEngine(t, 1)

	// Block to the right of the shield, overlapping its left face.
	pos := e.shield.Pos.Add(core.V(70, 0))
	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: pos, Radius: 30, Active: true},
		Archetype:  Block,
		W:          60,
		H:          60,
	})

	e.checkShieldCollisions()

	o := &e.obstacles[0]
	if !almostEqual(o.Pos.X, pos.X+e.cfg.Field.NudgeDist) {
		t.Errorf("block not nudged clear of the face: x=%v", o.Pos.X)
	}
	// Base impulse over block mass, both offset by at most the rectangular
	// perturbation magnitude.
	base := Block.ImpulseBase(false) / Block.Mass()
	if o.Vel.X < base-12-1e-9 || o.Vel.X > base+12+1e-9 {
		t.Errorf("block velocity X = %v, want within 12 of %v", o.Vel.X, base)
	}
	if math.Abs(o.Vel.Y) > 12+1e-9 {
		t.Errorf("block velocity Y = %v, want |y| <= 12", o.Vel.Y)
	}
}

func TestShieldVelocityRaisesImpulse(t *testing.T) {
	e := newPlayingEngine(t, 1)
	fc := e.cfg.Field

	hitVel := func(shieldVel core.Vec2) float64 {
		e.shield.Vel = shieldVel
		e.obstacles = e.obstacles[:0]
		e.obstacles = append(e.obstacles, Obstacle{
			GameObject: GameObject{Pos: e.shield.Pos.Add(core.V(45, 0)), Radius: 10, Active: true},
			Archetype:  Spike,
		})
		e.checkShieldCollisions()
		return e.obstacles[0].Vel.Len()
	}

	slow := hitVel(core.Vec2{})
	fast := hitVel(core.V(800, 0))
	capped := hitVel(core.V(1e7, 0))

	// Perturbation noise is +-30 per axis; the velocity contribution at 800
	// is 280, far above the noise floor.
	if fast <= slow+100 {
		t.Errorf("fast hit %v not meaningfully above slow hit %v", fast, slow)
	}
	// The gain saturates at MaxVelGain.
	maxBase := Spike.ImpulseBase(false) + fc.MaxVelGain
	noise := 30 * math.Sqrt2
	if capped > maxBase/Spike.Mass()+noise+1e-9 {
		t.Errorf("capped hit %v exceeds saturated impulse %v", capped, maxBase/Spike.Mass()+noise)
	}
}

func TestShieldSizePresets(t *testing.T) {
	e := newTestEngine(t, 1)

	cases := []struct {
		size ShieldSize
		want float64
	}{
		{ShieldSmall, 36},
		{ShieldLarge, 48},
		{ShieldNormal, 42},
	}
	for _, tc := range cases {
		e.SetShieldSize(tc.size)
		if got := e.ShieldRadius(); !almostEqual(got, tc.want) {
			t.Errorf("radius after SetShieldSize(%v) = %v, want %v", tc.size, got, tc.want)
		}
		if e.Settings().ShieldSize != tc.size {
			t.Errorf("settings not updated for %v", tc.size)
		}
	}
}

func TestSensitivityClamped(t *testing.T) {
	e := newTestEngine(t, 1)

	e.SetSensitivity(5.0)
	if got := e.Settings().Sensitivity; !almostEqual(got, 1.5) {
		t.Errorf("sensitivity %v, want clamp to 1.5", got)
	}
	e.SetSensitivity(-1)
	if got := e.Settings().Sensitivity; !almostEqual(got, 0.5) {
		t.Errorf("sensitivity %v, want clamp to 0.5", got)
	}
	e.SetSensitivity(1.2)
	if got := e.Settings().Sensitivity; !almostEqual(got, 1.2) {
		t.Errorf("sensitivity %v, want 1.2 unchanged", got)
	}
}

func TestKeyboardOverridesPointer(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.input = core.FrameInput{
		Held:         core.KeySet(0).With(core.KeyLeft),
		PointerValid: true,
		Pointer:      core.V(1800, 900),
	}

	target := e.resolveShieldTarget(step)
	wantX := e.shield.Pos.X - e.cfg.Shield.KeyboardSpeed*step
	if !almostEqual(target.X, wantX) {
		t.Errorf("target X = %v, want %v (keyboard), not pointer-derived", target.X, wantX)
	}
	if !almostEqual(target.Y, e.shield.Pos.Y) {
		t.Errorf("target Y = %v, want unchanged %v", target.Y, e.shield.Pos.Y)
	}
}

func TestPointerSensitivityScalesAboutCenter(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.input = core.FrameInput{
		PointerValid: true,
		Pointer:      core.V(e.viewportW/2+200, e.viewportH/2+200),
	}

	target := e.resolveShieldTarget(e.cfg.Physics.Step)
	if !almostEqual(target.X, e.viewportW/2+200) {
		t.Errorf("target X = %v at sensitivity 1", target.X)
	}
	if !almostEqual(target.Y, e.cameraY+e.viewportH/2+200) {
		t.Errorf("target Y = %v at sensitivity 1", target.Y)
	}

	e.SetSensitivity(1.5)
	target = e.resolveShieldTarget(e.cfg.Physics.Step)
	if !almostEqual(target.X, e.viewportW/2+300) {
		t.Errorf("target X = %v at sensitivity 1.5", target.X)
	}
}

func TestShieldTargetClampedToViewport(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.input = core.FrameInput{PointerValid: true, Pointer: core.V(1e6, -1e6)}
	target := e.resolveShieldTarget(e.cfg.Physics.Step)

	r := e.shield.Radius
	if !almostEqual(target.X, e.viewportW-r) {
		t.Errorf("target X = %v, want clamp to %v", target.X, e.viewportW-r)
	}
	if !almostEqual(target.Y, e.cameraY+r) {
		t.Errorf("target Y = %v, want clamp to %v", target.Y, e.cameraY+r)
	}
}

func TestShieldSmoothingPerTick(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	start := e.shield.Pos
	target := start.Add(core.V(100, 0))
	e.advanceShield(target, step)

	wantX := start.X + 100*e.cfg.Shield.Smoothing
	if !almostEqual(e.shield.Pos.X, wantX) {
		t.Errorf("shield X = %v after one tick, want %v", e.shield.Pos.X, wantX)
	}
	if !almostEqual(e.shield.Vel.X, 100*e.cfg.Shield.Smoothing/step) {
		t.Errorf("shield velocity %v, want positional delta over dt", e.shield.Vel.X)
	}
}

func TestBalloonSpeedCapped(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	// Force the ramp ceiling to the cap, then integrate until saturation.
	e.elapsed = 600
	prev := -e.balloon.Vel.Y
	for i := 0; i < 20000; i++ {
		e.advanceBalloon(step)
		up := -e.balloon.Vel.Y
		if up < prev-1e-9 {
			t.Fatalf("ascent speed decreased: %v -> %v", prev, up)
		}
		prev = up
	}
	if !almostEqual(-e.balloon.Vel.Y, e.cfg.Balloon.SpeedCap) {
		t.Errorf("ascent speed %v, want cap %v", -e.balloon.Vel.Y, e.cfg.Balloon.SpeedCap)
	}
}

func TestCameraScrollsUpOnly(t *testing.T) {
	e := newPlayingEngine(t, 1)
	dz := e.cfg.Camera.DeadZone

	e.balloon.Pos.Y = -400
	e.updateCamera()
	if !almostEqual(e.cameraY, -400-dz) {
		t.Fatalf("cameraY = %v, want snap to %v", e.cameraY, -400-dz)
	}

	// Balloon drops back below the dead-zone line: camera holds.
	e.balloon.Pos.Y = -100
	e.updateCamera()
	if !almostEqual(e.cameraY, -400-dz) {
		t.Errorf("cameraY = %v after balloon dropped, want unchanged", e.cameraY)
	}

	// Exactly on the line: no movement either.
	e.balloon.Pos.Y = e.cameraY + dz
	e.updateCamera()
	if !almostEqual(e.cameraY, -400-dz) {
		t.Errorf("cameraY = %v with balloon on the line, want unchanged", e.cameraY)
	}
}

func TestScoreFromAltitude(t *testing.T) {
	e := newPlayingEngine(t, 1)

	calls := 0
	e.SetScoreListener(func(int) { calls++ })

	e.balloon.Pos.Y = -250
	e.updateScore()
	if e.Score() != 25 {
		t.Errorf("score = %d at altitude 25, want 25", e.Score())
	}
	if calls != 1 {
		t.Errorf("score listener called %d times, want 1", calls)
	}
	if snap := e.Snapshot(); !almostEqual(snap.Altitude, 25) {
		t.Errorf("snapshot altitude = %v, want 25", snap.Altitude)
	}

	// Unchanged score: no notification.
	e.updateScore()
	if calls != 1 {
		t.Errorf("score listener called %d times for unchanged score", calls)
	}

	// Below the start line the score clamps at zero.
	e.balloon.Pos.Y = 50
	e.updateScore()
	if e.Score() != 0 {
		t.Errorf("score = %d below start line, want 0", e.Score())
	}
}

func TestPurgeRemovesInactive(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.obstacles = append(e.obstacles,
		Obstacle{GameObject: GameObject{ID: 1, Pos: core.V(100, 3000), Radius: 10, Active: true}, Archetype: Spike},
		Obstacle{GameObject: GameObject{ID: 2, Pos: core.V(200, 100), Radius: 10, Active: false}, Archetype: Spike},
	)

	e.tick(e.cfg.Physics.Step)

	// ID 1 is far below the cull line, ID 2 was already dead; neither may
	// survive the tick.
	for _, o := range e.obstacles {
		if !o.Active {
			t.Fatal("inactive obstacle present after tick")
		}
		if o.ID == 1 || o.ID == 2 {
			t.Errorf("obstacle %d not culled", o.ID)
		}
	}
}

func TestShardLifetimeExpires(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: core.V(100, -500), Radius: 8, Active: true},
		Archetype:  Shard,
		Life:       3 * step / 2,
		HasLife:    true,
	})

	e.tick(step)
	if len(e.obstacles) != 1 {
		t.Fatal("shard expired one tick early")
	}
	e.tick(step)
	if len(e.obstacles) != 0 {
		t.Error("shard survived past its lifetime")
	}
}

func TestFramePrimesBeforeTicking(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.Frame(core.FrameInput{Now: 100})
	if e.elapsed != 0 {
		t.Errorf("elapsed = %v after priming frame, want 0", e.elapsed)
	}
}

func TestFrameAccumulatesFixedSteps(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.Frame(core.FrameInput{Now: 0})
	alpha := e.Frame(core.FrameInput{Now: 4.5 * step})

	if !almostEqual(e.elapsed, 4*step) {
		t.Errorf("elapsed = %v, want exactly 4 steps (%v)", e.elapsed, 4*step)
	}
	if !almostEqual(alpha, 0.5) {
		t.Errorf("alpha = %v, want 0.5", alpha)
	}
}

func TestFrameClampsStallDelta(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.Frame(core.FrameInput{Now: 0})
	e.Frame(core.FrameInput{Now: 10})

	max := e.cfg.Physics.MaxFrameDelta
	if e.elapsed > max+1e-9 {
		t.Errorf("elapsed = %v after 10 s stall, want at most %v", e.elapsed, max)
	}
	if e.elapsed < max-2*e.cfg.Physics.Step {
		t.Errorf("elapsed = %v, want the clamped delta consumed", e.elapsed)
	}
}

func TestFrameIgnoresBackwardClock(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.Frame(core.FrameInput{Now: 5})
	e.Frame(core.FrameInput{Now: 3})
	if e.elapsed != 0 {
		t.Errorf("elapsed = %v after backward clock, want 0", e.elapsed)
	}
}

func TestPauseDropsBufferedTime(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.Frame(core.FrameInput{Now: 0})
	e.Frame(core.FrameInput{Now: 0.6 * step}) // partial step buffered

	e.PauseGame()
	if alpha := e.Frame(core.FrameInput{Now: 5}); alpha != 0 {
		t.Errorf("alpha = %v while paused, want 0", alpha)
	}

	e.ResumeGame()
	e.Frame(core.FrameInput{Now: 5.003})
	if e.elapsed != 0 {
		t.Errorf("elapsed = %v: buffered pause time leaked into ticks", e.elapsed)
	}
}

func TestStopResetsFrameClock(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.Frame(core.FrameInput{Now: 0})
	e.Frame(core.FrameInput{Now: 6.5 * step})
	if !almostEqual(e.elapsed, 6*step) {
		t.Fatalf("elapsed = %v, want 6 steps", e.elapsed)
	}

	e.Stop()
	e.Frame(core.FrameInput{Now: 50}) // ignored entirely
	e.Start()
	e.Frame(core.FrameInput{Now: 100})            // primes the clock anew
	e.Frame(core.FrameInput{Now: 100 + 3.2*step}) // buffered half step + 3.2 more

	if !almostEqual(e.elapsed, 9*step) {
		t.Errorf("elapsed = %v after stop/start, want 9 steps", e.elapsed)
	}
}

func TestViewportFollowsFrameInput(t *testing.T) {
	e := newPlayingEngine(t, 1)

	e.Frame(core.FrameInput{Now: 0, ViewportW: 2400, ViewportH: 900})
	if !almostEqual(e.viewportW, 2400) || !almostEqual(e.viewportH, 900) {
		t.Errorf("viewport = %vx%v, want 2400x900", e.viewportW, e.viewportH)
	}

	// Zero dimensions keep the previous viewport.
	e.Frame(core.FrameInput{Now: 0.01})
	if !almostEqual(e.viewportW, 2400) {
		t.Errorf("viewport reset by zero-size frame input: %v", e.viewportW)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() uint64 {
		e := newPlayingEngine(t, 99)
		for i := 1; i <= 600; i++ {
			now := float64(i) / 60
			e.Frame(core.FrameInput{
				Now:          now,
				PointerValid: true,
				Pointer: core.V(
					960+400*math.Sin(now*1.3),
					500+200*math.Cos(now*0.7),
				),
				ViewportW: e.viewportW,
				ViewportH: e.viewportH,
			})
		}
		return e.Snapshot().Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("identical input sequences diverged: %#x vs %#x", a, b)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	run := func(seed int64) uint64 {
		e := newPlayingEngine(t, seed)
		for i := 1; i <= 600; i++ {
			e.Frame(core.FrameInput{Now: float64(i) / 60})
		}
		return e.Snapshot().Hash()
	}

	if a, b := run(1), run(2); a == b {
		t.Error("different seeds produced identical runs")
	}
}

func TestGameOverMidFrameDropsBufferedSteps(t *testing.T) {
	e := newPlayingEngine(t, 1)
	step := e.cfg.Physics.Step

	e.obstacles = append(e.obstacles, Obstacle{
		GameObject: GameObject{Pos: e.balloon.Pos, Radius: 100, Active: true},
		Archetype:  Block,
		W:          200,
		H:          200,
	})

	e.Frame(core.FrameInput{Now: 0})
	alpha := e.Frame(core.FrameInput{Now: 5.5 * step})

	if e.State() != StateGameOver {
		t.Fatalf("state = %v, want gameOver", e.State())
	}
	// The run ended on the first buffered step. The remainder must be
	// discarded so the renderer never extrapolates past the final tick.
	if alpha < 0 || alpha >= 1 {
		t.Fatalf("alpha = %v after terminal frame, want a fraction in [0,1)", alpha)
	}
	if alpha != 0 {
		t.Errorf("alpha = %v after terminal frame, want 0", alpha)
	}
	if !almostEqual(e.elapsed, step) {
		t.Errorf("elapsed = %v, want a single step", e.elapsed)
	}
}

func TestFieldForcePullsWithinBand(t *testing.T) {
	e := newPlayingEngine(t, 1)
	fc := e.cfg.Field
	step := e.cfg.Physics.Step

	// The shield rests at (960, 378) with radius 42, so a radius-10
	// obstacle has its inner cutoff at 42+10+10 = 62 units. Both bodies
	// below sit 100 units out, inside the (62, 200) attraction band.
	e.obstacles = append(e.obstacles,
		Obstacle{
			GameObject: GameObject{ID: 1, Pos: core.V(1060, 378), Radius: 10, Active: true},
			Archetype:  Spike,
		},
		Obstacle{
			GameObject: GameObject{ID: 2, Pos: core.V(960, 478), Radius: 10, Active: true},
			Archetype:  Rotor,
		},
	)

	e.advanceObstacles(step)

	pull := fc.AttractK / (100.0 * 100.0)

	// Spike (mass 1.0): full inverse-square pull toward the shield, then
	// the unconditional damping pass.
	wantX := -pull * fc.Damping
	if !almostEqual(e.obstacles[0].Vel.X, wantX) || !almostEqual(e.obstacles[0].Vel.Y, 0) {
		t.Errorf("spike vel = %+v, want (%v, 0)", e.obstacles[0].Vel, wantX)
	}

	// Rotor at the same distance: same force divided by its heavier mass.
	wantY := -pull / Rotor.Mass() * fc.Damping
	if !almostEqual(e.obstacles[1].Vel.Y, wantY) || !almostEqual(e.obstacles[1].Vel.X, 0) {
		t.Errorf("rotor vel = %+v, want (0, %v)", e.obstacles[1].Vel, wantY)
	}
}

func TestFieldForceSkipsOutsideBandAndAnchored(t *testing.T) {
	e := newPlayingEngine(t, 1)
	fc := e.cfg.Field
	step := e.cfg.Physics.Step

	e.obstacles = append(e.obstacles,
		// 250 units out, beyond the outer range: damping only.
		Obstacle{
			GameObject: GameObject{ID: 1, Pos: core.V(1210, 378), Vel: core.V(50, 0), Radius: 10, Active: true},
			Archetype:  Spike,
		},
		// 50 units out, under the 62-unit inner cutoff: damping only.
		Obstacle{
			GameObject: GameObject{ID: 2, Pos: core.V(1010, 378), Vel: core.V(10, 0), Radius: 10, Active: true},
			Archetype:  Spike,
		},
		// Exactly on the outer range. The band is open at both ends.
		Obstacle{
			GameObject: GameObject{ID: 3, Pos: core.V(1160, 378), Radius: 10, Active: true},
			Archetype:  Spike,
		},
		// Anchored bodies are exempt from the field even inside the band.
		Obstacle{
			GameObject: GameObject{ID: 4, Pos: core.V(860, 378), Radius: 10, Active: true},
			Archetype:  Spike,
			Anchored:   true,
		},
	)

	e.advanceObstacles(step)

	if got, want := e.obstacles[0].Vel.X, 50*fc.Damping; !almostEqual(got, want) {
		t.Errorf("beyond range: vel.X = %v, want %v", got, want)
	}
	if got, want := e.obstacles[1].Vel.X, 10*fc.Damping; !almostEqual(got, want) {
		t.Errorf("under inner cutoff: vel.X = %v, want %v", got, want)
	}
	if v := e.obstacles[2].Vel; v.X != 0 || v.Y != 0 {
		t.Errorf("on the outer boundary: vel = %+v, want zero", v)
	}
	if v := e.obstacles[3].Vel; v.X != 0 || v.Y != 0 {
		t.Errorf("anchored: vel = %+v, want zero", v)
	}
}

func TestShieldMassFromConfig(t *testing.T) {
	e := newPlayingEngine(t, 1)
	if !almostEqual(e.shield.Mass, e.cfg.Shield.Mass) {
		t.Errorf("shield mass = %v, want %v", e.shield.Mass, e.cfg.Shield.Mass)
	}
}
