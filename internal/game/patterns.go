package game

import (
	"math"

	"skyshield/internal/config"
	"skyshield/internal/core"
)

// SpawnParams carries everything a formation builder may reason about when
// laying out obstacles. Formations are placed just above the visible window
// and independently guarantee a traversable passage sized relative to the
// shield radius.
type SpawnParams struct {
	CenterX      float64 // Horizontal screen center in world units
	SpawnY       float64 // World y of the spawn line above the visible window
	ViewportW    float64
	Altitude     float64 // Current scaled climb, used for pattern unlocking
	BalloonSpeed float64 // Current upward speed magnitude
	ShieldRadius float64
	Difficulty   float64 // Normalized [0, 1]
}

// safeGap returns the minimum passage width every formation must leave open.
func (p SpawnParams) safeGap() float64 {
	return 2.4*p.ShieldRadius + 20
}

// Pattern is an immutable formation recipe: a name, a selection weight, a
// minimum unlock altitude, and a builder producing zero or more obstacles.
// Patterns are registered once at generator construction.
type Pattern struct {
	Name        string
	Weight      float64
	MinAltitude float64
	Build       func(p SpawnParams, r *rng) []Obstacle
}

// Generator is the stateful procedural spawner. A countdown timer gates
// spawning; on expiry a pattern is chosen by weighted random selection with
// altitude gating and an anti-repetition check over a rolling history.
type Generator struct {
	spawn config.SpawnConfig
	diff  config.DifficultyConfig

	patterns []Pattern
	rnd      *rng
	timer    float64
	history  []string
	nextID   int

	chicaneLeft bool // Alternates the chicane wall side between builds
}

// NewGenerator creates a generator with the default pattern set registered.
func NewGenerator(spawn config.SpawnConfig, diff config.DifficultyConfig, seed int64) *Generator {
	g := &Generator{
		spawn:  spawn,
		diff:   diff,
		rnd:    newRNG(seed),
		nextID: 1,
	}
	g.timer = spawn.BaseInterval
	g.patterns = []Pattern{
		{Name: "block-rain", Weight: 3.0, MinAltitude: 0, Build: g.buildBlockRain},
		{Name: "spike-channel", Weight: 2.2, MinAltitude: 15, Build: g.buildSpikeChannel},
		{Name: "chicane", Weight: 2.0, MinAltitude: 30, Build: g.buildChicane},
		{Name: "shard-burst", Weight: 1.2, MinAltitude: 50, Build: g.buildShardBurst},
		{Name: "grid-drop", Weight: 2.0, MinAltitude: 60, Build: g.buildGridDrop},
		{Name: "rotor-gate", Weight: 1.5, MinAltitude: 90, Build: g.buildRotorGate},
		{Name: "sweeper-run", Weight: 1.5, MinAltitude: 120, Build: g.buildSweeperRun},
	}
	return g
}

// Reset reseeds the generator for a fresh run. Obstacle IDs keep counting up
// so IDs stay unique across restarts within one engine instance.
func (g *Generator) Reset(seed int64) {
	g.rnd = newRNG(seed)
	g.timer = g.spawn.BaseInterval
	g.history = g.history[:0]
	g.chicaneLeft = false
}

// Difficulty maps elapsed play time to the normalized [0, 1] ramp.
func (g *Generator) Difficulty(elapsed float64) float64 {
	if !g.diff.Enabled || g.diff.RampSeconds <= 0 {
		return core.ClampF(g.diff.InitialLevel, 0, 1)
	}
	progress := core.ClampF(elapsed/g.diff.RampSeconds, 0, 1)
	return core.ClampF(g.diff.InitialLevel+progress*(1-g.diff.InitialLevel), 0, 1)
}

// Interval returns the spawn interval for the given difficulty, interpolated
// linearly from the base interval down to the floor.
func (g *Generator) Interval(difficulty float64) float64 {
	return g.spawn.BaseInterval + (g.spawn.MinInterval-g.spawn.BaseInterval)*core.ClampF(difficulty, 0, 1)
}

// Update advances the spawn timer by dt and, on expiry, selects a pattern
// and returns its freshly built obstacles. Returns nil between spawns.
func (g *Generator) Update(dt float64, p SpawnParams) []Obstacle {
	g.timer -= dt
	if g.timer > 0 {
		return nil
	}
	g.timer = g.Interval(p.Difficulty)

	pat := g.selectPattern(p.Altitude)
	if pat == nil {
		return nil
	}
	g.recordSelection(pat.Name)

	obstacles := pat.Build(p, g.rnd)
	for i := range obstacles {
		obstacles[i].ID = g.nextID
		g.nextID++
		obstacles[i].Active = true
		obstacles[i].PrevPos = obstacles[i].Pos
		obstacles[i].Origin = obstacles[i].Pos
	}
	return obstacles
}

// selectPattern picks one unlocked pattern by cumulative weight draw.
// If the draw would select the same name a third consecutive time, it is
// retried against the remaining pool when alternatives exist.
func (g *Generator) selectPattern(altitude float64) *Pattern {
	eligible := make([]*Pattern, 0, len(g.patterns))
	for i := range g.patterns {
		if g.patterns[i].MinAltitude <= altitude {
			eligible = append(eligible, &g.patterns[i])
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	chosen := g.weightedDraw(eligible)
	if chosen != nil && g.wouldRepeatThrice(chosen.Name) && len(eligible) > 1 {
		remaining := make([]*Pattern, 0, len(eligible)-1)
		for _, pat := range eligible {
			if pat.Name != chosen.Name {
				remaining = append(remaining, pat)
			}
		}
		chosen = g.weightedDraw(remaining)
	}
	return chosen
}

func (g *Generator) weightedDraw(pool []*Pattern) *Pattern {
	total := 0.0
	for _, pat := range pool {
		total += pat.Weight
	}
	if total <= 0 {
		return nil
	}
	draw := g.rnd.Float() * total
	for _, pat := range pool {
		draw -= pat.Weight
		if draw < 0 {
			return pat
		}
	}
	return pool[len(pool)-1]
}

// wouldRepeatThrice reports whether name was selected twice in a row already.
func (g *Generator) wouldRepeatThrice(name string) bool {
	n := len(g.history)
	return n >= 2 && g.history[n-1] == name && g.history[n-2] == name
}

// recordSelection appends to the rolling history, bounded by the configured
// size.
func (g *Generator) recordSelection(name string) {
	g.history = append(g.history, name)
	if max := g.spawn.HistorySize; max > 0 && len(g.history) > max {
		g.history = g.history[len(g.history)-max:]
	}
}

// History returns the rolling pattern-name history, most recent last.
func (g *Generator) History() []string {
	return g.history
}

// --- formation builders ---

// buildBlockRain scatters falling blocks across the width, never inside a
// safe band centered on the screen center.
func (g *Generator) buildBlockRain(p SpawnParams, r *rng) []Obstacle {
	gap := p.safeGap()
	bandMin := p.CenterX - gap/2
	bandMax := p.CenterX + gap/2

	count := 5 + int(p.Difficulty*4)
	out := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		w := r.Range(38, 72)
		h := r.Range(28, 44)

		var x float64
		for attempt := 0; attempt < 8; attempt++ {
			x = r.Range(w/2, p.ViewportW-w/2)
			if x+w/2 < bandMin || x-w/2 > bandMax {
				break
			}
			// Landed inside the safe band: push to the nearer side.
			if x < p.CenterX {
				x = bandMin - w/2 - r.Range(0, 60)
			} else {
				x = bandMax + w/2 + r.Range(0, 60)
			}
		}
		if x-w/2 < 0 || x+w/2 > p.ViewportW {
			continue
		}

		out = append(out, Obstacle{
			GameObject: GameObject{
				Pos:    core.V(x, p.SpawnY-r.Range(0, 180)),
				Vel:    core.V(0, 40+p.Difficulty*70),
				Radius: math.Max(w, h) / 2,
			},
			Archetype: Block,
			W:         w,
			H:         h,
		})
	}
	return out
}

// buildSpikeChannel lines both edges with anchored spikes, leaving a central
// channel at least one safe gap wide.
func (g *Generator) buildSpikeChannel(p SpawnParams, r *rng) []Obstacle {
	gap := p.safeGap()
	rows := 2 + int(p.Difficulty*2)
	rowSpacing := 90.0

	out := make([]Obstacle, 0, rows*2)
	for row := 0; row < rows; row++ {
		radius := r.Range(18, 26)
		y := p.SpawnY - float64(row)*rowSpacing

		// Edge inset shrinks with difficulty but always respects the channel.
		maxInset := (p.ViewportW - gap) / 2
		inset := core.ClampF(r.Range(40, 120)+p.Difficulty*80, radius, maxInset-radius)

		out = append(out,
			Obstacle{
				GameObject: GameObject{Pos: core.V(inset, y), Radius: radius},
				Archetype:  Spike,
				Anchored:   true,
			},
			Obstacle{
				GameObject: GameObject{Pos: core.V(p.ViewportW-inset, y), Radius: radius},
				Archetype:  Spike,
				Anchored:   true,
			},
		)
	}
	return out
}

// buildChicane places a single wall of adjoining blocks from one side,
// alternating sides between builds, leaving a safe gap at the far end.
func (g *Generator) buildChicane(p SpawnParams, r *rng) []Obstacle {
	gap := p.safeGap() + r.Range(0, 40)
	wallLen := p.ViewportW - gap
	blockW := 64.0
	blockH := 36.0
	count := int(wallLen / blockW)
	if count < 1 {
		return nil
	}

	g.chicaneLeft = !g.chicaneLeft
	out := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		var x float64
		if g.chicaneLeft {
			x = blockW/2 + float64(i)*blockW
		} else {
			x = p.ViewportW - blockW/2 - float64(i)*blockW
		}
		out = append(out, Obstacle{
			GameObject: GameObject{
				Pos:    core.V(x, p.SpawnY),
				Vel:    core.V(0, 25+p.Difficulty*40),
				Radius: blockW / 2,
			},
			Archetype: Block,
			W:         blockW,
			H:         blockH,
		})
	}
	return out
}

// buildShardBurst arranges short-lived shards in a ring with an open sector
// wide enough to pass through.
func (g *Generator) buildShardBurst(p SpawnParams, r *rng) []Obstacle {
	slots := 10 + r.Intn(4)
	ringRadius := r.Range(110, 170)
	center := core.V(r.Range(ringRadius, p.ViewportW-ringRadius), p.SpawnY-ringRadius)

	// Leave enough adjacent slots empty that the opening arc exceeds the
	// safe gap.
	arcPerSlot := 2 * math.Pi * ringRadius / float64(slots)
	open := int(math.Ceil(p.safeGap()/arcPerSlot)) + 1
	if open >= slots {
		open = slots - 1
	}
	openStart := r.Intn(slots)

	out := make([]Obstacle, 0, slots-open)
	for i := 0; i < slots; i++ {
		offset := (i - openStart + slots) % slots
		if offset < open {
			continue
		}
		angle := 2 * math.Pi * float64(i) / float64(slots)
		pos := center.Add(core.V(math.Cos(angle), math.Sin(angle)).Scale(ringRadius))
		out = append(out, Obstacle{
			GameObject: GameObject{
				Pos:    pos,
				Vel:    core.V(math.Cos(angle), math.Sin(angle)).Scale(r.Range(8, 24)),
				Radius: 8,
			},
			Archetype: Shard,
			Life:      r.Range(4, 6.5),
			HasLife:   true,
		})
	}
	return out
}

// buildGridDrop drops blocks in four columns, reserving exactly one column
// per pass as the open path.
func (g *Generator) buildGridDrop(p SpawnParams, r *rng) []Obstacle {
	const columns = 4
	colW := p.ViewportW / columns
	reserved := r.Intn(columns)
	blockW := colW * 0.6
	blockH := 40.0

	out := make([]Obstacle, 0, columns-1)
	for col := 0; col < columns; col++ {
		if col == reserved {
			continue
		}
		x := colW*float64(col) + colW/2
		out = append(out, Obstacle{
			GameObject: GameObject{
				Pos:    core.V(x, p.SpawnY-r.Range(0, 60)),
				Vel:    core.V(0, 60+p.Difficulty*80),
				Radius: blockW / 2,
			},
			Archetype: Block,
			W:         blockW,
			H:         blockH,
		})
	}
	return out
}

// buildRotorGate anchors spinning rotors across the width with safe-gap
// spacing between neighbors and the edges.
func (g *Generator) buildRotorGate(p SpawnParams, r *rng) []Obstacle {
	gap := p.safeGap()
	radius := 34.0
	count := 2
	if p.ViewportW >= 3*gap+6*radius {
		count += r.Intn(2)
	}

	// Spread rotor centers so every corridor between them is at least gap.
	span := p.ViewportW / float64(count+1)
	out := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		x := span*float64(i+1) + r.Range(-30, 30)
		x = core.ClampF(x, gap/2+radius, p.ViewportW-gap/2-radius)
		out = append(out, Obstacle{
			GameObject: GameObject{Pos: core.V(x, p.SpawnY), Radius: radius},
			Archetype:  Rotor,
			Anchored:   true,
			Arms:       3 + r.Intn(2),
			RotSpeed:   r.Sign() * (1.4 + p.Difficulty*1.8),
		})
	}
	return out
}

// buildSweeperRun sends wide sweepers across the screen from alternating
// sides. Sweepers never span the full width, so a path always remains.
func (g *Generator) buildSweeperRun(p SpawnParams, r *rng) []Obstacle {
	count := 1 + r.Intn(2)
	maxW := p.ViewportW - p.safeGap()
	w := core.ClampF(r.Range(120, 220), 60, maxW)
	h := 26.0

	out := make([]Obstacle, 0, count)
	dir := r.Sign()
	for i := 0; i < count; i++ {
		var x float64
		if dir > 0 {
			x = -w / 2
		} else {
			x = p.ViewportW + w/2
		}
		out = append(out, Obstacle{
			GameObject: GameObject{
				Pos:    core.V(x, p.SpawnY-float64(i)*140),
				Vel:    core.V(dir*(130+p.Difficulty*110), 0),
				Radius: w / 2,
			},
			Archetype: Sweeper,
			W:         w,
			H:         h,
			SweepDir:  dir,
		})
		dir = -dir
	}
	return out
}
