package tui

import (
	"fmt"
	"math"

	"skyshield/internal/core"
	"skyshield/internal/game"
)

// Visual characters for rendering
const (
	BalloonChar = '◉'
	ShieldChar  = '='
	BlockChar   = '█'
	SpikeChar   = '▲'
	RotorChar   = '✳'
	SweeperChar = '▒'
	ShardChar   = '·'
)

// hitFlashSeconds is how long the shield glows after an obstacle contact.
const hitFlashSeconds = 0.25

// renderGame draws the interpolated snapshot into the screen buffer.
func (m Model) renderGame() {
	m.screen.Clear()
	snap := m.engine.Snapshot()

	cameraY := snap.PrevCameraY + (snap.CameraY-snap.PrevCameraY)*snap.Alpha

	for _, o := range snap.Obstacles {
		m.drawObstacle(o, snap.Alpha, cameraY)
	}
	m.drawShield(snap, cameraY)
	m.drawBalloon(snap, cameraY)

	m.drawHUD(snap)
	if snap.Debug {
		m.drawDebug(snap)
	}

	switch snap.State {
	case game.StateMenu:
		m.drawOverlay("SKYSHIELD", "Enter to start  ·  mouse or arrows to steer")
	case game.StatePaused:
		m.drawOverlay("Paused", "P to continue")
	case game.StateGameOver:
		m.drawOverlay(fmt.Sprintf("Game Over · score %d", snap.Score), "R to restart")
	}
}

// toCell converts an interpolated world position to screen cell coordinates.
func toCell(pos core.Vec2, cameraY float64) (int, int) {
	return int(pos.X / core.CellWorldW), int((pos.Y - cameraY) / core.CellWorldH)
}

func lerped(prev, cur core.Vec2, alpha float64) core.Vec2 {
	return prev.Lerp(cur, alpha)
}

func (m Model) drawBalloon(snap game.Snapshot, cameraY float64) {
	pos := lerped(snap.Balloon.PrevPos, snap.Balloon.Pos, snap.Alpha)
	x, y := toCell(pos, cameraY)
	m.screen.SetCell(x, y, BalloonChar, core.ColorBrightRed)
	// Basket line below the envelope.
	m.screen.SetCell(x, y+1, '╹', core.ColorYellow)
}

func (m Model) drawShield(snap game.Snapshot, cameraY float64) {
	pos := lerped(snap.Shield.PrevPos, snap.Shield.Pos, snap.Alpha)
	x, y := toCell(pos, cameraY)

	color := core.ColorBrightCyan
	if snap.Shield.HasHit && snap.Elapsed-snap.Shield.LastHitTime < hitFlashSeconds {
		color = core.ColorBrightWhite
	}

	halfCells := int(math.Ceil(snap.Shield.Radius / core.CellWorldW))
	for dx := -halfCells; dx <= halfCells; dx++ {
		m.screen.SetCell(x+dx, y, ShieldChar, color)
	}
}

func (m Model) drawObstacle(o game.ObstacleView, alpha float64, cameraY float64) {
	pos := lerped(o.PrevPos, o.Pos, alpha)
	x, y := toCell(pos, cameraY)

	switch o.Archetype {
	case game.Block, game.Sweeper:
		glyph := BlockChar
		color := core.ColorGray
		if o.Archetype == game.Sweeper {
			glyph = SweeperChar
			color = core.ColorBrightMagenta
		}
		halfW := int(math.Ceil(o.W / 2 / core.CellWorldW))
		halfH := int(math.Ceil(o.H / 2 / core.CellWorldH))
		for dy := -halfH; dy <= halfH; dy++ {
			for dx := -halfW; dx <= halfW; dx++ {
				m.screen.SetCell(x+dx, y+dy, glyph, color)
			}
		}

	case game.Spike:
		m.screen.SetCell(x, y, SpikeChar, core.ColorBrightYellow)

	case game.Rotor:
		m.screen.SetCell(x, y, RotorChar, core.ColorBrightBlue)
		armLen := int(math.Ceil(o.Radius / core.CellWorldW))
		for arm := 0; arm < o.Arms; arm++ {
			angle := o.Angle + 2*math.Pi*float64(arm)/float64(o.Arms)
			for step := 1; step <= armLen; step++ {
				ax := x + int(math.Round(math.Cos(angle)*float64(step)))
				ay := y + int(math.Round(math.Sin(angle)*float64(step)*core.CellWorldW/core.CellWorldH))
				m.screen.SetCell(ax, ay, '·', core.ColorBlue)
			}
		}

	case game.Shard:
		m.screen.SetCell(x, y, ShardChar, core.ColorBrightGreen)

	default:
		m.screen.SetCell(x, y, '?', core.ColorWhite)
	}
}

func (m Model) drawHUD(snap game.Snapshot) {
	hud := fmt.Sprintf(" Score %d   Best %d   %.0fs ", snap.Score, m.stats.best, snap.Elapsed)
	m.screen.DrawText(1, 0, hud, core.ColorBrightWhite)
}

func (m Model) drawDebug(snap game.Snapshot) {
	lines := []string{
		fmt.Sprintf("state %s", snap.State),
		fmt.Sprintf("obstacles %d", len(snap.Obstacles)),
		fmt.Sprintf("difficulty %.2f", snap.Difficulty),
		fmt.Sprintf("alpha %.2f", snap.Alpha),
		fmt.Sprintf("camera %.0f", snap.CameraY),
		fmt.Sprintf("shield v %.0f", snap.Shield.Pos.Sub(snap.Shield.PrevPos).Len()*120),
	}
	for i, line := range lines {
		m.screen.DrawText(m.screen.Width()-len(line)-1, 1+i, line, core.ColorGreen)
	}
}

func (m Model) drawOverlay(title, subtitle string) {
	midY := m.screen.Height() / 2
	m.screen.DrawTextCentered(midY-1, title, core.ColorBrightYellow)
	m.screen.DrawTextCentered(midY+1, subtitle, core.ColorWhite)
}
