package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"skyshield/internal/config"
	"skyshield/internal/core"
	"skyshield/internal/game"
	"skyshield/internal/storage"
)

// keyHoldDuration is how long a key press counts as "held". Terminals only
// report presses (with auto-repeat), never releases, so a held key is
// approximated by a short decay window refreshed on every repeat.
const keyHoldDuration = 150 * time.Millisecond

// sessionStats is shared mutable state reachable from engine callbacks.
// Bubble Tea models are value types, so callback-updated state lives behind
// a pointer.
type sessionStats struct {
	best  int
	saved bool
}

// Model is the Bubble Tea model running one skyshield session.
type Model struct {
	engine *game.Engine
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	stats  *sessionStats

	pointer      core.Vec2
	pointerValid bool
	heldUntil    [4]time.Time

	quitting bool
}

// NewModel creates a model with a freshly constructed engine.
func NewModel(cfg core.RuntimeConfig, gameCfg config.GameConfig, store *storage.Store) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	engine, err := game.New(gameCfg, cfg)
	if err != nil {
		return Model{}, err
	}

	stats := &sessionStats{}
	if store != nil {
		if best, err := store.BestScore(); err == nil {
			stats.best = best
		}
	}

	m := Model{
		engine: engine,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		stats:  stats,
	}

	// Best-score persistence is invoked from the state-changed(gameOver)
	// notification, nowhere else.
	engine.SetStateListener(func(st game.State) {
		if st == game.StateGameOver {
			stats.saved = false
		}
	})
	engine.SetScoreListener(func(score int) {
		if score > stats.best {
			stats.best = score
		}
	})

	return m, nil
}

// Init starts the engine and the frame loop.
func (m Model) Init() tea.Cmd {
	m.engine.Start()
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.engine.Stop()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil

	case "enter":
		m.engine.StartGame()
	case "p", "esc":
		switch m.engine.State() {
		case game.StatePlaying:
			m.engine.PauseGame()
		case game.StatePaused:
			m.engine.ResumeGame()
		}
	case "r":
		m.engine.RestartGame()

	case "v":
		m.engine.ToggleDebug()
	case "1":
		m.engine.SetShieldSize(game.ShieldSmall)
	case "2":
		m.engine.SetShieldSize(game.ShieldNormal)
	case "3":
		m.engine.SetShieldSize(game.ShieldLarge)
	case "[":
		m.engine.SetSensitivity(m.engine.Settings().Sensitivity - 0.1)
	case "]":
		m.engine.SetSensitivity(m.engine.Settings().Sensitivity + 0.1)

	case "left", "a":
		m.heldUntil[core.KeyLeft] = time.Now().Add(keyHoldDuration)
	case "right", "d":
		m.heldUntil[core.KeyRight] = time.Now().Add(keyHoldDuration)
	case "up", "w":
		m.heldUntil[core.KeyUp] = time.Now().Add(keyHoldDuration)
	case "down", "s":
		m.heldUntil[core.KeyDown] = time.Now().Add(keyHoldDuration)
	}

	return m, nil
}

// handleMouse tracks the pointer in screen-space world units; the engine
// camera-adjusts it itself.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer = core.V(
		(float64(msg.X)+0.5)*core.CellWorldW,
		(float64(msg.Y)+0.5)*core.CellWorldH,
	)
	m.pointerValid = true
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleFrame feeds one display frame into the engine.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var held core.KeySet
	for k := core.KeyLeft; k <= core.KeyDown; k++ {
		if now.Before(m.heldUntil[k]) {
			held = held.With(k)
		}
	}

	m.engine.Frame(core.FrameInput{
		Now:          float64(now.UnixNano()) / float64(time.Second),
		Pointer:      m.pointer,
		PointerValid: m.pointerValid,
		Held:         held,
		ViewportW:    float64(m.config.ScreenW) * core.CellWorldW,
		ViewportH:    float64(m.config.ScreenH) * core.CellWorldH,
	})

	// Persist once per game over.
	if m.engine.State() == game.StateGameOver && !m.stats.saved {
		m.stats.saved = true
		if m.store != nil && m.engine.Score() > 0 {
			snap := m.engine.Snapshot()
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveRun(snap.Score, int(snap.Altitude), snap.Elapsed)
		}
	}

	return m, frameCmd(m.config.FrameRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderGame()

	dir := filepath.Join(os.Getenv("HOME"), ".skyshield", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("skyshield_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.renderGame()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session.
func Run(cfg core.RuntimeConfig, gameCfg config.GameConfig, store *storage.Store) error {
	model, err := NewModel(cfg, gameCfg, store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Pointer steering
	)

	_, err = p.Run()
	return err
}
