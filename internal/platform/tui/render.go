package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skyshield/internal/core"
)

// styleFor caches one lipgloss style per color tag, built on demand from the
// core palette mapping.
var styleCache = map[core.Color]lipgloss.Style{}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := styleCache[c]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if idx := c.ANSI256(); idx != "" {
		s = s.Foreground(lipgloss.Color(idx))
	}
	styleCache[c] = s
	return s
}

// RenderScreen converts a screen buffer to a styled string for display.
// Consecutive cells sharing a color are emitted as one styled run to keep
// ANSI escape overhead down at the frame rates the game runs at.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run []rune
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		runColor := s.GetCell(0, y).Color
		run = run[:0]
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(styleFor(runColor).Render(string(run)))
			}
		}

		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
				run = run[:0]
			}
			run = append(run, cell.Rune)
		}
		flush()
	}
	return sb.String()
}
