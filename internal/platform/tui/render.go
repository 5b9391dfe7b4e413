package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorStyles maps drawing roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorSky:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBird:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorGround:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorScore:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorBurst:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		cells := s.RowCells(y)
		for x := 0; x < len(cells); {
			color := cells[x].Color
			var run strings.Builder
			for ; x < len(cells) && cells[x].Color == color; x++ {
				run.WriteRune(cells[x].Rune)
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
