package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hudLivesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HUD keeps the values shown in the header bar. It receives them from the
// game as a Notifier.
type HUD struct {
	Score int
	Lives int
	Level int
}

func (h *HUD) ScoreChanged(score int) { h.Score = score }
func (h *HUD) LivesChanged(lives int) { h.Lives = lives }
func (h *HUD) LevelChanged(level int) { h.Level = level }

// View renders the header bar for the given width.
func (h *HUD) View(width int, status string) string {
	hearts := hudLivesStyle.Render(strings.Repeat("♥", max(h.Lives, 0)))
	left := fmt.Sprintf("SCORE %d   LEVEL %d   ", h.Score, h.Level)
	bar := hudStyle.Render(left) + " " + hearts
	if status != "" {
		bar += "  " + helpStyle.Render(status)
	}
	if width > 0 {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}
