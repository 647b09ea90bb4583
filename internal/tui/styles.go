package tui

import "github.com/charmbracelet/lipgloss"

const (
	cellWidth  = 5
	panelGap   = 4
	emptyGlyph = "·"
)

// Styles used by View. Cell styles must keep cellWidth so mouse hits line up.
// WinningCursor marks the cursor resting on a winning cell.
type Styles struct {
	Cell          lipgloss.Style
	Cursor        lipgloss.Style
	Winning       lipgloss.Style
	WinningCursor lipgloss.Style
	Status        lipgloss.Style
	Caption       lipgloss.Style
	Move          lipgloss.Style
	CurrentMove   lipgloss.Style
	Help          lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	winning := cell.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))

	return Styles{
		Cell:          cell,
		Cursor:        cell.Reverse(true),
		Winning:       winning,
		WinningCursor: winning.Underline(true),
		Status:        lipgloss.NewStyle().Bold(true),
		Caption:       lipgloss.NewStyle().Faint(true),
		Move:          lipgloss.NewStyle(),
		CurrentMove:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("57")),
		Help:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
