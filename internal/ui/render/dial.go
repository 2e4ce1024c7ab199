package render

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// DialStyle colours a dial
type DialStyle struct {
	Accent     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Track      lipgloss.Color
}

// RenderDial draws the clock, label and progress bar of a frame
func RenderDial(f Frame, width int, style DialStyle) string {
	if width < 12 {
		width = 12
	}

	bar := progress.New(
		progress.WithSolidFill(string(style.Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = string(style.Track)

	label := lipgloss.NewStyle().
		Foreground(style.Accent).
		Bold(true).
		Render(f.Label)

	clock := lipgloss.NewStyle().
		Foreground(style.Foreground).
		Bold(true).
		Padding(0, 1).
		Render(f.PlayIcon + " " + f.Clock)

	status := "stopped"
	switch {
	case f.Running:
		status = "running"
	case f.Paused:
		status = "paused"
	}
	detail := lipgloss.NewStyle().
		Foreground(style.Muted).
		Render(fmt.Sprintf("%s · %3.0f°", status, f.Angle))

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center,
		center.Render(label),
		center.Render(clock),
		bar.ViewAs(f.Ratio),
		center.Render(detail),
	)
}
