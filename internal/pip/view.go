package pip

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/render"
	"github.com/riordanpawley/tomodoro/internal/ui/statusbar"
	"github.com/riordanpawley/tomodoro/internal/ui/toast"
)

// View renders the companion window
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	timer := m.timer.Value()
	frame := render.Project(timer)
	width := max(m.width-4, 12)

	sections := []string{
		m.styles.PanelTitle.Render(render.Title(frame)),
		m.styles.Panel.Width(width).Render(render.RenderDial(frame, width-4, m.styles.Dial(timer.CurrentMode))),
	}

	media := m.media.Value()
	state := "paused"
	if media.IsPlaying {
		state = "playing"
	}
	track := []string{
		m.styles.TrackName.Render(media.CurrentTrack.Name),
		m.styles.TrackArtist.Render(media.CurrentTrack.Artist),
		m.styles.Muted.Render("music " + state),
	}
	sections = append(sections, strings.Join(track, "\n"))

	sb := statusbar.New(types.ModeNormal, m.width, m.styles).WithHints(statusbar.CompanionHints)
	sections = append(sections, sb.Render())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if len(m.toasts) > 0 {
		view = lipgloss.JoinVertical(lipgloss.Left, view, toast.New(m.styles).Render(m.toasts, m.width))
	}
	return view
}
