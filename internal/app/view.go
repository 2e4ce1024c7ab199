package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/overlay"
	"github.com/riordanpawley/tomodoro/internal/ui/render"
	"github.com/riordanpawley/tomodoro/internal/ui/statusbar"
	"github.com/riordanpawley/tomodoro/internal/ui/toast"
)

// PipBanner replaces the dial while the companion shows the timer
const PipBanner = "PIP mode: the timer is showing in the companion pane"

// wideLayout is the width from which panels sit side by side
const wideLayout = 80

// View renders the main window
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader(), m.renderTimer()}

	tasks := m.renderTasks()
	stats := m.renderStats()
	if m.width >= wideLayout {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tasks, " ", stats))
	} else {
		sections = append(sections, tasks, stats)
	}

	if m.state.Media().IsPlaying || m.showPlayer {
		sections = append(sections, m.renderMedia())
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	sb := statusbar.New(m.inputMode(), m.width, m.styles)
	if info := m.companionStatus(); info != "" {
		sb = sb.WithInfo(info)
	}
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	// If overlay is open, render it on top (centered)
	if current := m.overlays.Current(); current != nil {
		overlayView := current.View()
		if title := current.Title(); title != "" {
			overlayView = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), overlayView)
		}
		overlayWidth, overlayHeight := current.Size()
		overlayView = m.styles.Overlay.
			Width(overlayWidth).
			Height(overlayHeight).
			Render(overlayView)

		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlayView)
	}

	if len(m.toasts) > 0 {
		if toastView := toast.New(m.styles).Render(m.toasts, m.width); toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// inputMode derives the status bar mode from the open dialog
func (m Model) inputMode() types.Mode {
	switch m.overlays.Current().(type) {
	case *overlay.ConfirmDialog:
		return types.ModeConfirm
	case *overlay.TaskPrompt, *overlay.DurationForm, *overlay.PathPrompt:
		return types.ModeInput
	default:
		return types.ModeNormal
	}
}

func (m Model) renderHeader() string {
	timer := m.state.Timer()
	title := m.styles.PanelTitle.Render("tomodoro")
	meta := m.styles.Muted.Render(fmt.Sprintf("  %s · %d completed · theme %s",
		timer.CurrentMode.Title(), timer.CompletedPomodoros, m.styles.Theme))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, meta)
}

func (m Model) renderTimer() string {
	timer := m.state.Timer()
	width := min(m.width-4, 60)
	if timer.PipActive {
		return m.styles.Panel.Width(width).Render(m.styles.Banner.Render(PipBanner))
	}

	frame := render.Project(timer)
	dial := render.RenderDial(frame, width-4, m.styles.Dial(timer.CurrentMode))
	var task string
	if timer.CurrentTask != nil {
		if i := domain.FindTask(m.state.Tasks(), *timer.CurrentTask); i >= 0 {
			task = m.styles.TaskCurrent.Render("Working on: " + m.state.Tasks()[i].Text)
		}
	}
	if task != "" {
		dial = lipgloss.JoinVertical(lipgloss.Left, dial, "", task)
	}
	return m.styles.Panel.Width(width).Render(dial)
}

func (m Model) renderTasks() string {
	tasks := m.state.Tasks()
	timer := m.state.Timer()

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("Tasks"))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks yet. Press a to add one."))
	}
	for i, task := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		cursor := "  "
		style := m.styles.Task
		switch {
		case task.Completed:
			style = m.styles.TaskDone
		case timer.CurrentTask != nil && *timer.CurrentTask == task.ID:
			style = m.styles.TaskCurrent
		}
		if i == m.cursor {
			cursor = "> "
			if !task.Completed {
				style = m.styles.TaskSelected
			}
		}
		badge := m.styles.PriorityBadge(task.Priority).Render(task.Priority.Label())
		spent := m.styles.Muted.Render(fmt.Sprintf(" %dm", task.TimeSpent))
		b.WriteString(cursor + badge + " " + style.Render(task.Text) + spent)
	}

	return m.styles.Panel.Width(m.panelWidth()).Render(b.String())
}

func (m Model) renderStats() string {
	stats := m.state.Stats()
	settings := m.state.Settings()

	row := func(label string, value any) string {
		return m.styles.StatLabel.Render(fmt.Sprintf("%-14s", label)) + m.styles.StatValue.Render(fmt.Sprint(value))
	}
	lines := []string{
		m.styles.PanelTitle.Render("Stats"),
		row("Today", stats.TodayPomodoros),
		row("Completed", stats.CompletedPomodoros),
		row("Focus time", fmt.Sprintf("%dm", stats.TotalTime)),
		row("Streak", stats.CurrentStreak),
		row("Sessions", fmt.Sprintf("%d/%d min", settings.FocusDuration, settings.ShortBreakDuration)),
	}
	if presets := m.state.Presets(); len(presets) > 0 {
		lines = append(lines, row("Presets", len(presets)))
	}
	return m.styles.Panel.Width(m.panelWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderMedia() string {
	media := m.state.Media()
	state := "Paused"
	if media.IsPlaying {
		state = "Playing"
	}
	lines := []string{
		m.styles.PanelTitle.Render("Music · " + state),
		m.styles.TrackName.Render(media.CurrentTrack.Name),
		m.styles.TrackArtist.Render(media.CurrentTrack.Artist),
	}
	if note := m.playerNote(); note != "" {
		lines = append(lines, m.styles.Muted.Render(note))
	}
	return m.styles.Panel.Width(min(m.width-4, 60)).Render(strings.Join(lines, "\n"))
}

func (m Model) playerNote() string {
	switch {
	case !m.media.Available():
		return "no player configured"
	case !m.media.Ready():
		return "player not ready"
	}
	return ""
}

// companionStatus separates a launched pane from one that has dialed in
func (m Model) companionStatus() string {
	switch {
	case m.channel.Connected():
		return "companion open"
	case m.channel.IsOpen():
		return "companion starting"
	}
	return ""
}

func (m Model) panelWidth() int {
	if m.width >= wideLayout {
		return (m.width - 6) / 2
	}
	return m.width - 4
}
