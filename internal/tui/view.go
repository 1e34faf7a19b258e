package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/multitimer/internal/timers"
)

const (
	// title, blank, blank, status, help
	chromeLines   = 5
	scrollHintFmt = "  … %d more"
)

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	expiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MultiCountdown Timer"))
	b.WriteString("\n\n")
	b.WriteString(a.renderList())
	if a.modal != modalNone {
		b.WriteString("\n\n")
		b.WriteString(a.renderModal())
	}
	b.WriteString("\n")
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	b.WriteString("\n" + a.renderHelp())
	return b.String()
}

func (a *App) renderList() string {
	if len(a.timers) == 0 {
		return emptyStyle.Render("Add your first timer")
	}
	start, end := 0, len(a.timers)
	if rows := a.visibleRows(); rows > 0 && rows < len(a.timers) {
		start = a.offset
		end = min(start+rows, len(a.timers))
	}
	width := 0
	for _, t := range a.timers[start:end] {
		width = max(width, lipgloss.Width(t.Label))
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, a.renderRow(i, width))
	}
	if rest := len(a.timers) - end; rest > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf(scrollHintFmt, rest)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderRow(i, labelWidth int) string {
	t := a.timers[i]
	marker := " "
	if i == a.cursor {
		marker = "▶"
	}
	label := t.Label + strings.Repeat(" ", max(labelWidth-lipgloss.Width(t.Label), 0))
	row := fmt.Sprintf("%s %s  %s  %s", marker, label, timers.FormatRemaining(t.Remaining), stateBadge(t))
	if i == a.cursor {
		return cursorStyle.Render(row)
	}
	return row
}

func stateBadge(t timers.Timer) string {
	switch t.State() {
	case timers.StateRunning:
		return runningStyle.Render("running")
	case timers.StateExpired:
		return expiredStyle.Render("done")
	default:
		return pausedStyle.Render("paused")
	}
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAdd:
		body := titleStyle.Render("Add timer") + "\n" + a.labelInput.View() + "\n" + a.secsInput.View()
		return modalStyle.Render(body)
	case modalFind:
		return modalStyle.Render(titleStyle.Render("Find timer") + "\n" + a.findInput.View())
	default:
		return ""
	}
}

// modalLines is the height the open modal takes, border included.
func (a *App) modalLines() int {
	switch a.modal {
	case modalAdd:
		return 2 + 3 + 2
	case modalFind:
		return 2 + 2 + 2
	default:
		return 0
	}
}

func (a *App) renderHelp() string {
	if a.modal != modalNone {
		return a.help.View(modalKeyMap{keyMap: a.keys, fields: a.modal == modalAdd})
	}
	return a.help.View(a.keys)
}
