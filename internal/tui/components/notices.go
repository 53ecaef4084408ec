package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/tui/styles"
)

// SeverityStyle returns the text style for a notice severity
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeveritySuccess:
		return styles.SuccessStyle
	case domain.SeverityWarn:
		return styles.WarnStyle
	case domain.SeverityError:
		return styles.ErrorStyle
	default:
		return styles.InfoStyle
	}
}

// FormatNotice renders a notice on one line
func FormatNotice(n domain.Notice, width int) string {
	text := n.Summary
	if n.Detail != "" {
		text += ": " + n.Detail
	}
	return SeverityStyle(n.Severity).Render(styles.Truncate(text, width))
}

// RenderNoticeConsole renders the notice history, newest last
func RenderNoticeConsole(notices []domain.Notice, width, height int) string {
	const modalWidth = 64
	inner := min(modalWidth, width-8)

	rows := height - 10
	if rows < 3 {
		rows = 3
	}
	if len(notices) > rows {
		notices = notices[len(notices)-rows:]
	}

	lines := []string{styles.ModalTitleStyle.Render("Notices")}
	if len(notices) == 0 {
		lines = append(lines, styles.DimStyle.Render("Nothing yet"))
	}
	for _, n := range notices {
		badge := SeverityStyle(n.Severity).Render(styles.Pad(n.Severity.String(), 8))
		lines = append(lines, badge+FormatNotice(n, inner-8))
	}
	lines = append(lines, "", styles.DimStyle.Render("esc to close"))

	modal := styles.ModalStyle.Width(inner).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
