package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/scopecheck/scopecheck/internal/domain"
)

// ── palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderScope lists the files that will be analyzed, dimming the changed
// files that were filtered out.
func RenderScope(changes domain.ChangeSet, scope domain.Scope, setup string) string {
	var b strings.Builder

	title := headerStyle.Render("scopecheck")
	sub := dimStyle.Render(fmt.Sprintf("%d of %d changed files in scope", len(scope.Files), changes.Len()))
	if changes.Ref != "" {
		sub += dimStyle.Render("  vs " + changes.Ref)
	}
	b.WriteString(boxStyle.Render(title + "\n" + sub))
	b.WriteString("\n\n")

	kept := make(map[string]bool, len(scope.Files))
	for _, f := range scope.Files {
		kept[f] = true
	}
	for _, f := range changes.Files {
		if kept[f] {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), f)
		} else {
			fmt.Fprintf(&b, "    %s %s\n", skipStyle.Render("○"), skipStyle.Render(f))
		}
	}

	if setup != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("setup:"), setup)
	}
	return b.String()
}

// RenderOutcome prints the closing line of a run.
func RenderOutcome(outcome string, total, pending int) string {
	var line string
	switch outcome {
	case "clean":
		line = passStyle.Render("No defects found.")
	case "acknowledged":
		line = passStyle.Render(fmt.Sprintf("All %d finding(s) already reviewed.", total))
	case "opened":
		line = warnStyle.Render(fmt.Sprintf("%d finding(s), %d unreviewed.", total, pending)) +
			"  " + dimStyle.Render("Report opened in browser.")
	case "posted":
		line = warnStyle.Render(fmt.Sprintf("%d unreviewed finding(s)", pending)) +
			"  " + dimStyle.Render("posted to the pull request.")
	default:
		line = dimStyle.Render(outcome)
	}
	return "\n  " + separatorLine + "\n  " + line + "\n"
}

// RenderNotice prints a non-error informational message, such as an empty scope.
func RenderNotice(msg string) string {
	return "  " + dimStyle.Render(msg) + "\n"
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
