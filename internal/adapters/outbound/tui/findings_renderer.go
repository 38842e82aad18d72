package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/scopecheck/scopecheck/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// CheckerTitle turns an analyzer checker identifier into words, e.g.
// "core.NullDereference" -> "Null Dereference" and
// "bugprone-use-after-move" -> "bugprone use after move".
func CheckerTitle(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' }) {
		words = append(words, camelcase.Split(part)...)
	}
	return strings.Join(words, " ")
}

// RenderFindings groups findings by checker, most frequent first.
func RenderFindings(findings []domain.Finding) string {
	var b strings.Builder

	pending := len(domain.Unreviewed(findings))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  ", titleStyle.Render("Findings"))
	if pending > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d unreviewed", pending)))
		b.WriteString("  ")
	}
	if rest := len(findings) - pending; rest > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d reviewed", rest)))
	}
	b.WriteString("\n")

	if len(findings) == 0 {
		b.WriteString("\n  " + passStyle.Render("No defects found.") + "\n")
		return b.String()
	}

	for _, g := range groupByChecker(findings) {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s %s\n",
			sectionHeaderStyle.Render(padRight(CheckerTitle(g.checker), 30)),
			dimStyle.Render(fmt.Sprintf("(%d)", len(g.findings))),
			faintStyle.Render(g.checker),
		)
		for _, f := range g.findings {
			renderFinding(&b, f)
		}
	}

	if pending > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Mark false positives in the analyzer to keep them out of reviews."))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	loc := ""
	if n := len(f.BugPathEvents); n > 0 {
		last := f.BugPathEvents[n-1]
		loc = shortenPath(last.File.Path)
		if last.Line > 0 {
			loc += fmt.Sprintf(":%d", last.Line)
		}
	}
	fmt.Fprintf(b, "    %s %s\n", statusTag(f.ReviewStatus), fileStyle.Render(loc))
	fmt.Fprintf(b, "           %s\n", dimStyle.Render(f.Message))
}

func statusTag(s domain.ReviewStatus) string {
	switch s {
	case domain.StatusUnreviewed:
		return warnTagStyle.Render("new      ")
	case domain.StatusConfirmed:
		return errorTagStyle.Render("confirmed")
	default:
		return skipStyle.Render(padRight(string(s), 9))
	}
}

type checkerGroup struct {
	checker  string
	findings []domain.Finding
}

func groupByChecker(findings []domain.Finding) []checkerGroup {
	idx := map[string]int{}
	var groups []checkerGroup
	for _, f := range findings {
		i, ok := idx[f.CheckerName]
		if !ok {
			i = len(groups)
			idx[f.CheckerName] = i
			groups = append(groups, checkerGroup{checker: f.CheckerName})
		}
		groups[i].findings = append(groups[i].findings, f)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if len(groups[a].findings) != len(groups[b].findings) {
			return len(groups[a].findings) > len(groups[b].findings)
		}
		return groups[a].checker < groups[b].checker
	})
	return groups
}

// RenderError formats a fatal error for the terminal.
func RenderError(err error) string {
	return "  " + failStyle.Render("error") + " " + err.Error() + "\n"
}
