// Package review turns analyzer findings into the message posted on a pull
// request.
package review

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/scopecheck/scopecheck/internal/domain"
)

const (
	heading   = "## Static analysis findings"
	separator = "---"
)

// Linker derives permanent links to files at a fixed commit.
type Linker struct {
	RepoURL string
	Commit  string
	Root    string
}

// Permalink returns <repo>/blob/<commit>/<relative path>, with a #L<line>
// anchor when withLine is set and the line is known.
func (l Linker) Permalink(ev domain.BugPathEvent, withLine bool) (string, error) {
	rel, err := Relativize(l.Root, ev.File.Path)
	if err != nil {
		return "", err
	}
	link := fmt.Sprintf("%s/blob/%s/%s", strings.TrimRight(l.RepoURL, "/"), l.Commit, rel)
	if withLine && ev.Line > 0 {
		link += fmt.Sprintf("#L%d", ev.Line)
	}
	return link, nil
}

// Relativize maps a file-system path to a slash-separated path relative to
// root. Relative inputs are taken as already relative to root. When root is
// reached through a symlink, paths under its resolved target also qualify.
func Relativize(root, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", domain.ErrPathResolution)
	}
	rel, err := relativeTo(root, path)
	if err == nil {
		return rel, nil
	}
	if resolved, evalErr := filepath.EvalSymlinks(root); evalErr == nil && resolved != filepath.Clean(root) {
		if rel, realErr := relativeTo(resolved, path); realErr == nil {
			return rel, nil
		}
	}
	return "", err
}

func relativeTo(root, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(abs))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, domain.ErrPathResolution)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s not under %s: %w", path, root, domain.ErrPathResolution)
	}
	return filepath.ToSlash(rel), nil
}

// BuildBody formats every unreviewed finding into one markdown message.
// It returns "" when nothing is left to publish.
func BuildBody(findings []domain.Finding, l Linker) (string, error) {
	pending := domain.Unreviewed(findings)
	if len(pending) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\n\n")
	for _, f := range pending {
		fmt.Fprintf(&sb, "**%s**: %s\n", f.CheckerName, f.Message)
		sole := len(f.BugPathEvents) == 1
		for _, ev := range f.BugPathEvents {
			link, err := l.Permalink(ev, sole)
			if err != nil {
				return "", fmt.Errorf("finding %s: %w", f.CheckerName, err)
			}
			sb.WriteString(link)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(separator)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// WebURL turns a git remote URL into the base URL used for permalinks.
// Credentials embedded in the remote and ssh ports are dropped.
func WebURL(remote string) (string, error) {
	ep, err := transport.NewEndpoint(strings.TrimSpace(remote))
	if err != nil {
		return "", fmt.Errorf("parsing origin remote: %w", err)
	}
	if ep.Protocol == "file" || ep.Host == "" {
		return "", errors.New("cannot derive repository URL from origin remote")
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	if path == "" {
		return "", errors.New("origin remote has no repository path")
	}

	scheme, host := "https", ep.Host
	if ep.Protocol == "http" || ep.Protocol == "https" {
		scheme = ep.Protocol
		if ep.Port != 0 {
			host += ":" + strconv.Itoa(ep.Port)
		}
	}
	return scheme + "://" + host + "/" + path, nil
}
