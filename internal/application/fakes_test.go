package application_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	changes domain.ChangeSet
	err     error
	refs    []string
}

func (f *fakeResolver) Changes(_ context.Context, ref string) (domain.ChangeSet, error) {
	f.refs = append(f.refs, ref)
	return f.changes, f.err
}

// fakeRunner records every command. onRun, when set, decides the result.
type fakeRunner struct {
	cmds  []domain.Command
	onRun func(domain.Command) error
}

func (f *fakeRunner) Run(_ context.Context, c domain.Command) error {
	f.cmds = append(f.cmds, c)
	if f.onRun != nil {
		return f.onRun(c)
	}
	return nil
}

func (f *fakeRunner) subcommands() []string {
	var out []string
	for _, c := range f.cmds {
		if len(c.Args) > 1 {
			out = append(out, c.Args[1])
		} else {
			out = append(out, c.Args[0])
		}
	}
	return out
}

type fakePoster struct {
	pr, body string
	calls    int
	err      error
}

func (f *fakePoster) PostReview(_ context.Context, pr, body string) error {
	f.calls++
	f.pr, f.body = pr, body
	return f.err
}

type fakeOpener struct {
	targets []string
}

func (f *fakeOpener) Open(_ context.Context, target string) error {
	f.targets = append(f.targets, target)
	return nil
}

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (f *fakeConfirmer) Confirm(context.Context, string) (bool, error) {
	f.asked++
	return f.answer, nil
}

type fakeRepo struct {
	commit, remote string
}

func (f fakeRepo) Root(path string) (string, error) { return path, nil }
func (f fakeRepo) CommitHash(string) (string, error) {
	if f.commit == "" {
		return "", errors.New("no HEAD")
	}
	return f.commit, nil
}
func (f fakeRepo) RemoteURL(string) (string, error) {
	if f.remote == "" {
		return "", errors.New("no origin")
	}
	return f.remote, nil
}

var discard = logging.Discard()

// exitError returns a real *exec.ExitError from a process that exits 1.
func exitError(t *testing.T) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit 1").Run()
	var ee *exec.ExitError
	require.ErrorAs(t, err, &ee)
	return err
}

// newProject lays out a repository root with a rules file and returns the
// config and layout for it.
func newProject(t *testing.T, rules string) (domain.ProjectConfig, domain.Layout) {
	t.Helper()
	root := t.TempDir()
	cfg := domain.DefaultConfig()
	layout := cfg.Layout(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(layout.RulesFile), 0o755))
	require.NoError(t, os.WriteFile(layout.RulesFile, []byte(rules), 0o644))
	return cfg, layout
}

func writeReport(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}
