package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "a.cpp"), []byte("int a;\n"), 0644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	return dir
}

func TestGitInfo_Root_FromSubdirectory(t *testing.T) {
	dir := newRepo(t)

	gi := gitinfo.New()
	root, err := gi.Root(filepath.Join(dir, "src"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGitInfo_Root_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().Root(t.TempDir())
	assert.Error(t, err)
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir := newRepo(t)

	gi := gitinfo.New()
	hash, err := gi.CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_RemoteURL(t *testing.T) {
	dir := newRepo(t)
	runGit(t, dir, "remote", "add", "origin", "git@github.com:acme/fusion.git")

	url, err := gitinfo.New().RemoteURL(dir)
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/fusion.git", url)
}

func TestGitInfo_RemoteURL_NoOrigin(t *testing.T) {
	dir := newRepo(t)
	_, err := gitinfo.New().RemoteURL(dir)
	assert.Error(t, err)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
