package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// FileList is a change set handed over by CI, for example the file list of a
// pull request. Entries are separated by whitespace or commas.
type FileList struct {
	raw string
}

func NewFileList(raw string) *FileList {
	return &FileList{raw: raw}
}

// Changes ignores comparisonRef; CI already decided what changed.
func (l *FileList) Changes(_ context.Context, comparisonRef string) (domain.ChangeSet, error) {
	fields := strings.FieldsFunc(l.raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
	if len(fields) == 0 {
		return domain.ChangeSet{}, fmt.Errorf("file list: %w", domain.ErrEmptyChangeSet)
	}
	return domain.NewChangeSet(domain.SourceFileList, comparisonRef, fields), nil
}
