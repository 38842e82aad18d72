package rules

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// FileLoader implements domain.RulesLoader for a plain text file holding one
// substring pattern per line. Blank lines and lines starting with # are skipped.
type FileLoader struct{}

func New() *FileLoader { return &FileLoader{} }

func (l *FileLoader) Load(path string) (domain.ExclusionRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading exclusion rules %s: %v: %w", path, err, domain.ErrIO)
	}
	return Parse(data), nil
}

// Parse splits rules file content into patterns, in file order.
func Parse(data []byte) domain.ExclusionRules {
	var rules domain.ExclusionRules
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}
