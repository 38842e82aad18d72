package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// JSONLoader implements domain.ReportLoader for the analyzer's JSON export.
type JSONLoader struct{}

func New() *JSONLoader { return &JSONLoader{} }

func (l *JSONLoader) Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrReportMissing)
		}
		return nil, fmt.Errorf("reading %s: %v: %w", path, err, domain.ErrIO)
	}

	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, domain.ErrReportCorrupt)
	}
	return &r, nil
}
