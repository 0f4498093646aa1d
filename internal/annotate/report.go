// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diary-tex/pkg/types"
)

// Report is the on-disk YAML record of a ProcessRange run.
type Report struct {
	Range       types.DayRange `yaml:"range"`
	Summary     ReportSummary  `yaml:"summary"`
	Files       []FileOutcome  `yaml:"files"`
	GeneratedAt time.Time      `yaml:"generated_at"`
}

// ReportSummary holds the counts of a run.
type ReportSummary struct {
	Created  int `yaml:"created"`
	Modified int `yaml:"modified"`
	Skipped  int `yaml:"skipped"`
	Total    int `yaml:"total"`
}

// WriteReport saves r and res as YAML at path, creating the parent directory.
func WriteReport(path string, r types.DayRange, res Result) error {
	rep := Report{
		Range: r,
		Summary: ReportSummary{
			Created:  res.Created,
			Modified: res.Modified,
			Skipped:  res.Skipped,
			Total:    res.Total(),
		},
		Files:       res.Files,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// LoadReport reads a report written by WriteReport.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &rep, nil
}
