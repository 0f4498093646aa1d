// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate makes sure per-day diary content files start with the
// root-document declaration, creating missing files along the way.
package annotate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/diary-tex/pkg/types"
)

var (
	// ErrInvalidRange is wrapped by every day-range validation error.
	ErrInvalidRange = errors.New("invalid day range")

	// ErrStartAfterEnd reports a range whose start day is after its end day.
	ErrStartAfterEnd = fmt.Errorf("%w: start day must be less than or equal to end day", ErrInvalidRange)

	// ErrDayOutOfRange reports a range reaching outside 1..31.
	ErrDayOutOfRange = fmt.Errorf("%w: days must be between %d and %d", ErrInvalidRange, types.MinDay, types.MaxDay)
)

// FileOutcome records what ProcessRange did to one day file.
type FileOutcome struct {
	Day     int           `json:"day" yaml:"day"`
	Name    string        `json:"name" yaml:"name"`
	Path    string        `json:"path" yaml:"path"`
	Outcome types.Outcome `json:"outcome" yaml:"outcome"`
}

// Result holds the outcome of a ProcessRange run.
type Result struct {
	Created  int
	Modified int
	Skipped  int
	Files    []FileOutcome
}

// Total returns the number of files processed.
func (r Result) Total() int {
	return r.Created + r.Modified + r.Skipped
}

// WriteSummary prints the end-of-run summary block.
func (r Result) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "Created: %d new files\n", r.Created)
	fmt.Fprintf(w, "Modified: %d existing files\n", r.Modified)
	fmt.Fprintf(w, "Total files processed: %d\n", r.Total())
}

func (r *Result) add(f FileOutcome) {
	switch f.Outcome {
	case types.OutcomeCreated:
		r.Created++
	case types.OutcomeModified:
		r.Modified++
	case types.OutcomeSkipped:
		r.Skipped++
	}
	r.Files = append(r.Files, f)
}

// ValidateRange checks the ordering of the range first, then its bounds.
// It does not consult the real length of the month.
func ValidateRange(r types.DayRange) error {
	if r.StartDay > r.EndDay {
		return ErrStartAfterEnd
	}
	if r.StartDay < types.MinDay || r.EndDay > types.MaxDay {
		return ErrDayOutOfRange
	}
	return nil
}

// EnsureRootDeclaration makes filename start with types.RootMarker and
// reports whether the file was written. A missing file is treated as empty
// and created as the marker followed by one blank line. When the marker is
// absent it is prepended, replacing a blank first line if there is one.
// The file is read and rewritten whole.
func EnsureRootDeclaration(filename string) (bool, error) {
	lines, err := readLines(filename)
	if err != nil {
		return false, err
	}

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == types.RootMarker {
		return false, nil
	}

	var b strings.Builder
	b.WriteString(types.RootMarker)
	b.WriteString("\n")
	if len(lines) > 0 {
		if strings.TrimSpace(lines[0]) == "" {
			lines = lines[1:]
		}
		for _, l := range lines {
			b.WriteString(l)
		}
	} else {
		b.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", filename, err)
	}
	return true, nil
}

// ProcessRange runs EnsureRootDeclaration over every day of r in ascending
// order, for files inside dir. It prints one status line per file to w.
// On a filesystem error it stops and returns the counts gathered so far;
// files already written stay written.
func ProcessRange(dir string, r types.DayRange, w io.Writer) (Result, error) {
	var result Result
	if err := ValidateRange(r); err != nil {
		return result, err
	}

	for day := r.StartDay; day <= r.EndDay; day++ {
		name := types.DayFileName(day, r.Month, r.Year)
		path := filepath.Join(dir, name)

		existed, err := fileExists(path)
		if err != nil {
			return result, err
		}

		modified, err := EnsureRootDeclaration(path)
		if err != nil {
			return result, err
		}

		f := FileOutcome{Day: day, Name: name, Path: path, Outcome: classify(existed, modified)}
		switch f.Outcome {
		case types.OutcomeCreated:
			fmt.Fprintf(w, "Created %s\n", name)
		case types.OutcomeModified:
			fmt.Fprintf(w, "Modified %s\n", name)
		default:
			fmt.Fprintf(w, "Skipped %s (already had TEX root)\n", name)
		}
		result.add(f)
	}

	return result, nil
}

func classify(existed, modified bool) types.Outcome {
	switch {
	case !existed:
		return types.OutcomeCreated
	case modified:
		return types.OutcomeModified
	default:
		return types.OutcomeSkipped
	}
}

// readLines returns the lines of filename with their terminators kept.
// A missing file yields no lines.
func readLines(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
