// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chapter renders the LaTeX chapter file for one diary month: a
// fixed banner, the chapter title and label, then a section and an input
// directive for every day.
package chapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/diary-tex/pkg/types"
)

// ErrUnknownMonth is returned for names outside the twelve canonical months.
var ErrUnknownMonth = errors.New("unknown month")

// contentRoot is the directory chapter files reference day files from.
const contentRoot = "./Content"

// banner opens every chapter file.
var banner = []string{
	"%!TeX options=--shell-escape",
	"%%%%%%%%%%%%%%%%%%%%% chapter.tex %%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%",
	"%",
	"% sample chapter",
	"%",
	"% Use this file as a template for your own input.",
	"%",
	"%%%%%%%%%%%%%%%%%%%%%%%% Springer-Verlag %%%%%%%%%%%%%%%%%%%%%%%%%%",
}

type monthInfo struct {
	name string
	days int
}

// calendar lists the months in order. February holds its common-year length.
var calendar = []monthInfo{
	{"January", 31},
	{"February", 28},
	{"March", 31},
	{"April", 30},
	{"May", 31},
	{"June", 30},
	{"July", 31},
	{"August", 31},
	{"September", 30},
	{"October", 31},
	{"November", 30},
	{"December", 31},
}

// Months returns the canonical month names in calendar order.
func Months() []string {
	names := make([]string, len(calendar))
	for i, m := range calendar {
		names[i] = m.name
	}
	return names
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month in year. The name must be
// canonical ("February", not "february"); see NormalizeMonth.
func DaysInMonth(year int, month string) (int, error) {
	for _, m := range calendar {
		if m.name != month {
			continue
		}
		if m.name == "February" && IsLeapYear(year) {
			return 29, nil
		}
		return m.days, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownMonth, month)
}

// NormalizeMonth upper-cases the first letter of name and lower-cases the rest.
func NormalizeMonth(name string) string {
	return cases.Title(language.English).String(name)
}

// IsMonth reports whether name is one of the canonical month names.
func IsMonth(name string) bool {
	for _, m := range calendar {
		if m.name == name {
			return true
		}
	}
	return false
}

// DefaultOutputName returns the chapter file name used when no output path
// is given: {Month}{Year}.tex.
func DefaultOutputName(month string, year int) string {
	return month + strconv.Itoa(year) + ".tex"
}

// InputPath returns the path a chapter uses to include one day's content.
// The .tex extension is left for LaTeX to resolve.
func InputPath(month string, day, year int) string {
	return fmt.Sprintf("%s/%s/%d%s%d", contentRoot, month, day, month, year)
}

// GenerateMonth returns the complete chapter document for the month. It
// does no validation: numDays is used as given and month is interpolated
// verbatim.
func GenerateMonth(year int, month string, numDays int) string {
	var b strings.Builder
	for _, line := range banner {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "\\chapter{%s %d}\n", month, year)
	fmt.Fprintf(&b, "\\label{%s%d} %% Always give a unique label\n", strings.ToLower(month), year)
	b.WriteString("\n")

	for day := 1; day <= numDays; day++ {
		fmt.Fprintf(&b, "\\section{%s %d}\n", month, day)
		fmt.Fprintf(&b, "\\input{%s}\n", InputPath(month, day, year))
	}
	return b.String()
}

// WriteMonth renders spec and writes it to path, creating the parent
// directory if needed.
func WriteMonth(path string, spec types.MonthSpec) error {
	content := GenerateMonth(spec.Year, spec.Month, spec.NumDays)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
