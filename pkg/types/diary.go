// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared by the diary-tex tools.
package types

import "strconv"

// RootMarker is the root-document declaration every day file must start
// with. It is compared byte-for-byte after whitespace trimming.
const RootMarker = "%!TEX root = ../../main.tex"

// Bounds accepted for a day of the month. Ranges are not checked against
// the real length of the month.
const (
	MinDay = 1
	MaxDay = 31
)

// DayRange selects a contiguous run of day files for one month.
type DayRange struct {
	// Year is used verbatim in file names, so it stays a string.
	Year string `json:"year" yaml:"year"`

	// Month is the month name as it appears in file names (e.g. "November").
	Month string `json:"month" yaml:"month"`

	StartDay int `json:"start_day" yaml:"start_day"`
	EndDay   int `json:"end_day" yaml:"end_day"`
}

// Len returns the number of days in the range.
func (r DayRange) Len() int {
	return r.EndDay - r.StartDay + 1
}

// DayFileName returns the content file name for day: {day}{month}{year}.tex.
// The day is not zero-padded.
func DayFileName(day int, month, year string) string {
	return strconv.Itoa(day) + month + year + ".tex"
}

// Outcome classifies what happened to a single day file.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeModified Outcome = "modified"
	OutcomeSkipped  Outcome = "skipped"
)

// MonthSpec describes one chapter file to generate.
type MonthSpec struct {
	Year    int    `json:"year" yaml:"year"`
	Month   string `json:"month" yaml:"month"`
	NumDays int    `json:"num_days" yaml:"num_days"`
}
