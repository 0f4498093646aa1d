//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/diary-tex/internal/chapter"
	"github.com/pdiddy/diary-tex/pkg/types"
)

const chaptersDir = "Chapters"

// Chapters writes a chapter file for every month of DIARY_YEAR into Chapters/.
func Chapters() error {
	raw := os.Getenv("DIARY_YEAR")
	year, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("DIARY_YEAR must be a year, got %q", raw)
	}

	for _, month := range chapter.Months() {
		days, err := chapter.DaysInMonth(year, month)
		if err != nil {
			return err
		}
		path := filepath.Join(chaptersDir, chapter.DefaultOutputName(month, year))
		spec := types.MonthSpec{Year: year, Month: month, NumDays: days}
		if err := chapter.WriteMonth(path, spec); err != nil {
			return err
		}
		fmt.Println("  ", path)
	}
	fmt.Printf("Chapters for %d written.\n", year)
	return nil
}
