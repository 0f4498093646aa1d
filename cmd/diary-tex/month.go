// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/diary-tex/internal/chapter"
	"github.com/pdiddy/diary-tex/internal/ledger"
	"github.com/pdiddy/diary-tex/pkg/types"
)

var monthCmd = &cobra.Command{
	Use:   "month YEAR MONTH [NUM_DAYS]",
	Short: "Generate the LaTeX chapter file for a month",
	Long: `Month writes a chapter file for MONTH of YEAR with one \section and one
\input directive per day. The input paths follow the day-file naming:
./Content/{Month}/{day}{Month}{Year}.

The month name is case-insensitive. When NUM_DAYS is omitted it is taken
from the calendar, including leap-year Februaries. An explicit NUM_DAYS
outside 28..31 produces a warning but is used as given.`,
	Example: `  diary-tex month 2026 January 31
  diary-tex month 2024 February 29
  diary-tex month 2026 march -o chapters/March2026.tex`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMonth,
}

// invalidMonthError reports a month name outside the canonical twelve.
type invalidMonthError struct {
	name string
}

func (e invalidMonthError) Error() string {
	return fmt.Sprintf("'%s' is not a valid month name.\nValid months: %s",
		e.name, strings.Join(chapter.Months(), ", "))
}

func (e invalidMonthError) Unwrap() error {
	return chapter.ErrUnknownMonth
}

func runMonth(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	output, _ := cmd.Flags().GetString("output")
	out, errw := cmd.OutOrStdout(), cmd.ErrOrStderr()

	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("year %q is not a number", args[0])
	}

	month := chapter.NormalizeMonth(args[1])
	if !chapter.IsMonth(month) {
		return invalidMonthError{name: args[1]}
	}

	var numDays int
	if len(args) == 3 {
		numDays, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("day count %q is not a number", args[2])
		}
		if numDays < 28 || numDays > 31 {
			fmt.Fprintf(errw, "Warning: %d days is unusual for a month.\n", numDays)
		}
	} else {
		numDays, err = chapter.DaysInMonth(year, month)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Auto-detected %d days for %s %d\n", numDays, month, year)
	}

	cfg := diaryConfig()
	path := output
	if path == "" {
		path = filepath.Join(cfg.ChapterDirOrDefault(), chapter.DefaultOutputName(month, year))
	}

	spec := types.MonthSpec{Year: year, Month: month, NumDays: numDays}
	logger.Debug("Generating chapter",
		zap.String("month", month),
		zap.Int("year", year),
		zap.Int("days", numDays),
		zap.String("path", path))

	if err := chapter.WriteMonth(path, spec); err != nil {
		return err
	}
	recordRun(cmd.Context(), cfg, "month", args, []fileEvent{{path: path, outcome: ledger.OutcomeGenerated}}, errw)

	fmt.Fprintf(out, "Generated: %s\n", path)
	return nil
}

func init() {
	monthCmd.Flags().StringP("output", "o", "", "output file path (default: <Month><Year>.tex in the chapter directory)")
	monthCmd.Flags().String("chapter-dir", ".", "directory for chapter files when --output is not given")

	viper.BindPFlag("chapter_dir", monthCmd.Flags().Lookup("chapter-dir"))

	rootCmd.AddCommand(monthCmd)
}
