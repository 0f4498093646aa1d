// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/diary-tex/internal/annotate"
	"github.com/pdiddy/diary-tex/pkg/types"
)

var dailyCmd = &cobra.Command{
	Use:   "daily YEAR MONTH STARTDAY ENDDAY",
	Short: "Ensure day files start with the TEX root declaration",
	Long: `Daily walks the days STARTDAY..ENDDAY of MONTH and YEAR and makes sure
each file {day}{MONTH}{YEAR}.tex starts with

    ` + types.RootMarker + `

Missing files are created. Files that already start with the declaration
are left untouched. Days are checked against 1..31 only, not against the
length of the month.`,
	Example: `  diary-tex daily 2017 November 6 30
  diary-tex daily 2026 January 1 31 --content-dir Content/January`,
	Args: cobra.ExactArgs(4),
	RunE: runDaily,
}

func runDaily(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	reportPath, _ := cmd.Flags().GetString("report")

	r, err := parseDayRange(args)
	if err != nil {
		return err
	}

	cfg := diaryConfig()
	dir := cfg.ContentDirOrDefault()
	logger.Debug("Processing day range",
		zap.String("dir", dir),
		zap.String("month", r.Month),
		zap.String("year", r.Year),
		zap.Int("start", r.StartDay),
		zap.Int("end", r.EndDay))

	out := cmd.OutOrStdout()
	result, err := annotate.ProcessRange(dir, r, out)

	events := make([]fileEvent, len(result.Files))
	for i, f := range result.Files {
		events[i] = fileEvent{path: f.Path, outcome: f.Outcome}
	}
	recordRun(cmd.Context(), cfg, "daily", args, events, cmd.ErrOrStderr())

	if err != nil {
		return err
	}

	result.WriteSummary(out)

	if reportPath != "" {
		if err := annotate.WriteReport(reportPath, r, result); err != nil {
			return err
		}
		logger.Debug("Wrote report", zap.String("path", reportPath))
	}
	return nil
}

// parseDayRange turns YEAR MONTH STARTDAY ENDDAY into a DayRange. Year and
// month are kept verbatim since they only feed file names.
func parseDayRange(args []string) (types.DayRange, error) {
	start, err := strconv.Atoi(args[2])
	if err != nil {
		return types.DayRange{}, fmt.Errorf("start day %q is not a number", args[2])
	}
	end, err := strconv.Atoi(args[3])
	if err != nil {
		return types.DayRange{}, fmt.Errorf("end day %q is not a number", args[3])
	}
	return types.DayRange{
		Year:     args[0],
		Month:    args[1],
		StartDay: start,
		EndDay:   end,
	}, nil
}

func init() {
	dailyCmd.Flags().String("content-dir", ".", "directory holding the day files")
	dailyCmd.Flags().String("report", "", "write a YAML report of the run to this path")

	viper.BindPFlag("content_dir", dailyCmd.Flags().Lookup("content-dir"))

	rootCmd.AddCommand(dailyCmd)
}
