// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/diary-tex/internal/ledger"
	"github.com/pdiddy/diary-tex/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List files touched by recent runs",
	Long: `History reads the run ledger (--ledger or DIARY_TEX_LEDGER) and lists
the files recent daily and month runs created, modified, skipped or
generated, newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := diaryConfig()
	if cfg.LedgerPath == "" {
		return fmt.Errorf("no ledger configured: set --ledger or DIARY_TEX_LEDGER")
	}

	l, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	events, err := l.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), events, jsonOutput)
}

func formatHistory(w io.Writer, events []ledger.Event, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-6s  %-9s  %-20s  %s\n", "Run", "Tool", "Outcome", "Recorded", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-6s  %-9s  %-20s  %s\n",
			e.RunID, e.Tool, e.Outcome, e.RecordedAt.Format("2006-01-02 15:04:05"), e.Path)
	}
	return nil
}

// fileEvent is one file a run touched, queued for the ledger.
type fileEvent struct {
	path    string
	outcome types.Outcome
}

// recordRun appends a run and its events to the configured ledger. Ledger
// failures are reported on errw and do not fail the command.
func recordRun(ctx context.Context, cfg types.DiaryConfig, tool string, args []string, events []fileEvent, errw io.Writer) {
	if cfg.LedgerPath == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	err := func() error {
		l, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer l.Close()

		runID, err := l.BeginRun(ctx, tool, args)
		if err != nil {
			return err
		}
		for _, e := range events {
			if err := l.Record(ctx, runID, e.path, e.outcome); err != nil {
				return err
			}
		}
		logger.Debug("Recorded run", zap.String("tool", tool), zap.Int64("run", runID), zap.Int("events", len(events)))
		return nil
	}()
	if err != nil {
		fmt.Fprintf(errw, "warning: ledger: %v\n", err)
	}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of events to list")
	historyCmd.Flags().Bool("json", false, "output events as JSON")

	rootCmd.AddCommand(historyCmd)
}
