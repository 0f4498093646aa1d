// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diary-tex/internal/annotate"
	"github.com/pdiddy/diary-tex/internal/chapter"
	"github.com/pdiddy/diary-tex/internal/ledger"
	"github.com/pdiddy/diary-tex/pkg/types"
)

// execute runs the root command with args and captures its output. Flags
// are reset first since the command tree is package state.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetCommand(rootCmd)

	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errb.String(), err
}

func resetCommand(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SilenceUsage = false
	for _, c := range cmd.Commands() {
		resetCommand(c)
	}
}

func TestDailyCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "6November2017.tex"), []byte(types.RootMarker+"\n\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7November2017.tex"), []byte("notes\n"), 0o644))

	stdout, _, err := execute(t, "daily", "2017", "November", "6", "8", "--content-dir", dir)
	require.NoError(t, err)

	want := "Skipped 6November2017.tex (already had TEX root)\n" +
		"Modified 7November2017.tex\n" +
		"Created 8November2017.tex\n" +
		"\nSummary:\n" +
		"Created: 1 new files\n" +
		"Modified: 1 existing files\n" +
		"Total files processed: 3\n"
	assert.Equal(t, want, stdout)
}

func TestDailyCommand_Report(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.yaml")

	_, _, err := execute(t, "daily", "2024", "May", "1", "2", "--content-dir", dir, "--report", reportPath)
	require.NoError(t, err)

	rep, err := annotate.LoadReport(reportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.Created)
	assert.Equal(t, "May", rep.Range.Month)
}

func TestDailyCommand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPrefix string
		wantText   string
	}{
		{
			name:       "start after end",
			args:       []string{"daily", "2017", "November", "9", "3"},
			wantPrefix: "Error: ",
			wantText:   "start day must be less than or equal to end day",
		},
		{
			name:       "day out of bounds",
			args:       []string{"daily", "2017", "November", "0", "3"},
			wantPrefix: "Error: ",
			wantText:   "days must be between 1 and 31",
		},
		{
			name:       "non-numeric day",
			args:       []string{"daily", "2017", "November", "six", "8"},
			wantPrefix: "Error: ",
			wantText:   `start day "six" is not a number`,
		},
		{
			name:       "missing content directory",
			args:       []string{"daily", "2017", "November", "6", "6", "--content-dir", filepath.Join(os.TempDir(), "diary-tex-missing", "nowhere")},
			wantPrefix: "File error: ",
			wantText:   "6November2017.tex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if !strings.Contains(strings.Join(args, " "), "--content-dir") {
				args = append(args, "--content-dir", t.TempDir())
			}
			_, _, err := execute(t, args...)
			require.Error(t, err)

			msg := errorMessage(err)
			assert.True(t, strings.HasPrefix(msg, tt.wantPrefix), "message %q should start with %q", msg, tt.wantPrefix)
			assert.Contains(t, msg, tt.wantText)
		})
	}
}

func TestDailyCommand_WrongArity(t *testing.T) {
	stdout, stderr, err := execute(t, "daily", "2017", "November", "6")
	require.Error(t, err)
	assert.Contains(t, stdout+stderr, "Usage:")
	assert.True(t, strings.HasPrefix(errorMessage(err), "Error: "))
}

func TestMonthCommand_AutoDetect(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "month", "2024", "february", "--chapter-dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "February2024.tex")
	assert.Equal(t, "Auto-detected 29 days for February 2024\nGenerated: "+path+"\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, chapter.GenerateMonth(2024, "February", 29), string(data))
}

func TestMonthCommand_ExplicitDays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "jan.tex")

	stdout, stderr, err := execute(t, "month", "2026", "JANUARY", "31", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, "Generated: "+path+"\n", stdout)
	assert.NotContains(t, stderr, "Warning")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\input{./Content/January/31January2026}`)
}

func TestMonthCommand_UnusualDaysWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "March2026.tex")

	_, stderr, err := execute(t, "month", "2026", "March", "35", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: 35 days is unusual for a month.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\section{March 35}`)
}

func TestMonthCommand_InvalidMonth(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "month", "2026", "Smarch", "--chapter-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, chapter.ErrUnknownMonth))

	msg := errorMessage(err)
	assert.True(t, strings.HasPrefix(msg, "Error: 'Smarch' is not a valid month name."))
	assert.Contains(t, msg, "Valid months: January, February, March")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no chapter file should be written")
}

func TestLedgerAndHistory(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "ledger.db")

	_, _, err := execute(t, "daily", "2025", "July", "4", "5", "--content-dir", dir, "--ledger", ledgerPath)
	require.NoError(t, err)
	_, _, err = execute(t, "month", "2025", "July", "-o", filepath.Join(dir, "July2025.tex"), "--ledger", ledgerPath)
	require.NoError(t, err)

	stdout, _, err := execute(t, "history", "--ledger", ledgerPath, "--json")
	require.NoError(t, err)

	var events []ledger.Event
	require.NoError(t, json.Unmarshal([]byte(stdout), &events))
	require.Len(t, events, 3)
	assert.Equal(t, "month", events[0].Tool)
	assert.Equal(t, ledger.OutcomeGenerated, events[0].Outcome)
	assert.Equal(t, filepath.Join(dir, "5July2025.tex"), events[1].Path)
	assert.Equal(t, types.OutcomeCreated, events[2].Outcome)

	stdout, _, err = execute(t, "history", "--ledger", ledgerPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "July2025.tex")
	assert.NotContains(t, stdout, "4July2025.tex")
}

func TestHistory_NoLedger(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ledger configured")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "diary-tex dev\n", stdout)
}
