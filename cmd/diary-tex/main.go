// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the diary-tex CLI.
// The daily subcommand prepares per-day content files; the month subcommand
// writes the chapter file that includes them.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/diary-tex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries debug diagnostics. It stays a no-op until the root
// command's pre-run builds it.
var logger = zap.NewNop()

// rootCmd is the base command for the diary-tex CLI.
var rootCmd = &cobra.Command{
	Use:   "diary-tex",
	Short: "Generate and normalize LaTeX sources for a daily diary",
	Long: `diary-tex maintains the LaTeX sources of a diary kept one file per day.

The daily subcommand makes sure each day file in a range starts with the
root-document declaration, creating missing files. The month subcommand
writes a chapter file with a section and an \input directive for every day.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./diary-tex.yaml or ~/.config/diary-tex/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log debug diagnostics to stderr")
	rootCmd.PersistentFlags().String("ledger", "", "SQLite file recording every run (empty disables the ledger)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("diary-tex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "diary-tex"))
		}
	}

	viper.SetEnvPrefix("DIARY_TEX")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// diaryConfig assembles the effective configuration from flags, environment
// and config file.
func diaryConfig() types.DiaryConfig {
	return types.DiaryConfig{
		ContentDir: viper.GetString("content_dir"),
		ChapterDir: viper.GetString("chapter_dir"),
		LedgerPath: viper.GetString("ledger"),
		Verbose:    viper.GetBool("verbose"),
	}
}

// errorMessage prefixes err for the terminal: filesystem failures get
// "File error:", everything else "Error:".
func errorMessage(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return "File error: " + err.Error()
	}
	return "Error: " + err.Error()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}
