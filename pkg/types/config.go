// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiaryConfig holds settings shared by the daily and month tools.
type DiaryConfig struct {
	// ContentDir is the directory holding per-day content files
	// (e.g. "Content/November"). Defaults to the working directory.
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// ChapterDir is the default directory for generated chapter files when
	// no explicit output path is given.
	ChapterDir string `json:"chapter_dir" yaml:"chapter_dir"`

	// LedgerPath is the SQLite run ledger file. Empty disables the ledger.
	LedgerPath string `json:"ledger,omitempty" yaml:"ledger,omitempty"`

	// Verbose enables debug diagnostics on stderr.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// ContentDirOrDefault returns ContentDir, or "." when unset.
func (c DiaryConfig) ContentDirOrDefault() string {
	if c.ContentDir == "" {
		return "."
	}
	return c.ContentDir
}

// ChapterDirOrDefault returns ChapterDir, or "." when unset.
func (c DiaryConfig) ChapterDirOrDefault() string {
	if c.ChapterDir == "" {
		return "."
	}
	return c.ChapterDir
}
