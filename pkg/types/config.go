// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared configuration and result types for
// nbextract.
package types

// KernelConfig holds settings for locating and launching the Wolfram
// Language kernel.
type KernelConfig struct {
	// Path is an explicit kernel binary. Empty means detect from PATH
	// (WolframKernel, MathKernel, math, in that order).
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Args are extra arguments appended to the kernel launch command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// FormatConfig holds settings for rendering extracted expressions.
type FormatConfig struct {
	// PageWidth is the column width for reflowed InputForm output (default 80).
	PageWidth int `json:"page_width" yaml:"page_width"`
}

// FilesConfig holds file-extension settings for discovery and output.
type FilesConfig struct {
	// NotebookExtension is the extension of notebook files (default ".nb").
	NotebookExtension string `json:"notebook_extension" yaml:"notebook_extension"`

	// OutputExtension is the extension of text artifacts (default ".txt").
	OutputExtension string `json:"output_extension" yaml:"output_extension"`
}

// Config groups all settings for an extraction run.
type Config struct {
	Kernel KernelConfig `json:"kernel" yaml:"kernel"`
	Format FormatConfig `json:"format" yaml:"format"`
	Files  FilesConfig  `json:"files" yaml:"files"`
}
