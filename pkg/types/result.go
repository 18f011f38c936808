// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionStatus describes the outcome for a single notebook.
type ExtractionStatus string

const (
	// StatusExtracted means at least one qualifying Input cell was found.
	StatusExtracted ExtractionStatus = "extracted"

	// StatusNoInputs covers both an empty notebook and a failed extraction;
	// the two are indistinguishable in the on-disk artifact.
	StatusNoInputs ExtractionStatus = "no-inputs"
)

// NotebookOutcome records what happened to one notebook in a batch run.
// Paths are slash-separated and relative to their respective roots.
type NotebookOutcome struct {
	Notebook string           `json:"notebook" yaml:"notebook"`
	Artifact string           `json:"artifact" yaml:"artifact"`
	Inputs   int              `json:"inputs" yaml:"inputs"`
	Status   ExtractionStatus `json:"status" yaml:"status"`
}

// Manifest lists per-notebook outcomes of a batch run in discovery order.
type Manifest struct {
	Notebooks []NotebookOutcome `json:"notebooks" yaml:"notebooks"`
}
