// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch discovers notebooks under an input tree and converts each
// one into a text artifact mirroring its relative path.
package batch

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nbextract/internal/render"
	"github.com/pdiddy/nbextract/pkg/types"
)

const (
	// DefaultNotebookExt is the extension of Mathematica notebook files.
	DefaultNotebookExt = ".nb"

	// DefaultOutputExt is the extension of text artifacts.
	DefaultOutputExt = ".txt"
)

// Extractor produces the rendered Input cells for one notebook. An empty
// result stands for both "no qualifying cells" and "extraction failed".
// Implemented by extract.Extractor; tests substitute fakes.
type Extractor interface {
	Extract(nbPath string) []string
}

// Options controls a batch run.
type Options struct {
	// OutputExt is the artifact extension (default ".txt").
	OutputExt string

	// Manifest enables writing manifest.yaml into the output root.
	Manifest bool
}

func (o *Options) applyDefaults() {
	if o.OutputExt == "" {
		o.OutputExt = DefaultOutputExt
	}
}

// Result holds the outcome counters of a batch run. Every discovered
// notebook lands in exactly one bucket; empty results and per-notebook
// failures share NoInputs.
type Result struct {
	Extracted int
	NoInputs  int
	Outcomes  []types.NotebookOutcome
}

// Total returns the number of notebooks processed.
func (r Result) Total() int {
	return r.Extracted + r.NoInputs
}

// Discover returns all notebook files under inputDir, lexicographically
// ordered by path. It fails when inputDir does not exist or is not a
// directory.
func Discover(inputDir, notebookExt string) ([]string, error) {
	if notebookExt == "" {
		notebookExt = DefaultNotebookExt
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s does not exist", inputDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", inputDir)
	}

	var notebooks []string
	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == notebookExt {
			notebooks = append(notebooks, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputDir, err)
	}
	return notebooks, nil
}

// OutputPath mirrors nbPath from inputRoot into outputRoot, rewriting the
// extension to outputExt.
func OutputPath(inputRoot, outputRoot, nbPath, outputExt string) (string, error) {
	rel, err := filepath.Rel(inputRoot, nbPath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", nbPath, err)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + outputExt
	return filepath.Join(outputRoot, rel), nil
}

// Run converts every notebook in the list into a text artifact under
// outputDir, creating intermediate directories as needed. Every notebook
// yields exactly one artifact, even when extraction returns nothing.
// Progress and the summary line go to w.
func Run(e Extractor, notebooks []string, inputDir, outputDir string, opts Options, w io.Writer) (Result, error) {
	opts.applyDefaults()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	var result Result
	for _, nb := range notebooks {
		rel, err := filepath.Rel(inputDir, nb)
		if err != nil {
			return result, fmt.Errorf("relativizing %s: %w", nb, err)
		}
		fmt.Fprintf(w, "Processing: %s\n", rel)

		outPath, err := OutputPath(inputDir, outputDir, nb, opts.OutputExt)
		if err != nil {
			return result, err
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}

		inputs := e.Extract(nb)

		if err := writeArtifact(outPath, inputs); err != nil {
			return result, err
		}

		artifactRel, err := filepath.Rel(outputDir, outPath)
		if err != nil {
			return result, fmt.Errorf("relativizing %s: %w", outPath, err)
		}
		outcome := types.NotebookOutcome{
			Notebook: filepath.ToSlash(rel),
			Artifact: filepath.ToSlash(artifactRel),
			Inputs:   len(inputs),
		}

		if len(inputs) > 0 {
			fmt.Fprintf(w, "  -> Extracted %d input(s) to %s\n", len(inputs), outPath)
			result.Extracted++
			outcome.Status = types.StatusExtracted
		} else {
			fmt.Fprintf(w, "  -> No inputs found, created empty file at %s\n", outPath)
			result.NoInputs++
			outcome.Status = types.StatusNoInputs
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	fmt.Fprintf(w, "\nSummary: %d file(s) processed successfully, %d file(s) had no inputs or errors\n",
		result.Extracted, result.NoInputs)

	if opts.Manifest {
		if err := WriteManifest(outputDir, result.Outcomes); err != nil {
			fmt.Fprintf(w, "warning: manifest write failed: %v\n", err)
		}
	}
	return result, nil
}

func writeArtifact(path string, inputs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact %s: %w", path, err)
	}
	if err := render.WriteText(f, inputs); err != nil {
		f.Close()
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return f.Close()
}
