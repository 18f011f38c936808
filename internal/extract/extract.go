// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract builds Wolfram Language extraction programs and decodes
// the kernel's replies. The notebook is never parsed locally: the kernel
// imports it, filters the Input cells, and renders the survivors.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DefaultPageWidth is the column width for reflowed InputForm output.
const DefaultPageWidth = 80

// Evaluator submits a Wolfram Language program whose value is a string and
// returns that string. Implemented by kernel.Session; tests substitute
// fakes.
type Evaluator interface {
	Evaluate(program string) (string, error)
}

// Extractor extracts Input cells from notebooks through an engine session.
type Extractor struct {
	engine    Evaluator
	pageWidth int
	diag      io.Writer
}

// New creates an Extractor that evaluates through engine and logs
// per-notebook failures to diag. A pageWidth <= 0 selects DefaultPageWidth.
func New(engine Evaluator, pageWidth int, diag io.Writer) *Extractor {
	if pageWidth <= 0 {
		pageWidth = DefaultPageWidth
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Extractor{engine: engine, pageWidth: pageWidth, diag: diag}
}

// Extract returns the rendered Input cells of the notebook at nbPath in
// source order. Every failure is logged with the notebook path and reported
// as an empty result, so a single bad notebook never aborts a batch.
func (e *Extractor) Extract(nbPath string) []string {
	reply, err := e.engine.Evaluate(Program(nbPath, e.pageWidth))
	if err != nil {
		fmt.Fprintf(e.diag, "Error processing %s: %v\n", nbPath, err)
		return nil
	}

	inputs, err := decodeReply(reply)
	if err != nil {
		fmt.Fprintf(e.diag, "Error processing %s: %v\n", nbPath, err)
		return nil
	}
	return inputs
}

// decodeReply parses the kernel's JSON reply into the list of rendered
// cells. Empty entries are dropped, matching the engine-side contract that
// every surviving cell renders to a non-empty string.
func decodeReply(reply string) ([]string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("empty reply from kernel")
	}

	var raw []string
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("decoding kernel reply: %w", err)
	}

	var inputs []string
	for _, s := range raw {
		if s != "" {
			inputs = append(inputs, s)
		}
	}
	return inputs, nil
}
