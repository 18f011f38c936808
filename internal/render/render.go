// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes extraction results, either as numbered text
// blocks for on-disk artifacts or as a JSON array for machine consumers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// EmptySentinel is the single line written when a notebook yields no
// qualifying Input cells, whether because none exist or because extraction
// failed.
const EmptySentinel = "(No input cells found)"

// separatorWidth is the dash count of the line between numbered blocks.
const separatorWidth = 70

// WriteText writes inputs as 1-indexed numbered blocks in source order:
// a comment header, the cell content, a blank line, a separator line, and
// a trailing blank line. An empty result writes the sentinel line instead.
func WriteText(w io.Writer, inputs []string) error {
	if len(inputs) == 0 {
		_, err := fmt.Fprintln(w, EmptySentinel)
		return err
	}

	sep := strings.Repeat("-", separatorWidth)
	for i, input := range inputs {
		if _, err := fmt.Fprintf(w, "(* Input %d *)\n%s\n\n%s\n\n", i+1, input, sep); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes inputs as a JSON array of strings followed by a newline.
// Non-ASCII characters are preserved rather than escaped, and an empty
// result encodes as []. Nothing else may be written to w: in single-file
// mode it is the process's entire stdout contract.
func WriteJSON(w io.Writer, inputs []string) error {
	if inputs == nil {
		inputs = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(inputs)
}
