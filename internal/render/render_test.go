// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil))
	assert.Equal(t, "(No input cells found)\n", buf.String())
}

func TestWriteTextBlocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []string{"Integrate[x^2, x]", "Plot[Sin[x], {x, 0, 2*Pi}]"}))

	sep := strings.Repeat("-", 70)
	want := "(* Input 1 *)\n" +
		"Integrate[x^2, x]\n\n" +
		sep + "\n\n" +
		"(* Input 2 *)\n" +
		"Plot[Sin[x], {x, 0, 2*Pi}]\n\n" +
		sep + "\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []string{"first", "second", "third"}))

	out := buf.String()
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "third"))
	assert.Contains(t, out, "(* Input 3 *)")
	assert.NotContains(t, out, "(* Input 0 *)")
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   string
	}{
		{"nil encodes as empty array", nil, "[]\n"},
		{"empty slice encodes as empty array", []string{}, "[]\n"},
		{"strings in order", []string{"a", "b"}, "[\"a\",\"b\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteJSON(&buf, tt.inputs))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSONPreservesNonASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []string{"α + β", "x < y"}))

	out := buf.String()
	assert.Contains(t, out, "α + β")
	assert.Contains(t, out, "x < y")
	assert.NotContains(t, out, `\u`)

	// Output must stay valid JSON round-trippable to the same strings.
	var decoded []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"α + β", "x < y"}, decoded)
}
