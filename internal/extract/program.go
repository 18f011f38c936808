// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"text/template"
)

// programV1 is the extraction program submitted to the kernel. It imports a
// notebook, gathers Input cell contents at any nesting depth, drops cells
// whose held form is Null or contains an Image, renders the survivors in
// InputForm reflowed to the requested page width, and yields the list as a
// compact JSON string. A notebook that fails to import yields "[]": load
// failure and an empty notebook are indistinguishable by contract.
var programV1 = template.Must(template.New("extract-v1").Parse(`
Module[{nb, cells, filtered},
  nb = Import["{{.Path}}", "NB"];
  If[nb === $Failed, "[]",
    cells = Cases[nb, Cell[content_, "Input", ___] :> content, Infinity];
    filtered = Select[cells, Function[content, Module[{expr},
      expr = ToExpression[content, StandardForm, HoldForm];
      !MatchQ[expr, HoldForm[Null]] && FreeQ[expr, Image]]]];
    ExportString[
      Map[Function[content, ToString[
        ToExpression[content, StandardForm, HoldForm],
        InputForm, PageWidth -> {{.PageWidth}}]], filtered],
      "JSON", "Compact" -> True]]]
`))

// Program renders the extraction program for a notebook path. The path is
// escaped into a valid Wolfram string literal before substitution.
func Program(nbPath string, pageWidth int) string {
	if pageWidth <= 0 {
		pageWidth = DefaultPageWidth
	}

	var b strings.Builder
	data := struct {
		Path      string
		PageWidth int
	}{Path: escapeString(nbPath), PageWidth: pageWidth}

	// The template is static; execution cannot fail on valid data.
	if err := programV1.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("rendering extraction program: %v", err))
	}
	return b.String()
}

// escapeString renders s as the body of a Wolfram Language string literal.
// Backslash and double quote are escaped, and control characters are hex
// escaped, so a hostile path can never terminate the literal early.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20:
			fmt.Fprintf(&b, `\.%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
