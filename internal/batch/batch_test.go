// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbextract/pkg/types"
)

// fakeExtractor returns canned inputs per notebook path. Paths absent from
// the map behave like failed or empty notebooks.
type fakeExtractor struct {
	inputs map[string][]string
}

func (f *fakeExtractor) Extract(nbPath string) []string {
	return f.inputs[nbPath]
}

// writeNotebook creates a placeholder .nb file under dir.
func writeNotebook(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("Notebook[{}]"), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "b/deep/z.nb")
	writeNotebook(t, dir, "a/x.nb")
	writeNotebook(t, dir, "top.nb")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a notebook"), 0o644))

	got, err := Discover(dir, "")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a", "x.nb"),
		filepath.Join(dir, "b", "deep", "z.nb"),
		filepath.Join(dir, "top.nb"),
	}
	assert.Equal(t, want, got, "discovery must be lexicographic and recursive")
}

func TestDiscoverInvalidInput(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), ".nb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	file := filepath.Join(t.TempDir(), "plain.nb")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Discover(file, ".nb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestOutputPath(t *testing.T) {
	in := filepath.Join("data", "notebooks")
	out := filepath.Join("data", "texts")
	nb := filepath.Join(in, "a", "b", "calc.nb")

	got, err := OutputPath(in, out, nb, ".txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "a", "b", "calc.txt"), got)
}

func TestRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	good := writeNotebook(t, inputDir, "a/x.nb")
	writeNotebook(t, inputDir, "b/y.nb") // extraction fails -> empty result

	ex := &fakeExtractor{inputs: map[string][]string{
		good: {"Integrate[x^2, x]", "Solve[x^2 == 4, x]"},
	}}

	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)

	var log bytes.Buffer
	result, err := Run(ex, notebooks, inputDir, outputDir, Options{}, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Extracted)
	assert.Equal(t, 1, result.NoInputs)
	assert.Equal(t, 2, result.Total())
	assert.Len(t, result.Outcomes, len(notebooks), "every discovered notebook yields an outcome")

	// a/x.nb -> two numbered blocks, mirrored path.
	data, err := os.ReadFile(filepath.Join(outputDir, "a", "x.txt"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "(* Input 1 *)")
	assert.Contains(t, content, "(* Input 2 *)")
	assert.NotContains(t, content, "(* Input 3 *)")

	// b/y.nb -> sentinel artifact, identical in shape to the empty case.
	data, err = os.ReadFile(filepath.Join(outputDir, "b", "y.txt"))
	require.NoError(t, err)
	assert.Equal(t, "(No input cells found)\n", string(data))

	out := log.String()
	assert.Contains(t, out, "Processing: "+filepath.Join("a", "x.nb"))
	assert.Contains(t, out, "Summary: 1 file(s) processed successfully, 1 file(s) had no inputs or errors")
}

func TestRunIdempotent(t *testing.T) {
	inputDir := t.TempDir()
	nb := writeNotebook(t, inputDir, "deep/nested/calc.nb")
	ex := &fakeExtractor{inputs: map[string][]string{nb: {"2 + 2"}}}

	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)

	runOnce := func() []byte {
		outputDir := t.TempDir()
		var log bytes.Buffer
		_, err := Run(ex, notebooks, inputDir, outputDir, Options{Manifest: true}, &log)
		require.NoError(t, err)

		var all []byte
		err = filepath.Walk(outputDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			all = append(all, data...)
			return nil
		})
		require.NoError(t, err)
		return all
	}

	assert.Equal(t, runOnce(), runOnce(), "unchanged input must produce byte-identical artifacts")
}

func TestRunManifest(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	good := writeNotebook(t, inputDir, "a/x.nb")
	writeNotebook(t, inputDir, "b/y.nb")

	ex := &fakeExtractor{inputs: map[string][]string{good: {"1 + 1"}}}
	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = Run(ex, notebooks, inputDir, outputDir, Options{Manifest: true}, &log)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFile))
	require.NoError(t, err)

	var m types.Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	require.Len(t, m.Notebooks, 2)

	assert.Equal(t, "a/x.nb", m.Notebooks[0].Notebook)
	assert.Equal(t, "a/x.txt", m.Notebooks[0].Artifact)
	assert.Equal(t, 1, m.Notebooks[0].Inputs)
	assert.Equal(t, types.StatusExtracted, m.Notebooks[0].Status)

	assert.Equal(t, "b/y.nb", m.Notebooks[1].Notebook)
	assert.Equal(t, types.StatusNoInputs, m.Notebooks[1].Status)
	assert.Equal(t, 0, m.Notebooks[1].Inputs)
}

func TestRunWithoutManifestWritesNone(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeNotebook(t, inputDir, "x.nb")

	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = Run(&fakeExtractor{}, notebooks, inputDir, outputDir, Options{}, &log)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outputDir, ManifestFile))
	assert.True(t, os.IsNotExist(err), "manifest must be opt-in")
}

func TestRunCustomOutputExt(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	nb := writeNotebook(t, inputDir, "x.nb")

	ex := &fakeExtractor{inputs: map[string][]string{nb: {"a"}}}
	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = Run(ex, notebooks, inputDir, outputDir, Options{OutputExt: ".wl.txt"}, &log)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outputDir, "x.wl.txt"))
	assert.NoError(t, err)
}

func TestRunArtifactPerNotebook(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	rels := []string{"a/1.nb", "a/2.nb", "b/c/3.nb", "4.nb"}
	for _, rel := range rels {
		writeNotebook(t, inputDir, rel)
	}

	notebooks, err := Discover(inputDir, ".nb")
	require.NoError(t, err)
	require.Len(t, notebooks, len(rels))

	var log bytes.Buffer
	result, err := Run(&fakeExtractor{}, notebooks, inputDir, outputDir, Options{}, &log)
	require.NoError(t, err)
	assert.Equal(t, len(rels), result.Total())

	count := 0
	err = filepath.Walk(outputDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(path, ".txt") {
			count++
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, len(rels), count, "no notebook may be silently skipped")
}
