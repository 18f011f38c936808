// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbextract/pkg/types"
)

// ManifestFile is the name of the run manifest in the output root.
const ManifestFile = "manifest.yaml"

// WriteManifest records per-notebook outcomes as a flat YAML file in the
// output root, in discovery order. The content carries no timestamps, so
// repeated runs over an unchanged tree are byte-identical.
func WriteManifest(outputDir string, outcomes []types.NotebookOutcome) error {
	data, err := yaml.Marshal(types.Manifest{Notebooks: outcomes})
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(outputDir, ManifestFile), data, 0o644)
}
