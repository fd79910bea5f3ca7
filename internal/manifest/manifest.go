// Package manifest records the outcome of one RTL generation call as a
// deterministic JSON file alongside the generated sources.
//
// The manifest is the handoff between generation and integration: the
// integrate step reads it to learn the generated file list and the resolved
// top module. It contains nothing run-dependent (no timestamps, no IDs), so
// regenerating with unchanged inputs rewrites it byte-identically.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/ArthurEly/finn-old/internal/threshold"
)

// Filename is the manifest's fixed name inside a generation directory.
const Filename = "manifest.json"

type Manifest struct {
	// Operator is the attribute record the block was generated from.
	Operator threshold.Attrs `json:"operator"`
	// Derived is the shape/width view at generation time.
	Derived threshold.Derived `json:"derived"`
	// TopModule is the resolved top-level module of the generated block.
	TopModule string `json:"top_module"`
	// Files are the generated RTL base filenames, in generation order.
	Files []string `json:"files"`
}

// Write stores m as destDir/manifest.json via temp file + rename.
func Write(destDir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(destDir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("manifest: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(destDir, Filename)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}

// Load reads the manifest from a generation directory.
func Load(destDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(destDir, Filename))
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode: %w", err)
	}
	return m, nil
}
