package rtl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ArthurEly/finn-old/internal/threshold"
)

// FileSet is the fixed template set, in generation order: core compute block,
// AXI stream wrapper, outer top-level wrapper. The names are a stable
// contract; generated artifacts keep the same base filenames.
var FileSet = []string{
	"thresholding.sv",
	"thresholding_axi.sv",
	"thresholding_axi_wrapper.v",
}

// Result reports one completed generation call. TopModule is the resolved
// top-level module name of the generated block; callers record it in their
// own configuration rather than this package mutating operator state.
type Result struct {
	TopModule string   `json:"top_module"`
	Files     []string `json:"files"`
}

// Generate renders the template set from rootDir into destDir, substituting
// the dictionary computed from a and moduleName.
//
// The artifact set is replaced as a unit. All templates are read and rendered
// in memory before anything is written, every output is staged as a temp file
// before any final name changes, and existing artifacts are parked and
// restored if installation fails partway. A failed call therefore leaves
// destDir holding the previous file set (or nothing, if there was none),
// never a mix of old and new artifacts.
func Generate(rootDir, destDir, moduleName string, a *threshold.Attrs) (Result, error) {
	dict := CodegenDict(a, moduleName)

	rendered := make([][]byte, len(FileSet))
	for i, name := range FileSet {
		raw, err := os.ReadFile(filepath.Join(rootDir, name))
		if err != nil {
			return Result{}, fmt.Errorf("%w: read template %s: %v", ErrIO, name, err)
		}
		rendered[i] = []byte(Render(string(raw), dict))
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: create %s: %v", ErrIO, destDir, err)
	}
	if err := installFileSet(destDir, rendered); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}

	files := make([]string, len(FileSet))
	copy(files, FileSet)
	return Result{TopModule: dict[TokTopModule][0], Files: files}, nil
}

// installFileSet replaces the artifact set in destDir as a unit. All new
// contents are staged as temp files first, then existing artifacts are parked
// under backup names, then the staged files are renamed into place. Any
// failure rolls back: staged and already-placed files are removed and parked
// artifacts restored.
func installFileSet(destDir string, rendered [][]byte) error {
	staged := make([]string, 0, len(FileSet))
	discardStaged := func(from int) {
		for _, p := range staged[from:] {
			_ = os.Remove(p)
		}
	}
	for i, name := range FileSet {
		tmp, err := stageFile(destDir, rendered[i])
		if err != nil {
			discardStaged(0)
			return fmt.Errorf("write %s: %v", name, err)
		}
		staged = append(staged, tmp)
	}

	backups := make([]string, len(FileSet))
	restoreBackups := func() {
		for i, b := range backups {
			if b != "" {
				_ = os.Rename(b, filepath.Join(destDir, FileSet[i]))
			}
		}
	}
	for i, name := range FileSet {
		final := filepath.Join(destDir, name)
		if _, err := os.Lstat(final); err != nil {
			continue
		}
		b := final + ".old"
		if err := os.Rename(final, b); err != nil {
			discardStaged(0)
			restoreBackups()
			return fmt.Errorf("park %s: %v", name, err)
		}
		backups[i] = b
	}

	for i, name := range FileSet {
		if err := os.Rename(staged[i], filepath.Join(destDir, name)); err != nil {
			for j := 0; j < i; j++ {
				_ = os.Remove(filepath.Join(destDir, FileSet[j]))
			}
			discardStaged(i)
			restoreBackups()
			return fmt.Errorf("install %s: %v", name, err)
		}
	}
	for _, b := range backups {
		if b != "" {
			_ = os.Remove(b)
		}
	}
	return nil
}

func stageFile(dir string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, ".gen-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
