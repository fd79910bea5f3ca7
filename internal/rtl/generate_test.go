package rtl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplates(t *testing.T, dir string) {
	t.Helper()
	contents := map[string]string{
		"thresholding.sv":            "module $MODULE_NAME$ #(int C = $C$);\nendmodule\n",
		"thresholding_axi.sv":        "module $MODULE_NAME_AXI$;\n$MODULE_NAME$ core();\nendmodule\n",
		"thresholding_axi_wrapper.v": "module $MODULE_NAME_AXI_WRAPPER$;\n// top: $TOP_MODULE$\nendmodule\n",
	}
	for name, body := range contents {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write template %s: %v", name, err)
		}
	}
}

func TestGenerateRendersFileSet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "gen")
	writeTemplates(t, root)

	res, err := Generate(root, dest, "thr_node0", testAttrs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.TopModule != "thr_node0_axi_wrapper" {
		t.Errorf("TopModule = %q", res.TopModule)
	}
	if len(res.Files) != len(FileSet) {
		t.Fatalf("Files = %v", res.Files)
	}

	core, err := os.ReadFile(filepath.Join(dest, "thresholding.sv"))
	if err != nil {
		t.Fatalf("read generated core: %v", err)
	}
	want := "module thr_node0 #(int C = 64);\nendmodule\n"
	if string(core) != want {
		t.Errorf("core = %q, want %q", core, want)
	}

	wrapper, err := os.ReadFile(filepath.Join(dest, "thresholding_axi_wrapper.v"))
	if err != nil {
		t.Fatalf("read generated wrapper: %v", err)
	}
	if string(wrapper) != "module thr_node0_axi_wrapper;\n// top: thr_node0_axi_wrapper\nendmodule\n" {
		t.Errorf("wrapper = %q", wrapper)
	}
}

func TestGenerateIsByteIdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "gen")
	writeTemplates(t, root)

	a := testAttrs()
	if _, err := Generate(root, dest, "thr", a); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	first := map[string][]byte{}
	for _, name := range FileSet {
		data, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		first[name] = data
	}

	if _, err := Generate(root, dest, "thr", a); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	for _, name := range FileSet {
		data, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != string(first[name]) {
			t.Errorf("%s changed between identical runs", name)
		}
	}
}

func TestGenerateMissingTemplateWritesNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTemplates(t, root)
	// Remove the last template: generation must fail before any write.
	if err := os.Remove(filepath.Join(root, "thresholding_axi_wrapper.v")); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "gen")
	_, err := Generate(root, dest, "thr", testAttrs())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		entries, _ := os.ReadDir(dest)
		if len(entries) != 0 {
			t.Fatalf("destination not empty after failed generation: %v", entries)
		}
	}
}

func TestGenerateFailureKeepsPreviousFileSet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dest := t.TempDir()
	writeTemplates(t, root)

	for _, name := range FileSet {
		if err := os.WriteFile(filepath.Join(dest, name), []byte("OLD "+name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Block the second artifact's installation: a directory squatting on its
	// backup name makes the file-set replacement fail partway through.
	if err := os.Mkdir(filepath.Join(dest, FileSet[1]+".old"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(root, dest, "thr", testAttrs()); !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}

	// The previous file set must survive intact: no artifact may have been
	// replaced while a sibling kept its old content.
	for _, name := range FileSet {
		data, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("read %s after failed generation: %v", name, err)
		}
		if string(data) != "OLD "+name+"\n" {
			t.Errorf("%s = %q, want previous content", name, data)
		}
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".gen-") {
			t.Errorf("staged file left behind: %s", e.Name())
		}
	}
}

func TestGenerateNoTempFilesLeftBehind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "gen")
	writeTemplates(t, root)

	if _, err := Generate(root, dest, "thr", testAttrs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(FileSet) {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected entries in generation dir: %v", names)
	}
}
