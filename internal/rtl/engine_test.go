package rtl

import (
	"strings"
	"testing"

	"github.com/ArthurEly/finn-old/internal/threshold"
	"github.com/ArthurEly/finn-old/pkg/dtype"
)

func testAttrs() *threshold.Attrs {
	a := &threshold.Attrs{
		NumChannels: 64,
		PE:          8,
		InputType:   dtype.MustParse("INT8"),
		WeightType:  dtype.MustParse("INT8"),
		OutputType:  dtype.MustParse("UINT4"),
	}
	a.Normalize()
	return a
}

func TestRenderBasicSubstitution(t *testing.T) {
	t.Parallel()

	dict := CodegenDict(testAttrs(), "thr_node0")
	in := "module $MODULE_NAME$ #(int C = $C$, int N = $N$, int M = $M$);"
	got := Render(in, dict)
	want := "module thr_node0 #(int C = 64, int N = 4, int M = 8);"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderModuleNameFamily(t *testing.T) {
	t.Parallel()

	dict := CodegenDict(testAttrs(), "thr")
	in := "$MODULE_NAME$ $MODULE_NAME_AXI$ $MODULE_NAME_AXI_WRAPPER$ $TOP_MODULE$"
	got := Render(in, dict)
	want := "thr thr_axi thr_axi_wrapper thr_axi_wrapper"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	dict := CodegenDict(testAttrs(), "thr_node0")
	in := "x $MODULE_NAME$ y $C$ z $UNKNOWN$ $"
	first := Render(in, dict)
	second := Render(in, dict)
	if first != second {
		t.Fatalf("two renders differ: %q vs %q", first, second)
	}
}

func TestRenderValueContainingTokenIsNotReexpanded(t *testing.T) {
	t.Parallel()

	// A computed value that looks like a placeholder must be inserted
	// verbatim, never picked up as a token itself.
	dict := Dict{
		TokModuleName:  {"$TOP_MODULE$"},
		TokTopModule:   {"real_top"},
		TokNumChannels: {"4"},
	}
	got := Render("$MODULE_NAME$ / $TOP_MODULE$ / $C$", dict)
	want := "$TOP_MODULE$ / real_top / 4"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnknownAndBareDollarsPassThrough(t *testing.T) {
	t.Parallel()

	dict := CodegenDict(testAttrs(), "thr")
	in := "$signed(x) $NOT_A_TOKEN$ $readmemh a$b $"
	if got := Render(in, dict); got != in {
		t.Fatalf("Render altered non-token text: %q", got)
	}
}

func TestRenderMultiLineValues(t *testing.T) {
	t.Parallel()

	dict := Dict{TokModuleName: {"line_a", "line_b"}}
	got := Render("// $MODULE_NAME$", dict)
	if got != "// line_a\nline_b" {
		t.Fatalf("Render = %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("want exactly one joined newline: %q", got)
	}
}

func TestCodegenDictValues(t *testing.T) {
	t.Parallel()

	dict := CodegenDict(testAttrs(), "thr_node0")
	if got := dict[TokTopModule][0]; got != "thr_node0_axi_wrapper" {
		t.Errorf("top module = %q", got)
	}
	if got := dict[TokOutputWidth][0]; got != "4" {
		t.Errorf("$N$ = %q, want output bitwidth 4", got)
	}
	if got := dict[TokWeightWidth][0]; got != "8" {
		t.Errorf("$M$ = %q, want weight bitwidth 8", got)
	}
	if got := dict[TokNumChannels][0]; got != "64" {
		t.Errorf("$C$ = %q, want 64", got)
	}
}
