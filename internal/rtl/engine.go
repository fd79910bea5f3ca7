// Package rtl renders the fixed thresholding RTL template set by substituting
// a computed placeholder dictionary.
//
// Substitution is a single pass over the template text against a closed token
// set. Replacement values are inserted verbatim and never rescanned, so a
// value that happens to contain a placeholder-shaped substring can never
// trigger a second substitution. Running the engine twice over a fresh
// template with the same dictionary yields byte-identical output.
package rtl

import (
	"strconv"
	"strings"

	"github.com/ArthurEly/finn-old/internal/threshold"
)

// Token is one placeholder in the closed substitution set. Tokens are fully
// delimited by '$' on both sides; the delimiters make it unambiguous which
// token (if any) starts at a given position.
type Token string

const (
	TokModuleName           Token = "$MODULE_NAME$"
	TokModuleNameAXI        Token = "$MODULE_NAME_AXI$"
	TokModuleNameAXIWrapper Token = "$MODULE_NAME_AXI_WRAPPER$"
	TokTopModule            Token = "$TOP_MODULE$"
	TokOutputWidth          Token = "$N$"
	TokWeightWidth          Token = "$M$"
	TokNumChannels          Token = "$C$"
)

// tokens fixes the match order at any template position. The order is part of
// the determinism contract and never depends on dictionary content.
var tokens = [...]Token{
	TokModuleName,
	TokModuleNameAXI,
	TokModuleNameAXIWrapper,
	TokTopModule,
	TokOutputWidth,
	TokWeightWidth,
	TokNumChannels,
}

// Dict maps each placeholder token to its replacement lines. Multi-line
// values are joined with a single newline on insertion.
type Dict map[Token][]string

// CodegenDict computes the full placeholder dictionary for one operator.
// moduleName names the core compute block; the AXI wrapper derived from it is
// the top module of the generated IP.
func CodegenDict(a *threshold.Attrs, moduleName string) Dict {
	wrapper := moduleName + "_axi_wrapper"
	return Dict{
		TokModuleName:           {moduleName},
		TokModuleNameAXI:        {moduleName + "_axi"},
		TokModuleNameAXIWrapper: {wrapper},
		TokTopModule:            {wrapper},
		TokOutputWidth:          {strconv.Itoa(a.OutputType.Bitwidth())},
		TokWeightWidth:          {strconv.Itoa(a.WeightType.Bitwidth())},
		TokNumChannels:          {strconv.Itoa(a.NumChannels)},
	}
}

// Render substitutes dict into template. Placeholder-shaped text that is not
// in the closed token set, or whose token is absent from dict, passes through
// untouched.
func Render(template string, dict Dict) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		next := strings.IndexByte(template[i:], '$')
		if next < 0 {
			b.WriteString(template[i:])
			break
		}
		b.WriteString(template[i : i+next])
		i += next

		tok, ok := matchToken(template[i:])
		if !ok {
			b.WriteByte('$')
			i++
			continue
		}
		if lines, have := dict[tok]; have {
			b.WriteString(strings.Join(lines, "\n"))
		} else {
			b.WriteString(string(tok))
		}
		i += len(tok)
	}
	return b.String()
}

func matchToken(s string) (Token, bool) {
	for _, tok := range tokens {
		if strings.HasPrefix(s, string(tok)) {
			return tok, true
		}
	}
	return "", false
}
