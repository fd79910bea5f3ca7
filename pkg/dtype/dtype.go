// Package dtype implements the quantized datatype registry used by the
// dataflow operator descriptors.
//
// A datatype is identified by name ("INT8", "UINT4", "BINARY", ...) and
// resolves to a signedness flag and a container bitwidth. Names are a stable
// contract: they appear verbatim in operator description files.
package dtype

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType describes one quantized datatype.
//
// The zero value is "unset" and is reported by IsZero; operators treat an
// unset datatype on a required attribute as a missing attribute.
type DataType struct {
	name   string
	signed bool
	bits   int
}

// Fixed-name types. Integer types INTn/UINTn are parsed structurally.
var fixed = map[string]DataType{
	"BINARY":  {name: "BINARY", signed: false, bits: 1},
	"BIPOLAR": {name: "BIPOLAR", signed: true, bits: 1},
	"TERNARY": {name: "TERNARY", signed: true, bits: 2},
}

const maxIntBits = 64

// Parse resolves a datatype name. Resolution failure is an error.
func Parse(name string) (DataType, error) {
	if d, ok := fixed[name]; ok {
		return d, nil
	}
	if n, ok := strings.CutPrefix(name, "UINT"); ok {
		bits, err := strconv.Atoi(n)
		if err != nil || bits < 1 || bits > maxIntBits {
			return DataType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		return DataType{name: name, signed: false, bits: bits}, nil
	}
	if n, ok := strings.CutPrefix(name, "INT"); ok {
		bits, err := strconv.Atoi(n)
		if err != nil || bits < 2 || bits > maxIntBits {
			return DataType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		return DataType{name: name, signed: true, bits: bits}, nil
	}
	return DataType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// MustParse is Parse for statically known names, panicking on failure.
func MustParse(name string) DataType {
	d, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return d
}

func (d DataType) Name() string  { return d.name }
func (d DataType) Signed() bool  { return d.signed }
func (d DataType) Bitwidth() int { return d.bits }
func (d DataType) IsZero() bool  { return d.bits == 0 }

// Min returns the smallest representable value.
func (d DataType) Min() int64 {
	switch d.name {
	case "BIPOLAR":
		return -1
	case "TERNARY":
		return -1
	}
	if !d.signed {
		return 0
	}
	return -(int64(1) << (d.bits - 1))
}

// Max returns the largest representable value.
func (d DataType) Max() int64 {
	switch d.name {
	case "BIPOLAR", "TERNARY":
		return 1
	}
	if !d.signed {
		if d.bits == maxIntBits {
			return -1 // uint64 max does not fit in int64; Allowed special-cases this width
		}
		return (int64(1) << d.bits) - 1
	}
	return (int64(1) << (d.bits - 1)) - 1
}

// Allowed reports whether v is representable in this datatype.
func (d DataType) Allowed(v int64) bool {
	if d.name == "BIPOLAR" {
		return v == -1 || v == 1
	}
	if !d.signed && d.bits == maxIntBits {
		return v >= 0
	}
	return v >= d.Min() && v <= d.Max()
}

func (d DataType) String() string { return d.name }
