// Package threshold describes a per-channel piecewise-threshold (quantization)
// dataflow operator and derives the folded shapes and stream widths the
// surrounding dataflow graph needs for compatibility checking.
//
// The operator itself is emitted as RTL (see internal/rtl); nothing here
// executes it. Derivations are pure functions of the current attribute state
// and are recomputed on every call.
package threshold

import (
	"fmt"

	"github.com/ArthurEly/finn-old/pkg/dtype"
)

// MemMode selects how the threshold memory is provided to the hardware.
type MemMode string

const (
	// MemModeConst embeds the thresholds at build time.
	MemModeConst MemMode = "const"
	// MemModeDecoupled streams thresholds in through a weight stream.
	MemModeDecoupled MemMode = "decoupled"
)

// RAMStyle is a synthesis hint for the threshold memory.
type RAMStyle string

const (
	RAMStyleDistributed RAMStyle = "distributed"
	RAMStyleBlock       RAMStyle = "block"
)

// Attrs is the full attribute record of one thresholding operator node.
//
// It is a plain configuration record: callers populate it (typically from a
// YAML operator description), call Normalize then Validate, and only then
// hand it to the code generator. Validation is eager and total; none of the
// derivation methods re-check.
type Attrs struct {
	// NumChannels is the number of channels, each with its own thresholds.
	NumChannels int `yaml:"num_channels" json:"num_channels"`
	// PE is the parallelism: channels thresholded per cycle. Must divide
	// NumChannels exactly.
	PE int `yaml:"pe" json:"pe"`
	// NumSteps is the number of steps in the thresholding function.
	NumSteps int `yaml:"num_steps" json:"num_steps"`

	RAMStyle RAMStyle `yaml:"ram_style" json:"ram_style"`

	InputType  dtype.DataType `yaml:"input_type" json:"input_type"`
	WeightType dtype.DataType `yaml:"weight_type" json:"weight_type"`
	OutputType dtype.DataType `yaml:"output_type" json:"output_type"`

	InFIFODepth  int `yaml:"in_fifo_depth" json:"in_fifo_depth"`
	OutFIFODepth int `yaml:"out_fifo_depth" json:"out_fifo_depth"`

	// NumInputVectors are the batch/group dimensions in front of the channel
	// dimension, e.g. [1] for a single vector or [1, 4, 4] for a conv layer.
	NumInputVectors []int `yaml:"num_input_vectors" json:"num_input_vectors"`

	MemMode MemMode `yaml:"mem_mode" json:"mem_mode"`
	// RuntimeWriteableWeights exposes the threshold memory over AXI-lite for
	// runtime reprogramming. Only valid with MemModeDecoupled.
	RuntimeWriteableWeights bool `yaml:"runtime_writeable_weights" json:"runtime_writeable_weights"`
}

// Normalize fills in the declared defaults for optional attributes.
func (a *Attrs) Normalize() {
	if a.NumSteps == 0 {
		a.NumSteps = 1
	}
	if a.RAMStyle == "" {
		a.RAMStyle = RAMStyleDistributed
	}
	if a.MemMode == "" {
		a.MemMode = MemModeConst
	}
	if len(a.NumInputVectors) == 0 {
		a.NumInputVectors = []int{1}
	}
}

// Validate checks the whole record eagerly. It distinguishes missing required
// attributes (ErrMissingAttribute), per-attribute violations (ErrValidation)
// and cross-attribute inconsistencies (ErrConfig).
func (a *Attrs) Validate() error {
	if a.NumChannels == 0 {
		return fmt.Errorf("%w: num_channels", ErrMissingAttribute)
	}
	if a.PE == 0 {
		return fmt.Errorf("%w: pe", ErrMissingAttribute)
	}
	if a.InputType.IsZero() {
		return fmt.Errorf("%w: input_type", ErrMissingAttribute)
	}
	if a.WeightType.IsZero() {
		return fmt.Errorf("%w: weight_type", ErrMissingAttribute)
	}
	if a.OutputType.IsZero() {
		return fmt.Errorf("%w: output_type", ErrMissingAttribute)
	}

	if a.NumChannels < 0 {
		return fmt.Errorf("%w: num_channels = %d", ErrValidation, a.NumChannels)
	}
	if a.PE < 0 {
		return fmt.Errorf("%w: pe = %d", ErrValidation, a.PE)
	}
	if a.NumSteps < 1 {
		return fmt.Errorf("%w: num_steps = %d", ErrValidation, a.NumSteps)
	}
	if a.InFIFODepth < 0 || a.OutFIFODepth < 0 {
		return fmt.Errorf("%w: fifo depths must be >= 0", ErrValidation)
	}
	switch a.RAMStyle {
	case RAMStyleDistributed, RAMStyleBlock:
	default:
		return fmt.Errorf("%w: ram_style = %q", ErrValidation, a.RAMStyle)
	}
	switch a.MemMode {
	case MemModeConst, MemModeDecoupled:
	default:
		return fmt.Errorf("%w: mem_mode = %q", ErrValidation, a.MemMode)
	}
	for _, v := range a.NumInputVectors {
		if v < 1 {
			return fmt.Errorf("%w: num_input_vectors entry = %d", ErrValidation, v)
		}
	}

	// The fold must be integral. Silent truncation here would produce
	// hardware that drops channels, so non-divisible configurations are
	// rejected outright rather than assumed pre-validated upstream.
	if a.NumChannels%a.PE != 0 {
		return fmt.Errorf("%w: pe %d does not divide num_channels %d", ErrConfig, a.PE, a.NumChannels)
	}
	if a.MemMode == MemModeConst && a.RuntimeWriteableWeights {
		return fmt.Errorf("%w: runtime_writeable_weights requires mem_mode=decoupled", ErrConfig)
	}
	return nil
}
