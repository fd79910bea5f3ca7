package threshold

// This operator emits RTL rather than being simulated in process, so the
// parts of the uniform operator interface that concern in-process execution
// and resource estimation are deliberately inert. They exist so callers that
// iterate over heterogeneous operators do not need to special-case this one.

// ResourceEstimate holds per-resource usage placeholders.
type ResourceEstimate struct {
	BRAM int `json:"bram"`
	LUT  int `json:"lut"`
	DSP  int `json:"dsp"`
	URAM int `json:"uram"`
}

// Resources returns an all-zero estimate. Real estimation is the synthesis
// tool's job and happens outside this core.
func (a *Attrs) Resources() ResourceEstimate {
	return ResourceEstimate{}
}

// ExpCycles returns 0: no cycle model is maintained for the RTL variant.
func (a *Attrs) ExpCycles() int { return 0 }

// NumberOutputValues returns 0: output accounting is not tracked here.
func (a *Attrs) NumberOutputValues() int { return 0 }

// Execute is the in-process execution hook and is a no-op.
func (a *Attrs) Execute() error { return nil }
