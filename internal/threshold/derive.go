package threshold

// Derived is the complete derived view of one operator: everything the
// surrounding dataflow graph needs for compatibility checking, computed fresh
// from the current attribute state.
type Derived struct {
	Tmem              int              `json:"tmem"`
	FoldedInputShape  []int            `json:"folded_input_shape"`
	FoldedOutputShape []int            `json:"folded_output_shape"`
	NormalInputShape  []int            `json:"normal_input_shape"`
	NormalOutputShape []int            `json:"normal_output_shape"`
	InStreamWidth     int              `json:"in_stream_width"`
	OutStreamWidth    int              `json:"out_stream_width"`
	WeightStreamWidth int              `json:"weight_stream_width"`
	Resources         ResourceEstimate `json:"resources"`
	ExpCycles         int              `json:"exp_cycles"`
}

// Derive computes the full derived view. Attrs must have been validated.
func (a *Attrs) Derive() Derived {
	return Derived{
		Tmem:              a.Tmem(),
		FoldedInputShape:  a.FoldedInputShape(),
		FoldedOutputShape: a.FoldedOutputShape(),
		NormalInputShape:  a.NormalInputShape(),
		NormalOutputShape: a.NormalOutputShape(),
		InStreamWidth:     a.InStreamWidth(),
		OutStreamWidth:    a.OutStreamWidth(),
		WeightStreamWidth: a.WeightStreamWidth(),
		Resources:         a.Resources(),
		ExpCycles:         a.ExpCycles(),
	}
}
