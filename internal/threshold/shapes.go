package threshold

// Shape and stream-width derivations. All of these are pure functions of the
// current attribute state; identical attributes always yield identical
// results, and nothing is cached because attributes may be rewritten by
// configuration passes between calls.

// Tmem is the threshold memory depth per PE lane: NumChannels / PE.
// Validate guarantees the division is exact.
func (a *Attrs) Tmem() int {
	return a.NumChannels / a.PE
}

// FoldedInputShape is NumInputVectors ++ [tmem, PE].
func (a *Attrs) FoldedInputShape() []int {
	shape := make([]int, 0, len(a.NumInputVectors)+2)
	shape = append(shape, a.NumInputVectors...)
	return append(shape, a.Tmem(), a.PE)
}

// FoldedOutputShape equals FoldedInputShape: thresholding preserves channels.
func (a *Attrs) FoldedOutputShape() []int {
	return a.FoldedInputShape()
}

// NormalInputShape is NumInputVectors ++ [NumChannels].
func (a *Attrs) NormalInputShape() []int {
	shape := make([]int, 0, len(a.NumInputVectors)+1)
	shape = append(shape, a.NumInputVectors...)
	return append(shape, a.NumChannels)
}

// NormalOutputShape equals NormalInputShape.
func (a *Attrs) NormalOutputShape() []int {
	return a.NormalInputShape()
}

// InStreamWidth is the input stream width in bits per cycle.
func (a *Attrs) InStreamWidth() int {
	return a.InputType.Bitwidth() * a.PE
}

// OutStreamWidth is the output stream width in bits per cycle.
func (a *Attrs) OutStreamWidth() int {
	return a.OutputType.Bitwidth() * a.PE
}

// WeightStreamWidth is the threshold stream width in bits per cycle.
// In const mode the thresholds are embedded and there is no stream.
func (a *Attrs) WeightStreamWidth() int {
	if a.MemMode != MemModeDecoupled {
		return 0
	}
	return a.WeightType.Bitwidth() * a.PE * a.NumSteps
}
