package weightfile

import "errors"

var (
	// ErrInvalidShape: the threshold matrix does not match (NumChannels, NumSteps).
	ErrInvalidShape = errors.New("weightfile: threshold matrix shape mismatch")
	// ErrInvalidMode: unrecognized weight file mode.
	ErrInvalidMode = errors.New("weightfile: unknown weight file mode")
	// ErrIO: destination write failure.
	ErrIO = errors.New("weightfile: write failure")
)
