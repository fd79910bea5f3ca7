package rtl

import "errors"

// ErrIO covers template read failures and generated-file write failures.
// A failed generation call aborts before any output file is written.
var ErrIO = errors.New("rtl: template i/o failure")
