package threshold

import "errors"

var (
	// ErrMissingAttribute: a required attribute was never set.
	ErrMissingAttribute = errors.New("threshold: missing required attribute")
	// ErrValidation: an attribute value violates its type or allowed set.
	ErrValidation = errors.New("threshold: invalid attribute value")
	// ErrConfig: the attributes are individually valid but semantically
	// inconsistent (non-divisible fold, runtime-writeable weights in const
	// mode). Generation must never proceed past this.
	ErrConfig = errors.New("threshold: inconsistent configuration")
)
