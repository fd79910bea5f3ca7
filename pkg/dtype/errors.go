package dtype

import "errors"

var ErrUnknownType = errors.New("dtype: unknown datatype")
