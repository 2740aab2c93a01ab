package idx

import "errors"

var ErrMalformedIndex = errors.New("index length is not a multiple of the record size")
