package domain

import "errors"

// ErrInvalidInput marks user supplied values the service cannot accept.
var ErrInvalidInput = errors.New("invalid input")
