package service

import "errors"

// ErrValidation marks client input that fails domain validation. Services wrap
// it with a human-readable cause, handlers map it to a 400 response.
var ErrValidation = errors.New("validation failed")
