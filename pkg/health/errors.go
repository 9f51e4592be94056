package health

import "errors"

// ErrCheckFailed can be wrapped by checks that have no better error.
var ErrCheckFailed = errors.New("health: check failed")
