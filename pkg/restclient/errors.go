package restclient

import "errors"

// ErrInvalidParameters reports a client that cannot be built or an operation
// that was given unusable arguments.
var ErrInvalidParameters = errors.New("invalid parameters")
