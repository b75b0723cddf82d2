package handler

import "errors"

// errNoHandlersAreCreated aborts startup when the server config names no
// listen address at all, so the misconfiguration surfaces in the boot log
// rather than as an unreachable draft service.
var errNoHandlersAreCreated = errors.New("no handlers are created")
