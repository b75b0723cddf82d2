package server

import "errors"

// errNoServersAreCreated mirrors the handler-level guard: a config without a
// single listen address must stop the boot, not produce an idle process.
var errNoServersAreCreated = errors.New("no servers are created")
