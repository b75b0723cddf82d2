// Package server runs the draft service's HTTP transport: it binds the
// router to the configured address and owns the stop-signal handling and
// graceful drain, so a redeploy never cuts a register off mid-sync.
package server
