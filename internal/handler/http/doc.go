// Package http is the REST surface of the draft service.
//
// It wires the chi router, the per-route handlers and the middleware chain
// the registers talk to: trace ids, access logging, gzip, token auth and
// batch integrity checks all run here before a request reaches the service
// layer. Wrong-method and unknown-path probes are answered identically, so
// the route tree is not enumerable from outside.
package http
