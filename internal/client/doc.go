// Package client implements the headless register application runtime.
//
// It wires the dual durable store, the draft service adapter, the
// connectivity notifier and the sync manager into a single process
// lifecycle, exposed through a small set of diagnostic actions: status,
// drain, recover and list.
package client
