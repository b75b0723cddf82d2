// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution; Stop asks it to finish and waits until
// it has.
//
// Implementations are expected to spawn goroutines internally and return
// from Run immediately, so an aggregate can start many workers in sequence.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // launch background processing
//	}
//
//	func (w *MyWorker) Stop() {
//	    // wind background processing down
//	}
type Worker interface {
	Run()
	Stop()
}
