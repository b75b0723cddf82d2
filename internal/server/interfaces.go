package server

// Server is the lifecycle contract for the transports the draft service
// runs. [NewServer] returns one; main blocks in RunServer until a stop
// signal lands.
type Server interface {
	// RunServer serves requests until shutdown is requested. In-flight
	// register syncs are drained before it returns.
	RunServer()

	// Shutdown stops accepting connections and releases resources.
	Shutdown()
}
