package models

// SyncEvent is one variant of the closed set of notifications the sync
// manager publishes on its event channel. Consumers switch on the concrete
// type; the unexported marker method keeps the set closed to this package.
//
//	for ev := range manager.Events() {
//	    switch e := ev.(type) {
//	    case models.EventOnline:
//	    case models.EventOffline:
//	    case models.EventSyncStarted:
//	    case models.EventSyncCompleted:
//	    case models.EventSyncFailed:
//	    case models.EventOperationFailed:
//	    case models.EventDraftSaved:
//	    }
//	}
type SyncEvent interface {
	syncEvent()
}

// EventOnline reports that connectivity was regained.
type EventOnline struct{}

// EventOffline reports that connectivity was lost.
type EventOffline struct{}

// EventSyncStarted reports that a queue drain began.
type EventSyncStarted struct {
	// Pending is the queue length at drain start.
	Pending int
}

// EventSyncCompleted reports that a drain finished and the queue is empty.
type EventSyncCompleted struct {
	// Synced is the number of operations the server acknowledged.
	Synced int
}

// EventSyncFailed reports that a drain ended with operations still queued;
// a delayed retry has been scheduled if the device is still online.
type EventSyncFailed struct {
	// Err is the drain-level error, nil when only individual operations
	// failed.
	Err error

	// Remaining is the queue length after the drain.
	Remaining int
}

// EventOperationFailed reports a single operation's failure.
type EventOperationFailed struct {
	// OpID is the failed operation's idempotency key.
	OpID string

	// Permanent reports that the operation was dropped from the queue:
	// either its retry budget is exhausted or the server marked the
	// failure non-retryable. Permanent failures are never retried
	// automatically; the UI should offer manual retry or discard.
	Permanent bool

	// Message is the server- or transport-provided explanation.
	Message string
}

// EventDraftSaved reports a successful durable save, local or remote.
type EventDraftSaved struct {
	// Draft is the saved record; Draft.Local distinguishes a device-only
	// save from a server-acknowledged one.
	Draft Draft
}

func (EventOnline) syncEvent()          {}
func (EventOffline) syncEvent()         {}
func (EventSyncStarted) syncEvent()     {}
func (EventSyncCompleted) syncEvent()   {}
func (EventSyncFailed) syncEvent()      {}
func (EventOperationFailed) syncEvent() {}
func (EventDraftSaved) syncEvent()      {}
