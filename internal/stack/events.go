// File: internal/stack/events.go
// Brief: Structured run events emitted by the orchestrators.

package stack

import "time"

// EventType enumerates structured run events.
//
// These values are persisted in the sqlite run journal and consumed by the
// console renderer and `pendulum runs show`.
type EventType string

const (
	RunStarted   EventType = "RUN_STARTED"
	RunCompleted EventType = "RUN_COMPLETED"

	StackProvisioning EventType = "STACK_PROVISIONING"
	StackSucceeded    EventType = "STACK_SUCCEEDED"
	StackFailed       EventType = "STACK_FAILED"

	RedeployQueued    EventType = "REDEPLOY_QUEUED"
	RedeployStarted   EventType = "REDEPLOY_STARTED"
	RedeploySucceeded EventType = "REDEPLOY_SUCCEEDED"
	RedeployFailed    EventType = "REDEPLOY_FAILED"

	StackDestroying    EventType = "STACK_DESTROYING"
	StackDestroyed     EventType = "STACK_DESTROYED"
	StackNotFound      EventType = "STACK_NOT_FOUND"
	StackDestroyFailed EventType = "STACK_DESTROY_FAILED"
)

// Event is one progress notification: which stack, which phase, what happened.
type Event struct {
	Time    time.Time
	Type    EventType
	Stack   string
	Phase   string
	Status  string
	Message string
}

type EventObserver interface {
	ObserveEvent(Event)
}

type EventObserverFunc func(Event)

func (f EventObserverFunc) ObserveEvent(ev Event) {
	if f == nil {
		return
	}
	f(ev)
}

// Emit fans an event out to every observer, stamping the time if unset.
func Emit(observers []EventObserver, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	for _, o := range observers {
		if o != nil {
			o.ObserveEvent(ev)
		}
	}
}
