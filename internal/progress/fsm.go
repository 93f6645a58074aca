// Package progress drives the "all focused work just finished" celebration.
//
// The raw completed==total condition flickers as tasks are added one at a
// time, so the celebration is edge-triggered: it is entered only from
// Working, never directly from Idle, and an empty queue never switches it
// off. The transition function is pure so it can be tested without any
// rendering harness.
package progress

import (
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

type State string

const (
	// StateIdle: queue empty or not yet started, nothing to celebrate.
	StateIdle State = "idle"
	// StateWorking: at least one incomplete queued task has been seen.
	StateWorking State = "working"
	// StateCelebrating: everything in the queue just became complete.
	StateCelebrating State = "celebrating"
	// StateSuppressed: the celebration was dismissed and no new incomplete
	// work has appeared yet.
	StateSuppressed State = "suppressed"
)

// Snapshot is a point-in-time count over the focus queue. Not persisted;
// recomputed on every queue change.
type Snapshot struct {
	Completed int
	Total     int
}

// Count builds a snapshot from the current focus queue contents.
func Count(tasks []model.Task) Snapshot {
	snap := Snapshot{Total: len(tasks)}
	for _, task := range tasks {
		if task.Complete {
			snap.Completed++
		}
	}
	return snap
}

// Next evaluates one transition. Malformed counts mean a bug in whatever
// produced the snapshot and are fatal.
func Next(state State, snap Snapshot) State {
	if snap.Completed < 0 || snap.Total < 0 || snap.Completed > snap.Total {
		panic(engine.PreconditionViolation{
			Msg: "malformed progress counts",
		})
	}
	// An empty queue reports nothing: in particular it must not end a
	// celebration just because the user cleared the queue.
	if snap.Total == 0 {
		return state
	}
	switch state {
	case StateIdle, StateSuppressed:
		if snap.Completed < snap.Total {
			return StateWorking
		}
	case StateWorking:
		if snap.Completed == snap.Total {
			return StateCelebrating
		}
	case StateCelebrating:
		if snap.Completed < snap.Total {
			return StateWorking
		}
	}
	return state
}

// Dismiss acknowledges a shown celebration. In any other state it is a
// no-op.
func Dismiss(state State) State {
	if state == StateCelebrating {
		return StateSuppressed
	}
	return state
}
