// Package worker holds the state shared by the background workers: an atomic
// Idle/Running gate and the Busy error returned when a request collides with
// work already in flight.
package worker

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when an operation is requested while a conflicting one runs.
var ErrBusy = errors.New("operation already in progress")

// State is the explicit worker state
type State int32

const (
	StateIdle State = iota
	StateRunning
)

// String returns the state name
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Gate admits one run at a time. The zero value is an idle gate.
type Gate struct {
	state atomic.Int32
}

// TryStart moves the gate from Idle to Running. It returns ErrBusy if a run is
// already in progress.
func (g *Gate) TryStart() error {
	if !g.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrBusy
	}
	return nil
}

// Finish returns the gate to Idle
func (g *Gate) Finish() {
	g.state.Store(int32(StateIdle))
}

// State returns the current state
func (g *Gate) State() State {
	return State(g.state.Load())
}

// Busy reports whether a run is in progress
func (g *Gate) Busy() bool {
	return g.State() == StateRunning
}
