// Package session defines the execution context a model build lowers into.
//
// A Session owns the engine state of one modelling workflow. Lowering resets
// it before defining a new executable, so repeated builds never accumulate
// stale graph fragments. Builds that use distinct sessions are independent;
// a single session must not be shared by concurrent builds.
package session

import (
	"context"

	"github.com/specialistvlad/gretago/internal/executor"
)

// SessionFactory creates execution sessions. Different implementations can
// back sessions with different engines.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session represents one execution context and manages its lifecycle.
type Session interface {
	// ID identifies the session in logs.
	ID() string

	// Reset discards every executable defined so far.
	Reset(ctx context.Context) error

	// Define hands a plan to the session's engine and keeps the resulting
	// executable as part of the session state.
	Define(ctx context.Context, plan *executor.Plan) (executor.Executable, error)

	// Fragments returns the number of executables currently held.
	Fragments() int

	// Close releases any resources held by the session. It accepts a context
	// to allow for graceful cleanup operations.
	Close(ctx context.Context) error
}
