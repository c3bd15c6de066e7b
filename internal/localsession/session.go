// Package localsession provides a concrete implementation of the session.Session
// and session.SessionFactory interfaces for local, in-process execution.
package localsession

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/handlers"
	"github.com/specialistvlad/gretago/internal/localexecutor"
	"github.com/specialistvlad/gretago/internal/session"
)

// ErrClosed is returned when a closed session is used.
var ErrClosed = errors.New("session is closed")

// SessionFactory implements session.SessionFactory for local runs.
type SessionFactory struct {
	// Handlers are the operator kernels of the engine. Nil means the
	// built-in set.
	Handlers *handlers.Handlers
}

// NewSession creates and configures a new local session.
func (f *SessionFactory) NewSession(ctx context.Context) (session.Session, error) {
	h := f.Handlers
	if h == nil {
		h = handlers.Default()
	}
	s := New(localexecutor.New(h))
	ctxlog.FromContext(ctx).Debug("Local session created.", "session", s.ID())
	return s, nil
}

// Session implements session.Session for local runs.
type Session struct {
	id     string
	engine executor.Engine

	mu      sync.Mutex
	defined []executor.Executable
	closed  bool
}

// New creates a session on top of the given engine.
func New(engine executor.Engine) *Session {
	return &Session{id: uuid.NewString(), engine: engine}
}

// ID returns the session's random identifier.
func (s *Session) ID() string { return s.id }

// Reset discards all defined executables.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	ctxlog.FromContext(ctx).Debug("Session reset.", "session", s.id, "discarded", len(s.defined))
	s.defined = nil
	return nil
}

// Define forwards the plan to the engine and records the executable.
func (s *Session) Define(ctx context.Context, plan *executor.Plan) (executor.Executable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	x, err := s.engine.Define(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.defined = append(s.defined, x)
	return x, nil
}

// Fragments returns the number of executables held by the session.
func (s *Session) Fragments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.defined)
}

// Close drops the session state. Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Session closed.", "session", s.id)
	s.closed = true
	s.defined = nil
	return nil
}
