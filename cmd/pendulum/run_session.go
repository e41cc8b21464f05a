// File: cmd/pendulum/run_session.go
// Brief: Per-invocation observer and journal wiring.

package main

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/journal"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/ui"
)

// runSession bundles the run ID, console, and journal observers for one
// deploy or teardown invocation.
type runSession struct {
	RunID     string
	Observers []stack.EventObserver

	store *journal.Store
}

// startRunSession opens the journal (unless disabled) and builds the observer
// chain. A journal that cannot be opened degrades to a warning: the audit
// trail is optional, the deployment is not.
func startRunSession(ctx context.Context, opts *config.Options, logger *zap.Logger, planName, command string, out io.Writer) *runSession {
	s := &runSession{RunID: uuid.NewString()}
	s.Observers = append(s.Observers, ui.NewConsole(out, ui.ConsoleOptions{Verbose: opts.Verbose}))

	if opts.NoJournal {
		return s
	}
	path, err := opts.JournalPath()
	if err == nil {
		s.store, err = journal.Open(path)
	}
	if err != nil {
		logger.Warn("run journal unavailable, continuing without it", zap.Error(err))
		return s
	}
	if err := s.store.BeginRun(ctx, s.RunID, planName, command); err != nil {
		logger.Warn("run journal unavailable, continuing without it", zap.Error(err))
		_ = s.store.Close()
		s.store = nil
		return s
	}
	s.Observers = append(s.Observers, s.store.Observer(s.RunID))
	return s
}

func (s *runSession) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}
