// File: internal/journal/journal_test.go
// Brief: Tests for the sqlite run journal.

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/stack"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.BeginRun(ctx, "run-1", "pendulum", "deploy"))
	require.NoError(t, s.AppendEvent(ctx, "run-1", stack.Event{Type: stack.StackSucceeded, Stack: "network", Phase: "deploy", Status: "succeeded"}))
	require.NoError(t, s.CompleteRun(ctx, "run-1", "succeeded"))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "run-1", runs[0].RunID)
	require.Equal(t, "deploy", runs[0].Command)
	require.Equal(t, "succeeded", runs[0].Status)

	events, err := s.Events(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "network", events[0].Stack)
	require.Equal(t, string(stack.StackSucceeded), events[0].Type)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.BeginRun(ctx, "run-1", "pendulum", "deploy"))
	time.Sleep(2 * time.Millisecond) // created_at_ns is the sort key
	require.NoError(t, s.BeginRun(ctx, "run-2", "pendulum", "destroy"))

	runs, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "run-2", runs[0].RunID)
}

func TestObserverSettlesRunStatus(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.BeginRun(ctx, "run-1", "pendulum", "deploy"))
	obs := s.Observer("run-1")
	obs.ObserveEvent(stack.Event{Type: stack.StackProvisioning, Stack: "network", Phase: "deploy"})
	obs.ObserveEvent(stack.Event{Type: stack.RunCompleted, Phase: "deploy", Status: "failed"})

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "failed", runs[0].Status)

	events, err := s.Events(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
}
