package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Harshitk-cp/aurora/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingExtractor struct {
	count    atomic.Int32
	mu       sync.Mutex
	messages []string
	deadline bool
}

func (e *countingExtractor) ExtractAndAdd(ctx context.Context, msg string) bool {
	_, hasDeadline := ctx.Deadline()
	e.mu.Lock()
	e.messages = append(e.messages, msg)
	e.deadline = hasDeadline
	e.mu.Unlock()
	e.count.Add(1)
	return true
}

// blockingExtractor holds each job until release is closed.
type blockingExtractor struct {
	started chan struct{}
	release chan struct{}
}

func (e *blockingExtractor) ExtractAndAdd(ctx context.Context, msg string) bool {
	e.started <- struct{}{}
	<-e.release
	return false
}

func TestLearnerService_ProcessesJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	ex := &countingExtractor{}
	l := NewLearnerService(ex, 2, 8, zap.NewNop())
	l.Start()

	for _, m := range []string{"first message", "second message", "third message"} {
		assert.True(t, l.Dispatch(m))
	}
	require.Eventually(t, func() bool { return ex.count.Load() == 3 }, time.Second, 5*time.Millisecond)
	l.Stop()

	ex.mu.Lock()
	defer ex.mu.Unlock()
	assert.ElementsMatch(t, []string{"first message", "second message", "third message"}, ex.messages)
	assert.True(t, ex.deadline, "jobs must run with their own timeout")
}

func TestLearnerService_DropsWhenQueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zapcore.WarnLevel)
	ex := &blockingExtractor{started: make(chan struct{}, 1), release: make(chan struct{})}
	l := NewLearnerService(ex, 1, 1, zap.New(core))
	l.Start()

	require.True(t, l.Dispatch("occupies the worker"))
	<-ex.started
	require.True(t, l.Dispatch("waits in the queue"))
	assert.False(t, l.Dispatch("no room left"))
	assert.Equal(t, 1, logs.FilterMessage("learner queue full, dropping extraction job").Len())

	close(ex.release)
	// Let the queued job start so Stop does not race with it.
	<-ex.started
	l.Stop()
}

func TestLearnerService_DispatchAfterStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLearnerService(&countingExtractor{}, 1, 1, zap.NewNop())
	l.Start()
	l.Stop()
	l.Stop()

	assert.False(t, l.Dispatch("too late for this one"))
}

func TestLearnerService_WithFactService(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newTestRepo(t)
	mock := llm.NewMockClient()
	mock.GenerateResponse = "User lives in Oslo"
	facts := NewFactService(repo, mock, "m", zap.NewNop())

	l := NewLearnerService(facts, 1, 4, zap.NewNop())
	l.SetTimeout(time.Second)
	l.Start()
	defer l.Stop()

	require.True(t, l.Dispatch("I moved to Oslo last year"))
	require.Eventually(t, func() bool {
		return len(loadState(t, repo).Facts) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "User lives in Oslo", loadState(t, repo).Facts[0])
}
