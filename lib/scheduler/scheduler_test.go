package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayowel/cfc/lib/executor"
	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/lib/schedule"
)

func testLogger() log.Logger {
	return log.New(logrus.NewEntry(logrus.StandardLogger()))
}

func TestLoopRunsAJobOnSchedule(t *testing.T) {
	sched, err := schedule.Parse("@every 1s")
	require.NoError(t, err)
	spec := jobspec.NewTestLocalJob("tick", sched, "true", true)

	loop, err := New(spec, nil, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 1200*time.Millisecond)
	defer cancel()

	assert.NoError(t, loop.Run(ctx))
}

// trackingExecutor wraps an Executor and records the peak number of
// concurrent Execute calls observed in flight, so a test can assert the
// scheduler's drop policy actually kept a serial job to one at a time.
type trackingExecutor struct {
	inner   executor.Executor
	current *int32
	peak    *int32
}

func (t trackingExecutor) Execute(ctx jobctx.Context) (executor.ExecutionReport, error) {
	n := atomic.AddInt32(t.current, 1)
	for {
		old := atomic.LoadInt32(t.peak)
		if n <= old || atomic.CompareAndSwapInt32(t.peak, old, n) {
			break
		}
	}
	defer atomic.AddInt32(t.current, -1)
	return t.inner.Execute(ctx)
}

// panickingExecutor always panics, simulating a malformed-response crash
// deep in a real executor (e.g. a nil-deref on a docker API result).
type panickingExecutor struct{}

func (panickingExecutor) Execute(ctx jobctx.Context) (executor.ExecutionReport, error) {
	panic("simulated executor panic")
}

func TestLoopTerminatesOnExecutorPanicWithoutCrashingTest(t *testing.T) {
	sched, err := schedule.Parse("@every 1s")
	require.NoError(t, err)
	spec := jobspec.NewTestLocalJob("panics", sched, "true", true)

	loop, err := New(spec, nil, testLogger())
	require.NoError(t, err)
	loop.exec = panickingExecutor{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = loop.Run(ctx)
	assert.Error(t, err, "a panicking execution must terminate only this loop with an error")
}

func TestLoopDropsFiresWhileSerialExecutionInFlight(t *testing.T) {
	sched, err := schedule.Parse("@every 1s")
	require.NoError(t, err)
	// sleep 2 makes the single execution outlast several 1-second fires.
	spec := jobspec.NewTestLocalJob("serial", sched, "sleep 2", false)

	loop, err := New(spec, nil, testLogger())
	require.NoError(t, err)

	var current, peak int32
	loop.exec = trackingExecutor{inner: loop.exec, current: &current, peak: &peak}

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	require.NoError(t, loop.Run(ctx))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(1), "serial job must never run more than one execution concurrently")
}
