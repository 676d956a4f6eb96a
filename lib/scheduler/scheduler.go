/*
Copyright 2018 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package scheduler implements C6: one control loop per JobSpec, fed by
// a manual fan-in channel of outcome events - one timer goroutine and
// one goroutine per forked execution, consumed by a single select loop.
// This is, per spec.md §9, "the clearest expression" of the multiplex;
// no library in the retrieved pack models this shape, so it is built
// directly on channels/goroutines in the same idiom the teacher itself
// uses for concurrency (lib/rungroup).
package scheduler

import (
	"context"
	"time"

	"github.com/gravitational/trace"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/constants"
	"github.com/Ayowel/cfc/lib/executor"
	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
)

// outcomeKind tags a Loop's internal fan-in messages.
type outcomeKind int

const (
	outcomeFire outcomeKind = iota
	outcomeReport
	outcomeError
	outcomePanic
)

// outcome is one message on the loop's fan-in channel.
type outcome struct {
	kind   outcomeKind
	report executor.ExecutionReport
	err    error
}

// Loop drives one JobSpec indefinitely: it wakes on the job's schedule,
// dispatches an execution, and folds the outcome back into its own
// control channel until canceled.
type Loop struct {
	spec jobspec.JobSpec
	exec executor.Executor
	rt   jobctx.Runtime
	log  log.Logger
}

// New builds a Loop for spec, resolving its executor via executor.For.
func New(spec jobspec.JobSpec, rt jobctx.Runtime, logger log.Logger) (*Loop, error) {
	exec, err := executor.For(spec)
	if err != nil {
		return nil, err
	}
	return &Loop{
		spec: spec,
		exec: exec,
		rt:   rt,
		log: logger.WithField(constants.FieldJobName, spec.JobName()).
			WithField(constants.FieldJobKind, string(spec.Kind())),
	}, nil
}

// Run blocks until ctx is canceled. It returns nil on cooperative
// cancellation and a non-nil FatalError only if the outcome multiplex
// itself becomes unreadable or a forked execution panics - a single
// failed execution is logged and absorbed, never returned.
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan outcome)
	inFlight := 0

	fireTimer := func(at time.Time) {
		d := time.Until(at)
		if d < 0 {
			d = 0
		}
		timer := time.NewTimer(d)
		go func() {
			defer timer.Stop()
			select {
			case <-timer.C:
				select {
				case events <- outcome{kind: outcomeFire}:
				case <-ctx.Done():
				}
			case <-ctx.Done():
			}
		}()
	}

	fireTimer(l.spec.Sched().Next(time.Now()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return cfcerr.NewFatalError("scheduler loop for job "+l.spec.JobName()+" lost its outcome channel", nil)
			}
			switch ev.kind {
			case outcomeFire:
				if l.spec.MayRunParallel() || inFlight == 0 {
					inFlight++
					l.dispatch(ctx, events)
				} else {
					l.log.Warnf("skipping fire: an execution for this job is still running")
				}
				fireTimer(l.spec.Sched().Next(time.Now()))
			case outcomeReport:
				inFlight--
				l.logReport(ev.report)
			case outcomeError:
				inFlight--
				if cfcerr.IsCancelError(ev.err) {
					l.log.Debug("execution canceled")
				} else {
					l.log.WithError(ev.err).Error("execution failed")
				}
			case outcomePanic:
				return cfcerr.NewFatalError("execution of job "+l.spec.JobName()+" panicked", ev.err)
			}
		}
	}
}

// dispatch forks one execution; it runs independently of the loop and
// reports its outcome back onto events.
func (l *Loop) dispatch(ctx context.Context, events chan<- outcome) {
	start := time.Now()
	go func() {
		// A panicking executor (e.g. a nil-deref on a malformed runtime
		// response) must not take down the whole daemon process; it
		// terminates only this job's loop, matching the host-level
		// join-error semantics of original_source's tokio::JoinSet.
		defer func() {
			if r := recover(); r != nil {
				err := trace.Errorf("panic: %v", r)
				select {
				case events <- outcome{kind: outcomePanic, err: err}:
				case <-ctx.Done():
				}
			}
		}()

		jctx := jobctx.Context{Context: ctx, Runtime: l.rt, Logger: l.log}
		report, err := l.exec.Execute(jctx)
		elapsed := time.Since(start)
		if err != nil {
			select {
			case events <- outcome{kind: outcomeError, err: err}:
			case <-ctx.Done():
			}
			return
		}
		l.log.WithField("duration", elapsed).Debug("execution completed")
		select {
		case events <- outcome{kind: outcomeReport, report: report}:
		case <-ctx.Done():
		}
	}()
}

func (l *Loop) logReport(r executor.ExecutionReport) {
	entry := l.log.WithField(constants.FieldExitCode, r.Retval)
	if r.Stdout != nil {
		entry = entry.WithField("stdout", *r.Stdout)
	}
	if r.Stderr != nil {
		entry = entry.WithField("stderr", *r.Stderr)
	}
	entry.Info("execution report")
}
