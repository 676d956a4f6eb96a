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

// Package cfcerr defines the error taxonomy used across cfc: config errors
// (bad schedules, malformed job specs), runtime errors (the container
// runtime is unreachable or misbehaves), exec errors (a job ran but
// returned a non-zero outcome), cancellation and fatal errors. Every
// constructor wraps github.com/gravitational/trace so callers further up
// the stack can still use trace.Unwrap/trace.UserMessage/errors.Is on the
// result.
package cfcerr

import (
	"github.com/gravitational/trace"
)

// ConfigError reports a problem with a schedule, job spec or config file
// that prevents cfc from ever executing the affected job.
func ConfigError(format string, args ...interface{}) error {
	return trace.BadParameter(format, args...)
}

// WrapConfigError attaches a config-error message to an existing error.
func WrapConfigError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return trace.Wrap(err, format, args...)
}

// RuntimeError reports a failure talking to the container runtime (socket
// unreachable, malformed API response, unexpected HTTP status). If err is
// nil, format/args alone describe the failure (e.g. an inspect call that
// came back in an unexpected state rather than erroring).
func RuntimeError(err error, format string, args ...interface{}) error {
	if err == nil {
		return trace.Errorf(format, args...)
	}
	return trace.Wrap(err, format, args...)
}

// ExecError reports that a job executed but its outcome was an error -
// a non-zero exit code or a runtime reporting the underlying process as
// failed. Unlike RuntimeError this does not necessarily mean the runtime
// itself is unhealthy.
type ExecError struct {
	// Job is the name of the job that failed.
	Job string
	// ExitCode is the process or exec exit status, when known.
	ExitCode int
	// Cause is the underlying error, if execution could not complete at all.
	Cause error
}

// Error implements error.
func (e *ExecError) Error() string {
	if e.Cause != nil {
		return trace.Errorf("job %q failed: %v", e.Job, e.Cause).Error()
	}
	return trace.Errorf("job %q exited with code %d", e.Job, e.ExitCode).Error()
}

// Unwrap allows errors.Is/errors.As to see through to Cause.
func (e *ExecError) Unwrap() error {
	return e.Cause
}

// NewExecError builds an ExecError for a job that ran and returned a
// non-zero exit code.
func NewExecError(job string, exitCode int) error {
	return trace.Wrap(&ExecError{Job: job, ExitCode: exitCode})
}

// NewExecFailure builds an ExecError for a job whose execution itself
// could not complete (the runtime call failed before any exit code was
// observed).
func NewExecFailure(job string, cause error) error {
	return trace.Wrap(&ExecError{Job: job, Cause: cause})
}

// CancelError reports that a job or scheduler loop stopped because its
// context was canceled, not because of a failure.
type CancelError struct {
	// Job is the name of the job whose context was canceled, if any.
	Job string
}

// Error implements error.
func (e *CancelError) Error() string {
	if e.Job == "" {
		return "canceled"
	}
	return "job " + e.Job + " canceled"
}

// NewCancelError wraps a CancelError for the named job.
func NewCancelError(job string) error {
	return trace.Wrap(&CancelError{Job: job})
}

// IsCancelError reports whether err is (or wraps) a CancelError.
func IsCancelError(err error) bool {
	_, ok := trace.Unwrap(err).(*CancelError)
	return ok
}

// FatalError reports a condition the supervisor cannot recover from and
// that should terminate the process (e.g. every scheduler loop exited
// unexpectedly, or the runtime handle could not be obtained at startup).
type FatalError struct {
	// Reason is a short human-readable description of the fatal condition.
	Reason string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements error.
func (e *FatalError) Error() string {
	if e.Cause != nil {
		return e.Reason + ": " + e.Cause.Error()
	}
	return e.Reason
}

// Unwrap allows errors.Is/errors.As to see through to Cause.
func (e *FatalError) Unwrap() error {
	return e.Cause
}

// NewFatalError wraps a FatalError with the given reason and cause.
func NewFatalError(reason string, cause error) error {
	return trace.Wrap(&FatalError{Reason: reason, Cause: cause})
}
