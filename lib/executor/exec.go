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

package executor

import (
	"bytes"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/dockerclient"
	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
)

// execExecutor runs ExecJob.Command inside an already-running container.
type execExecutor struct {
	job jobspec.ExecJob
}

// Execute implements Executor.
//
// (a) create an exec instance attached to stdout/stderr, (b) start it
// attached (detach is a logic error for this job kind), (c) drain the
// stream to completion before (d) inspecting it - inspecting too early
// can still observe running=true per spec.md §4.5/§9.
func (e execExecutor) Execute(ctx jobctx.Context) (ExecutionReport, error) {
	rt, ok := ctx.Runtime.(dockerclient.Runtime)
	if !ok {
		return ExecutionReport{}, cfcerr.NewFatalError("exec job requires a docker runtime handle", nil)
	}

	args, err := shellquote.Split(e.job.Command())
	if err != nil {
		return ExecutionReport{}, cfcerr.ConfigError("job %q: invalid command %q: %v", e.job.JobName(), e.job.Command(), err)
	}

	execID, err := rt.CreateExec(ctx, e.job.Container, dockerclient.ExecOptions{
		Command: args,
		Env:     e.job.Environment,
		User:    e.job.User,
		TTY:     e.job.TTY,
	})
	if err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "creating exec for job %q", e.job.JobName())
	}

	var stdout, stderr bytes.Buffer
	if err := rt.StartExecAttached(ctx, execID, &stdout, &stderr); err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "running exec for job %q", e.job.JobName())
	}

	inspect, err := rt.InspectExec(ctx, execID)
	if err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "inspecting exec for job %q", e.job.JobName())
	}
	if inspect.Running {
		return ExecutionReport{}, cfcerr.RuntimeError(nil, "exec for job %q reported running after stream close", e.job.JobName())
	}

	return ExecutionReport{
		Retval: inspect.ExitCode,
		Stdout: nonEmptyOrNil(stdout.String()),
		Stderr: nonEmptyOrNil(stderr.String()),
	}, nil
}
