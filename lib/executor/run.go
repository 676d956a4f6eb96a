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

// runExecutor runs RunJob.Command in a freshly created one-shot
// container, unimplemented in the original source and designed here
// from spec.md §4.5's prose: create, start, stream logs, await exit,
// conditionally remove.
type runExecutor struct {
	job jobspec.RunJob
}

// Execute implements Executor.
func (r runExecutor) Execute(ctx jobctx.Context) (ExecutionReport, error) {
	rt, ok := ctx.Runtime.(dockerclient.Runtime)
	if !ok {
		return ExecutionReport{}, cfcerr.NewFatalError("run job requires a docker runtime handle", nil)
	}

	args, err := shellquote.Split(r.job.Command())
	if err != nil {
		return ExecutionReport{}, cfcerr.ConfigError("job %q: invalid command %q: %v", r.job.JobName(), r.job.Command(), err)
	}

	containerID, err := rt.CreateContainer(ctx, dockerclient.CreateContainerOptions{
		Image:     r.job.Image,
		CloneFrom: r.job.Container,
		Command:   args,
		Env:       r.job.Environment,
		User:      r.job.User,
		Hostname:  r.job.Hostname,
		TTY:       r.job.TTY,
		Networks:  r.job.Network,
		Binds:     r.job.Volume,
	})
	if err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "creating container for job %q", r.job.JobName())
	}
	if r.job.Delete {
		defer rt.RemoveContainer(ctx, containerID) //nolint:errcheck
	}

	if err := rt.StartContainer(ctx, containerID); err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "starting container for job %q", r.job.JobName())
	}

	var stdout, stderr bytes.Buffer
	logsDone := make(chan error, 1)
	go func() {
		logsDone <- rt.StreamLogs(ctx, containerID, &stdout, &stderr)
	}()

	exitCode, waitErr := rt.WaitContainer(ctx, containerID)
	<-logsDone // the log stream closes once the container exits

	if waitErr != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(waitErr, "waiting for container of job %q", r.job.JobName())
	}

	return ExecutionReport{
		Retval: exitCode,
		Stdout: nonEmptyOrNil(stdout.String()),
		Stderr: nonEmptyOrNil(stderr.String()),
	}, nil
}
