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

// serviceRunExecutor runs ServiceRunJob.Command as a one-shot swarm
// service, unimplemented in the original source and designed here from
// spec.md §4.5's prose as the swarm analogue of runExecutor: create the
// service, poll its lone task for a terminal state, then collect the
// service logs, and conditionally remove it.
type serviceRunExecutor struct {
	job jobspec.ServiceRunJob
}

// Execute implements Executor.
func (s serviceRunExecutor) Execute(ctx jobctx.Context) (ExecutionReport, error) {
	rt, ok := ctx.Runtime.(dockerclient.Runtime)
	if !ok {
		return ExecutionReport{}, cfcerr.NewFatalError("service-run job requires a docker runtime handle", nil)
	}

	args, err := shellquote.Split(s.job.Command())
	if err != nil {
		return ExecutionReport{}, cfcerr.ConfigError("job %q: invalid command %q: %v", s.job.JobName(), s.job.Command(), err)
	}

	serviceID, err := rt.CreateService(ctx, dockerclient.CreateServiceOptions{
		Image:     s.job.Image,
		CloneFrom: s.job.Container,
		Command:   args,
		User:      s.job.User,
		TTY:       s.job.TTY,
		Networks:  s.job.Network,
	})
	if err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "creating service for job %q", s.job.JobName())
	}
	if s.job.Delete {
		defer rt.RemoveService(ctx, serviceID) //nolint:errcheck
	}

	result, err := rt.ServiceTaskResult(ctx, serviceID)
	if err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "awaiting task result for job %q", s.job.JobName())
	}
	if result.Running {
		return ExecutionReport{}, cfcerr.RuntimeError(nil, "service task for job %q reported running after poll returned", s.job.JobName())
	}

	var stdout, stderr bytes.Buffer
	if err := rt.ServiceLogs(ctx, serviceID, &stdout, &stderr); err != nil {
		return ExecutionReport{}, cfcerr.RuntimeError(err, "streaming logs for job %q", s.job.JobName())
	}

	return ExecutionReport{
		Retval: result.ExitCode,
		Stdout: nonEmptyOrNil(stdout.String()),
		Stderr: nonEmptyOrNil(stderr.String()),
	}, nil
}
