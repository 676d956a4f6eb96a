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

package jobspec

import (
	"github.com/Ayowel/cfc/lib/schedule"
)

// Kind identifies one of the four fixed job variants.
type Kind string

// The four job kinds recognized by the decoder. These are the only
// values "kind" may carry; anything else is a ConfigError.
const (
	KindExec        Kind = "job-exec"
	KindRun         Kind = "job-run"
	KindLocal       Kind = "job-local"
	KindServiceRun  Kind = "job-service-run"
)

// JobSpec is the closed sum of the four job variants. The set of
// implementations is fixed and exhaustive - there is deliberately no
// mechanism for a caller to add a fifth kind, so every switch over Kind()
// can be exhaustiveness-checked by a reviewer.
type JobSpec interface {
	// Kind reports which of the four fixed variants this spec is.
	Kind() Kind
	// JobName returns the job's display name; it may be empty.
	JobName() string
	// Sched returns the parsed schedule this job fires on.
	Sched() schedule.Schedule
	// MayRunParallel reports whether the scheduler may start a new
	// execution while a previous one for this job is still running.
	// All four current variants return true; the field is kept so a
	// future variant can opt out without a scheduler-loop type change.
	MayRunParallel() bool

	// isJobSpec restricts implementations of this interface to this
	// package's four variant types.
	isJobSpec()
}

// common holds the fields every variant shares.
type common struct {
	name        string
	schedule    schedule.Schedule
	command     string
	mayParallel bool
}

func (c common) JobName() string         { return c.name }
func (c common) Sched() schedule.Schedule { return c.schedule }
func (c common) MayRunParallel() bool    { return c.mayParallel }
func (common) isJobSpec()                {}

// ExecJob runs Command inside an already-running container.
type ExecJob struct {
	common
	// Container is the name or ID of the running container to exec into.
	Container string
	// User overrides the exec's effective user, if set.
	User string
	// TTY requests a pseudo-terminal for the exec.
	TTY bool
	// Environment holds "KEY=VALUE" strings passed to the exec.
	Environment []string
}

// Kind implements JobSpec.
func (ExecJob) Kind() Kind { return KindExec }

// Command returns the shell command string to tokenize and execute.
func (e ExecJob) Command() string { return e.command }

// RunJob runs Command in a freshly created one-shot container.
type RunJob struct {
	common
	// Image names the image to create the container from. May be empty
	// when Container is set; when both are set, Image is used.
	Image string
	// Container names an existing container whose image is used when
	// Image is empty. Only the image is taken from it; none of its other
	// configuration is copied to the new container.
	Container string
	// User overrides the container's effective user, if set.
	User string
	// Network lists networks the container should be attached to.
	Network []string
	// Hostname overrides the container's hostname, if set.
	Hostname string
	// Delete controls whether the container is removed after it exits.
	Delete bool
	// TTY allocates a pseudo-terminal for the container's main process.
	TTY bool
	// Volume lists bind/volume mounts for the container.
	Volume []string
	// Environment holds "KEY=VALUE" strings passed to the container.
	Environment []string
}

// Kind implements JobSpec.
func (RunJob) Kind() Kind { return KindRun }

// Command returns the shell command string to run as the container's
// command (its Cmd; the image's entrypoint is left as is).
func (r RunJob) Command() string { return r.command }

// LocalJob runs Command directly on the host.
type LocalJob struct {
	common
	// Dir sets the child process's working directory, if set.
	Dir string
	// Environment holds "KEY=VALUE" strings passed to the child process.
	// See the quirk note on the executor package's buildEnv for how
	// these are parsed.
	Environment []string
}

// Kind implements JobSpec.
func (LocalJob) Kind() Kind { return KindLocal }

// Command returns the shell command string to execute on the host.
func (l LocalJob) Command() string { return l.command }

// ServiceRunJob runs Command as a one-shot swarm service.
type ServiceRunJob struct {
	common
	// Image names the image to create the service from. May be empty
	// when Container is set; when both are set, Image is used.
	Image string
	// Container names an existing container whose image is used for the
	// service's task when Image is empty. Only the image is taken from
	// it; none of its other configuration is copied.
	Container string
	// User overrides the service task's effective user, if set.
	User string
	// Network lists networks the service's tasks should be attached to.
	Network []string
	// Delete controls whether the service is removed after it completes.
	Delete bool
	// TTY allocates a pseudo-terminal for the service's task.
	TTY bool
}

// Kind implements JobSpec.
func (ServiceRunJob) Kind() Kind { return KindServiceRun }

// Command returns the shell command string to run as the service task's
// entrypoint override.
func (s ServiceRunJob) Command() string { return s.command }
