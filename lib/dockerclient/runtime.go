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

package dockerclient

import (
	"context"
	"io"
	"time"

	dockerapi "github.com/fsouza/go-dockerclient"
	"github.com/gravitational/trace"
)

// Container is the subset of container metadata the label pipeline and
// executors need.
type Container struct {
	// ID is the full container ID.
	ID string
	// Names are the container's configured names.
	Names []string
	// Labels holds every label set on the container.
	Labels map[string]string
}

// CreateContainerOptions describes a one-shot container to create for a
// RunJob.
type CreateContainerOptions struct {
	// Image names the image to create from. When set, CloneFrom is ignored.
	Image string
	// CloneFrom names an existing container whose image is used when
	// Image is empty. Only the image is copied; the source container's
	// other configuration is not.
	CloneFrom string
	Command     []string
	Env         []string
	User        string
	Hostname    string
	TTY         bool
	Networks    []string
	Binds       []string
}

// CreateServiceOptions describes a one-shot swarm service to create for
// a ServiceRunJob.
type CreateServiceOptions struct {
	Image     string
	CloneFrom string
	Command   []string
	User      string
	TTY       bool
	Networks  []string
}

// ExecOptions describes a command to exec into a running container.
type ExecOptions struct {
	Command []string
	Env     []string
	User    string
	TTY     bool
}

// ExecInspectResult reports an exec instance's completion state.
type ExecInspectResult struct {
	// Running is true if the exec has not finished yet.
	Running bool
	// ExitCode is valid only when Running is false.
	ExitCode int
}

// TaskResult reports a swarm service's single run-once task outcome.
type TaskResult struct {
	// Running is true if the task has not reached a terminal state yet.
	Running bool
	// Failed is true if the task reached a terminal failure state.
	Failed bool
	// ExitCode is valid only when Running is false.
	ExitCode int
}

// Runtime is the container-runtime surface every component in this
// module needs. It is satisfied by the fsouza/go-dockerclient-backed
// implementation returned by NewClient/NewClientFromEnv, and narrow
// enough that tests can provide a fake.
type Runtime interface {
	// Name identifies this runtime handle in log output.
	Name() string

	// ListContainersByLabel returns every container (running only)
	// carrying the given "key=value" label.
	ListContainersByLabel(ctx context.Context, label string) ([]Container, error)
	// InspectContainer returns full label/name metadata for one container.
	InspectContainer(ctx context.Context, id string) (*Container, error)

	// CreateContainer creates (but does not start) a one-shot container.
	CreateContainer(ctx context.Context, opts CreateContainerOptions) (string, error)
	// StartContainer starts a previously created container.
	StartContainer(ctx context.Context, id string) error
	// StreamLogs copies a container's combined log stream into stdout/stderr.
	StreamLogs(ctx context.Context, id string, stdout, stderr io.Writer) error
	// WaitContainer blocks until the container exits and returns its exit code.
	WaitContainer(ctx context.Context, id string) (int, error)
	// RemoveContainer force-removes a container.
	RemoveContainer(ctx context.Context, id string) error

	// CreateExec creates an exec instance attached to a running container.
	CreateExec(ctx context.Context, containerID string, opts ExecOptions) (string, error)
	// StartExecAttached starts the exec instance and blocks until its
	// stream closes, demuxing stdout/stderr into the given writers.
	StartExecAttached(ctx context.Context, execID string, stdout, stderr io.Writer) error
	// InspectExec reports an exec instance's completion state.
	InspectExec(ctx context.Context, execID string) (*ExecInspectResult, error)

	// CreateService creates a one-shot, replicated-by-one swarm service.
	CreateService(ctx context.Context, opts CreateServiceOptions) (string, error)
	// ServiceTaskResult polls the service's single task until it reaches
	// a terminal state or ctx is done.
	ServiceTaskResult(ctx context.Context, serviceID string) (*TaskResult, error)
	// ServiceLogs copies a service's combined log stream into stdout/stderr.
	ServiceLogs(ctx context.Context, serviceID string, stdout, stderr io.Writer) error
	// RemoveService removes a swarm service.
	RemoveService(ctx context.Context, serviceID string) error
}

// runtime implements Runtime over *dockerapi.Client.
type runtime struct {
	client   *dockerapi.Client
	endpoint string
}

// Name implements Runtime.
func (r *runtime) Name() string {
	if r.endpoint != "" {
		return r.endpoint
	}
	return "docker"
}

// ListContainersByLabel implements Runtime.
func (r *runtime) ListContainersByLabel(ctx context.Context, label string) ([]Container, error) {
	containers, err := r.client.ListContainers(dockerapi.ListContainersOptions{
		All:     false,
		Context: ctx,
		Filters: map[string][]string{"label": {label}},
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	result := make([]Container, 0, len(containers))
	for _, c := range containers {
		result = append(result, Container{
			ID:     c.ID,
			Names:  c.Names,
			Labels: c.Labels,
		})
	}
	return result, nil
}

// InspectContainer implements Runtime.
func (r *runtime) InspectContainer(ctx context.Context, id string) (*Container, error) {
	c, err := r.client.InspectContainerWithContext(id, ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &Container{
		ID:     c.ID,
		Names:  []string{c.Name},
		Labels: c.Config.Labels,
	}, nil
}

// CreateContainer implements Runtime.
func (r *runtime) CreateContainer(ctx context.Context, opts CreateContainerOptions) (string, error) {
	image := opts.Image
	var networkingConfig *dockerapi.NetworkingConfig
	if len(opts.Networks) > 0 {
		endpoints := make(map[string]*dockerapi.EndpointConfig, len(opts.Networks))
		for _, n := range opts.Networks {
			endpoints[n] = &dockerapi.EndpointConfig{}
		}
		networkingConfig = &dockerapi.NetworkingConfig{EndpointsConfig: endpoints}
	}
	if image == "" && opts.CloneFrom != "" {
		source, err := r.client.InspectContainerWithContext(opts.CloneFrom, ctx)
		if err != nil {
			return "", trace.Wrap(err, "cloning config from %q", opts.CloneFrom)
		}
		image = source.Config.Image
	}

	container, err := r.client.CreateContainer(dockerapi.CreateContainerOptions{
		Context: ctx,
		Config: &dockerapi.Config{
			Image:        image,
			Cmd:          opts.Command,
			Env:          opts.Env,
			User:         opts.User,
			Hostname:     opts.Hostname,
			Tty:          opts.TTY,
			AttachStdout: true,
			AttachStderr: true,
		},
		HostConfig:       &dockerapi.HostConfig{Binds: opts.Binds},
		NetworkingConfig: networkingConfig,
	})
	if err != nil {
		return "", trace.Wrap(err)
	}
	return container.ID, nil
}

// StartContainer implements Runtime.
func (r *runtime) StartContainer(ctx context.Context, id string) error {
	return trace.Wrap(r.client.StartContainerWithContext(id, nil, ctx))
}

// StreamLogs implements Runtime.
func (r *runtime) StreamLogs(ctx context.Context, id string, stdout, stderr io.Writer) error {
	return trace.Wrap(r.client.Logs(dockerapi.LogsOptions{
		Context:      ctx,
		Container:    id,
		OutputStream: stdout,
		ErrorStream:  stderr,
		Stdout:       true,
		Stderr:       true,
		Follow:       true,
	}))
}

// WaitContainer implements Runtime.
func (r *runtime) WaitContainer(ctx context.Context, id string) (int, error) {
	code, err := r.client.WaitContainerWithContext(id, ctx)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	return code, nil
}

// RemoveContainer implements Runtime.
func (r *runtime) RemoveContainer(ctx context.Context, id string) error {
	return trace.Wrap(r.client.RemoveContainer(dockerapi.RemoveContainerOptions{
		Context: ctx,
		ID:      id,
		Force:   true,
	}))
}

// CreateExec implements Runtime.
func (r *runtime) CreateExec(ctx context.Context, containerID string, opts ExecOptions) (string, error) {
	exec, err := r.client.CreateExec(dockerapi.CreateExecOptions{
		Context:      ctx,
		Container:    containerID,
		Cmd:          opts.Command,
		Env:          opts.Env,
		User:         opts.User,
		Tty:          opts.TTY,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", trace.Wrap(err)
	}
	return exec.ID, nil
}

// StartExecAttached implements Runtime.
func (r *runtime) StartExecAttached(ctx context.Context, execID string, stdout, stderr io.Writer) error {
	return trace.Wrap(r.client.StartExec(execID, dockerapi.StartExecOptions{
		Context:      ctx,
		Detach:       false,
		OutputStream: stdout,
		ErrorStream:  stderr,
	}))
}

// InspectExec implements Runtime.
func (r *runtime) InspectExec(ctx context.Context, execID string) (*ExecInspectResult, error) {
	inspect, err := r.client.InspectExec(execID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &ExecInspectResult{
		Running:  inspect.Running,
		ExitCode: inspect.ExitCode,
	}, nil
}

// CreateService implements Runtime.
func (r *runtime) CreateService(ctx context.Context, opts CreateServiceOptions) (string, error) {
	image := opts.Image
	if image == "" && opts.CloneFrom != "" {
		source, err := r.client.InspectContainerWithContext(opts.CloneFrom, ctx)
		if err != nil {
			return "", trace.Wrap(err, "cloning config from %q", opts.CloneFrom)
		}
		image = source.Config.Image
	}

	var networks []dockerapi.NetworkAttachmentConfig
	for _, n := range opts.Networks {
		networks = append(networks, dockerapi.NetworkAttachmentConfig{Target: n})
	}

	replicas := uint64(1)
	zeroRetries := uint64(0)
	service, err := r.client.CreateService(dockerapi.CreateServiceOptions{
		Context: ctx,
		ServiceSpec: dockerapi.ServiceSpec{
			TaskTemplate: dockerapi.TaskSpec{
				ContainerSpec: &dockerapi.ContainerSpec{
					Image:   image,
					Command: opts.Command,
					User:    opts.User,
					TTY:     opts.TTY,
				},
				RestartPolicy: &dockerapi.RestartPolicy{
					Condition:   dockerapi.RestartPolicyConditionNone,
					MaxAttempts: &zeroRetries,
				},
				Networks: networks,
			},
			Mode: dockerapi.ServiceMode{
				Replicated: &dockerapi.ReplicatedService{Replicas: &replicas},
			},
		},
	})
	if err != nil {
		return "", trace.Wrap(err)
	}
	return service.ID, nil
}

// ServiceTaskResult implements Runtime.
//
// Swarm run-once services do not expose a single exit code directly;
// the task backing the service's lone replica carries it, so this polls
// ListTasks filtered by service ID until the task reaches the complete,
// failed or rejected state, or ctx is canceled.
func (r *runtime) ServiceTaskResult(ctx context.Context, serviceID string) (*TaskResult, error) {
	const pollInterval = 500 * time.Millisecond
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		tasks, err := r.client.ListTasks(dockerapi.ListTasksOptions{
			Context: ctx,
			Filters: map[string][]string{"service": {serviceID}},
		})
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if len(tasks) > 0 {
			task := tasks[0]
			switch task.Status.State {
			case dockerapi.TaskStateComplete:
				return &TaskResult{ExitCode: task.Status.ContainerStatus.ExitCode}, nil
			case dockerapi.TaskStateFailed, dockerapi.TaskStateRejected:
				return &TaskResult{Failed: true, ExitCode: task.Status.ContainerStatus.ExitCode}, nil
			}
		}
		select {
		case <-ctx.Done():
			return nil, trace.Wrap(ctx.Err())
		case <-ticker.C:
		}
	}
}

// ServiceLogs implements Runtime.
func (r *runtime) ServiceLogs(ctx context.Context, serviceID string, stdout, stderr io.Writer) error {
	return trace.Wrap(r.client.GetServiceLogs(dockerapi.LogsServiceOptions{
		Context:      ctx,
		Service:      serviceID,
		OutputStream: stdout,
		ErrorStream:  stderr,
		Stdout:       true,
		Stderr:       true,
		Follow:       true,
	}))
}

// RemoveService implements Runtime.
func (r *runtime) RemoveService(ctx context.Context, serviceID string) error {
	return trace.Wrap(r.client.RemoveService(dockerapi.RemoveServiceOptions{
		Context: ctx,
		ID:      serviceID,
	}))
}
