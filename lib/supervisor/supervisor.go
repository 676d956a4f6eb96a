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

// Package supervisor implements C7: process-wide lifecycle. It loads
// the job set (from labels or a config file), spawns one scheduler loop
// per job, and races "all loops alive" against a termination signal.
package supervisor

import (
	"context"
	"os"
	"time"

	"github.com/gravitational/trace"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/defaults"
	"github.com/Ayowel/cfc/lib/dockerclient"
	"github.com/Ayowel/cfc/lib/dockerlabels"
	"github.com/Ayowel/cfc/lib/fileconfig"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/lib/rungroup"
	"github.com/Ayowel/cfc/lib/scheduler"
	"github.com/Ayowel/cfc/lib/system/signals"
)

// Options configures one daemon run.
type Options struct {
	// ConfigPath is the INI/YAML file to load jobs from, when Docker is false.
	ConfigPath string
	// Docker selects label discovery instead of a config file.
	Docker bool
	// DockerFilter is reserved for future custom filter composition and
	// is intentionally not wired into the label pipeline; see spec.md §9 note 4.
	DockerFilter string
	// SocketPath overrides the default container-runtime endpoint.
	SocketPath string
	// Prefixes lists the label prefixes to scan for, in Docker mode.
	Prefixes []string
	// AllowUnsafeJobs permits job-local labels to be honored.
	AllowUnsafeJobs bool
}

// Run loads the job set per opts, spawns one scheduler loop per job,
// and blocks until either every loop has been canceled by a termination
// signal (returns nil) or a loop exits unexpectedly (returns a
// FatalError). Per spec.md §4.7 step 3, an empty job list is a fatal
// config error, not a no-op success.
func Run(ctx context.Context, opts Options, logger log.Logger) error {
	if isContainerEnvironment() {
		time.Sleep(1 * time.Second)
	}

	// Every job kind but LocalJob drives the runtime API, and per
	// spec.md §4.7 step 4 all scheduler loops share one cloned handle,
	// so the handle is obtained once here regardless of config source.
	rt, err := connectRuntime(opts.SocketPath)
	if err != nil {
		return trace.Wrap(err)
	}

	var jobs []jobspec.JobSpec

	if opts.Docker {
		normalized, err := dockerlabels.Load(ctx, rt, opts.Prefixes, opts.AllowUnsafeJobs, logger)
		if err != nil {
			return trace.Wrap(err)
		}
		jobs, err = jobspec.DecodeAll(normalized, logger)
		if err != nil {
			return trace.Wrap(err)
		}
	} else {
		normalized, err := fileconfig.Load(opts.ConfigPath, logger)
		if err != nil {
			return trace.Wrap(err)
		}
		jobs, err = jobspec.DecodeAll(normalized, logger)
		if err != nil {
			return trace.Wrap(err)
		}
	}

	if len(jobs) == 0 {
		return cfcerr.ConfigError("no valid job found")
	}

	return runLoops(ctx, jobs, rt, logger)
}

// Validate loads opts.ConfigPath and returns an error if it does not
// parse and decode cleanly; it never spawns any loop.
func Validate(opts Options, logger log.Logger) error {
	normalized, err := fileconfig.Load(opts.ConfigPath, logger)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = jobspec.DecodeAll(normalized, logger)
	return trace.Wrap(err)
}

func connectRuntime(socketPath string) (dockerclient.Runtime, error) {
	if socketPath != "" {
		return dockerclient.NewClientWithTimeout(socketPath, defaults.DockerEngineRequestTimeout)
	}
	return dockerclient.NewDefaultClient()
}

// runLoops spawns one scheduler.Loop per job under a rungroup.Group and
// races it against a termination signal, per spec.md §4.7 step 5.
func runLoops(ctx context.Context, jobs []jobspec.JobSpec, rt dockerclient.Runtime, logger log.Logger) error {
	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := signals.NewInterruptHandler(rootCtx)
	defer handler.Close()

	group, groupCtx := rungroup.WithContext(rootCtx)
	for _, job := range jobs {
		job := job
		loop, err := scheduler.New(job, rt, logger)
		if err != nil {
			return trace.Wrap(err)
		}
		group.Go(groupCtx, func() error {
			return loop.Run(groupCtx)
		})
	}

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case sig := <-handler.C:
		logger.WithField("signal", sig.String()).Info("received termination signal, shutting down")
		cancel()
		<-done
		return nil
	case err := <-done:
		if err != nil {
			return cfcerr.NewFatalError("a scheduler loop exited unexpectedly", err)
		}
		return cfcerr.NewFatalError("a scheduler loop exited unexpectedly", nil)
	}
}

// isContainerEnvironment reports whether this process is itself running
// inside a container, using the runtime's conventional marker file.
func isContainerEnvironment() bool {
	_, err := os.Stat(defaults.DockerEnvMarkerFile)
	return err == nil
}
