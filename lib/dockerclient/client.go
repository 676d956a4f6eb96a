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

// Package dockerclient wraps fsouza/go-dockerclient behind the narrow
// Runtime interface the label pipeline, executors and supervisor need:
// list/inspect containers, create/start/remove containers, create/start/
// inspect exec instances, and the equivalent swarm-service operations.
package dockerclient

import (
	"time"

	dockerapi "github.com/fsouza/go-dockerclient"
	"github.com/gravitational/trace"

	"github.com/Ayowel/cfc/lib/defaults"
)

// NewClientFromEnv creates a runtime client honoring DOCKER_HOST,
// DOCKER_TLS_VERIFY and friends, and immediately verifies connectivity.
func NewClientFromEnv() (Runtime, error) {
	client, err := dockerapi.NewClientFromEnv()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if _, err := client.Version(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &runtime{client: client}, nil
}

// NewClient creates a runtime client bound to endpoint (a unix:// or
// tcp:// address) with no request timeout.
func NewClient(endpoint string) (Runtime, error) {
	return NewClientWithTimeout(endpoint, 0)
}

// NewClientWithTimeout creates a runtime client bound to endpoint with a
// bound on how long any single request may take.
func NewClientWithTimeout(endpoint string, timeout time.Duration) (Runtime, error) {
	client, err := dockerapi.NewClient(endpoint)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if timeout > 0 {
		client.HTTPClient.Timeout = timeout
	}
	return &runtime{client: client, endpoint: endpoint}, nil
}

// NewDefaultClient returns a runtime client for the default UDS socket
// path, bounded by defaults.DockerEngineRequestTimeout.
func NewDefaultClient() (Runtime, error) {
	return NewClientWithTimeout(defaults.DockerEngineURL, defaults.DockerEngineRequestTimeout)
}
