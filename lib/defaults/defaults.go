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

// Package defaults collects constants shared by more than one package so
// that none of them needs to import the other just to read a string or
// a duration.
package defaults

import "time"

const (
	// ShutdownTimeout bounds how long an interrupt handler gives its
	// registered stoppers to finish once its context is done.
	ShutdownTimeout = 10 * time.Second

	// DockerEngineURL is the default endpoint used when DOCKER_HOST is unset.
	DockerEngineURL = "unix:///var/run/docker.sock"

	// DockerEngineRequestTimeout bounds individual calls against the
	// container runtime's HTTP API.
	DockerEngineRequestTimeout = 30 * time.Second

	// DockerEnvMarkerFile is the file the container runtime stamps into
	// every container's filesystem; its presence is used to detect
	// whether this process is itself running inside a container.
	DockerEnvMarkerFile = "/.dockerenv"

	// ConfigPath is the default location of the cfc configuration file.
	ConfigPath = "/etc/cfc.conf"

	// OfeliaConfigPath is the configuration path used when running in
	// ofelia compatibility mode and no explicit --config was given.
	OfeliaConfigPath = "/etc/ofelia.conf"

	// DefaultLabelPrefix is the label prefix used when the operator did
	// not specify one and is not running in ofelia compatibility mode.
	DefaultLabelPrefix = "cfc"

	// OfeliaLabelPrefix is implicitly added to the prefix list when
	// --ofelia is set, in addition to any explicitly requested prefixes.
	OfeliaLabelPrefix = "ofelia"

	// LabelEnabledSuffix marks a container as a source of job labels.
	LabelEnabledSuffix = "enabled"

	// PrivateFileMask is the permission mask used for files this process
	// writes for its own consumption only.
	PrivateFileMask = 0600
)
