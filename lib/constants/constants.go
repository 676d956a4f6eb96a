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

// Package constants collects string constants used for structured log
// fields and other cross-package identifiers.
package constants

const (
	// FieldJobName names the job a log entry pertains to.
	FieldJobName = "job"
	// FieldJobKind names the job kind (exec/run/local/service-run).
	FieldJobKind = "kind"
	// FieldSchedule carries the raw schedule string of a job.
	FieldSchedule = "schedule"
	// FieldContainer names the container a job targets or was spawned from.
	FieldContainer = "container"
	// FieldExitCode carries a job's exit/return code.
	FieldExitCode = "exit_code"
	// FieldSource names the configuration source a job was decoded from
	// (labels, an INI file or a YAML file).
	FieldSource = "source"
)
