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

import "github.com/Ayowel/cfc/lib/schedule"

// NewTestLocalJob builds a LocalJob with an explicit MayRunParallel
// override. All four production variants currently set it true; this
// exists so the scheduler package's tests can exercise the serialized
// drop-policy path (spec.md §8 scenario 6) without the jobspec package
// exposing a public way to construct a non-parallel job in production.
func NewTestLocalJob(name string, sched schedule.Schedule, command string, mayParallel bool) LocalJob {
	return LocalJob{
		common: common{name: name, schedule: sched, command: command, mayParallel: mayParallel},
	}
}
