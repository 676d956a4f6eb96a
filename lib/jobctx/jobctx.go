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

// Package jobctx bundles the pieces every executor needs regardless of
// job kind: a cancellable context, the shared runtime handle and a
// per-job logger. Executors that never touch the runtime (LocalJob)
// simply ignore the Runtime field.
package jobctx

import (
	"context"

	"github.com/Ayowel/cfc/lib/constants"
	"github.com/Ayowel/cfc/lib/log"
)

// Runtime is the subset of the container-runtime client every executor
// needs. It is declared here (rather than imported from dockerclient)
// so this package stays free of a dependency on the concrete client
// implementation; dockerclient.Runtime satisfies it structurally.
type Runtime interface {
	// Name identifies this runtime handle in log output.
	Name() string
}

// Context threads a cancellable context, the shared runtime handle and
// a job-scoped logger through a single executor call.
type Context struct {
	context.Context
	// Runtime is the shared container-runtime handle, safe for
	// concurrent use by every job's executor.
	Runtime Runtime
	// Logger is pre-scoped with this job's name and kind.
	Logger log.Logger
}

// WithJob returns a copy of c scoped to the named job, for per-execution
// log fields (start time, attempt count, ...).
func (c Context) WithJob(name, kind string) Context {
	c.Logger = c.Logger.WithField(constants.FieldJobName, name).WithField(constants.FieldJobKind, kind)
	return c
}
