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

// Package executor implements C5: one backend per JobSpec variant,
// all producing the same ExecutionReport shape or a taxonomy error.
package executor

import (
	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
)

// ExecutionReport is the outcome of one job run. Stdout/Stderr are nil
// when their aggregate capture was empty, distinguishing "no output"
// from "empty output".
type ExecutionReport struct {
	Retval int
	Stdout *string
	Stderr *string
}

// Executor runs one job to completion and produces its report.
type Executor interface {
	Execute(ctx jobctx.Context) (ExecutionReport, error)
}

// For returns the Executor backend for spec's concrete variant. The
// switch is exhaustive over jobspec's closed sum; an unrecognized
// concrete type is a FatalError, since it can only mean a new variant
// was added to jobspec without a matching case here.
func For(spec jobspec.JobSpec) (Executor, error) {
	switch j := spec.(type) {
	case jobspec.ExecJob:
		return execExecutor{job: j}, nil
	case jobspec.RunJob:
		return runExecutor{job: j}, nil
	case jobspec.LocalJob:
		return localExecutor{job: j}, nil
	case jobspec.ServiceRunJob:
		return serviceRunExecutor{job: j}, nil
	default:
		return nil, cfcerr.NewFatalError("unrecognized job spec variant", nil)
	}
}

// nonEmptyOrNil returns nil for an empty string, and a pointer to s
// otherwise - the ExecutionReport.Stdout/Stderr "absent vs empty"
// distinction.
func nonEmptyOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
