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
	"os/exec"
	"strings"
	"unicode/utf8"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
)

// failedToParseMarker replaces captured output that is not valid UTF-8;
// a local job's byte output is informational, not structural, so a
// decode failure degrades gracefully instead of failing the run.
const failedToParseMarker = "FAILED_TO_PARSE_OUTPUT"

// localExecutor runs LocalJob.Command directly on the host.
type localExecutor struct {
	job jobspec.LocalJob
}

// Execute implements Executor.
func (l localExecutor) Execute(ctx jobctx.Context) (ExecutionReport, error) {
	args, err := shellquote.Split(l.job.Command())
	if err != nil || len(args) == 0 {
		return ExecutionReport{}, cfcerr.ConfigError("job %q: invalid command %q", l.job.JobName(), l.job.Command())
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if l.job.Dir != "" {
		cmd.Dir = l.job.Dir
	}
	cmd.Env = buildEnv(l.job.Environment)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	retval := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		retval = exitErr.ExitCode()
	} else if runErr != nil {
		return ExecutionReport{}, cfcerr.NewExecFailure(l.job.JobName(), runErr)
	}

	return ExecutionReport{
		Retval: retval,
		Stdout: nonEmptyOrNil(sanitizeOutput(stdout.Bytes())),
		Stderr: nonEmptyOrNil(sanitizeOutput(stderr.Bytes())),
	}, nil
}

// buildEnv turns the job's "KEY=VALUE" environment entries into process
// environment strings.
//
// Preserves a source quirk exactly as found: the entry is split on "="
// to find the key, but the remainder of the split (everything after the
// first "=") is then rejoined with "." instead of "=". This means
// "KEY=a=b" becomes "KEY=a.b" rather than "KEY=a=b". This is almost
// certainly a bug in the original implementation but is pinned here
// rather than silently fixed - see the design notes for the follow-up.
func buildEnv(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, "=")
		if len(parts) < 2 {
			out = append(out, entry)
			continue
		}
		key := parts[0]
		value := strings.Join(parts[1:], ".")
		out = append(out, key+"="+value)
	}
	return out
}

// sanitizeOutput substitutes failedToParseMarker for output that isn't
// valid UTF-8.
func sanitizeOutput(b []byte) string {
	if !utf8.Valid(b) {
		return failedToParseMarker
	}
	return string(b)
}
