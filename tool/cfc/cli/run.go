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

package cli

import (
	"context"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"

	"github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/lib/supervisor"
)

// Run parses cmd (the kingpin command selected by the user) and
// dispatches to the daemon or validate implementation.
func Run(app *Application, cmd string, logger log.Logger) error {
	opts := app.ResolveOptions()

	switch cmd {
	case app.DaemonCmd.FullCommand():
		return supervisor.Run(context.Background(), opts, logger)
	case app.ValidateCmd.FullCommand():
		return supervisor.Validate(opts, logger)
	default:
		return trace.BadParameter("unrecognized command %q", cmd)
	}
}

// VerbosityToLevel maps a repeated -v count to a logrus level, matching
// ofelia's own convention of "more -v is more verbose, capped at trace".
func VerbosityToLevel(count int) logrus.Level {
	switch {
	case count <= 0:
		return logrus.InfoLevel
	case count == 1:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
