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
	"github.com/Ayowel/cfc/lib/defaults"
	"github.com/Ayowel/cfc/lib/supervisor"
)

// ofeliaPrefix is the label prefix --ofelia adds, matching the tool it
// is a drop-in replacement for.
const ofeliaPrefix = "ofelia"

// ResolveOptions translates the parsed flags into supervisor.Options,
// reproducing the original CLI's --ofelia precedence rules:
//   - an explicit --config always wins; otherwise the config path
//     defaults to the ofelia config file when --ofelia is set, or
//     cfc's own default otherwise.
//   - --ofelia adds the "ofelia" label prefix (if not already present)
//     and forces unsafe job labels on.
//   - explicit --prefix values are kept as given, appended after
//     whatever --ofelia implied.
//   - the "cfc" prefix is added only when, after all of the above, no
//     prefix has been selected at all.
func (app *Application) ResolveOptions() supervisor.Options {
	opts := supervisor.Options{
		ConfigPath:      *app.ConfigPath,
		Docker:          *app.DaemonCmd.Docker,
		DockerFilter:    *app.DaemonCmd.DockerFilter,
		SocketPath:      *app.DaemonCmd.SocketPath,
		AllowUnsafeJobs: *app.DaemonCmd.AllowUnsafe,
	}

	if opts.ConfigPath == "" {
		if *app.Ofelia {
			opts.ConfigPath = defaults.OfeliaConfigPath
		} else {
			opts.ConfigPath = defaults.ConfigPath
		}
	}

	prefixes := append([]string(nil), *app.DaemonCmd.Prefixes...)
	if *app.Ofelia {
		opts.AllowUnsafeJobs = true
		if !containsString(prefixes, ofeliaPrefix) {
			prefixes = append([]string{ofeliaPrefix}, prefixes...)
		}
	}
	if len(prefixes) == 0 {
		prefixes = []string{defaults.DefaultLabelPrefix}
	}
	opts.Prefixes = prefixes

	return opts
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
