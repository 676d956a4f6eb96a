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

// Package cli registers cfc's command-line surface: a parent
// application with "daemon" and "validate" subcommands, built on
// gopkg.in/alecthomas/kingpin.v2 the way the teacher's own tool
// registers its commands - an Application struct embedding
// *kingpin.Application, with each flag's value assigned straight to a
// struct field off of the FlagClause builder.
package cli

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

// DaemonCommand holds the "daemon" subcommand's own flags.
type DaemonCommand struct {
	*kingpin.CmdClause
	Docker       *bool
	DockerFilter *string
	SocketPath   *string
	Prefixes     *[]string
	AllowUnsafe  *bool
}

// ValidateCommand holds the "validate" subcommand's own flags. It takes
// none beyond the globals, but gets its own type for symmetry with
// DaemonCommand and room to grow.
type ValidateCommand struct {
	*kingpin.CmdClause
}

// Application is cfc's root command-line application.
type Application struct {
	*kingpin.Application

	ConfigPath *string
	Ofelia     *bool
	Verbosity  *int

	DaemonCmd   DaemonCommand
	ValidateCmd ValidateCommand
}

// RegisterApplication builds and wires up the cfc command-line surface.
func RegisterApplication(app *kingpin.Application) *Application {
	a := &Application{Application: app}

	a.ConfigPath = a.Flag("config", "Path to the INI or YAML configuration file. Defaults to /etc/cfc.conf, or /etc/ofelia.conf under --ofelia.").
		Short('c').Default("").String()
	a.Ofelia = a.Flag("ofelia", "Run in ofelia compatibility mode: adds the \"ofelia\" label prefix and allows job-local labels.").Bool()
	a.Verbosity = a.Flag("verbose", "Increase log verbosity; may be repeated.").Short('v').Counter()

	a.DaemonCmd.CmdClause = a.Command("daemon", "Run the scheduler until signaled.")
	a.DaemonCmd.Docker = a.DaemonCmd.Flag("docker", "Discover jobs from container labels instead of a config file.").Short('d').Bool()
	a.DaemonCmd.DockerFilter = a.DaemonCmd.Flag("docker-filter", "Reserved for future custom filter composition.").Short('f').Default("").String()
	a.DaemonCmd.SocketPath = a.DaemonCmd.Flag("socket-path", "Container runtime control socket, overriding the default.").Default("").String()
	a.DaemonCmd.Prefixes = a.DaemonCmd.Flag("prefix", "Label prefix to scan for; may be repeated.").Strings()
	a.DaemonCmd.AllowUnsafe = a.DaemonCmd.Flag("allow-unsafe-jobs", "Allow job-local labels discovered on containers.").Bool()

	a.ValidateCmd.CmdClause = a.Command("validate", "Parse the configuration file and exit.")

	return a
}
