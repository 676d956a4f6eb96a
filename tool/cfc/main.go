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

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	cfclog "github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/tool/cfc/cli"
)

func main() {
	kingpinApp := kingpin.New("cfc", "Label and config-driven container job scheduler.")
	app := cli.RegisterApplication(kingpinApp)

	cmd, err := kingpinApp.Parse(os.Args[1:])
	if err != nil {
		kingpinApp.Fatalf("%s", err)
	}

	log.SetLevel(cli.VerbosityToLevel(*app.Verbosity))
	logger := cfclog.New(log.NewEntry(log.StandardLogger()))

	if err := cli.Run(app, cmd, logger); err != nil {
		cli.PrintError(err)
		logger.WithError(err).Debug("cfc exiting with an error")
		os.Exit(1)
	}
}
