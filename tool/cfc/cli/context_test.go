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
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/Ayowel/cfc/lib/defaults"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	kingpinApp := kingpin.New("cfc", "test")
	app := RegisterApplication(kingpinApp)
	_, err := kingpinApp.Parse(args)
	assert.NoError(t, err)
	return app
}

func TestResolveOptionsDefaultsToBarePrefix(t *testing.T) {
	app := newTestApp(t, "daemon")
	opts := app.ResolveOptions()
	assert.Equal(t, defaults.ConfigPath, opts.ConfigPath)
	assert.Equal(t, []string{defaults.DefaultLabelPrefix}, opts.Prefixes)
	assert.False(t, opts.AllowUnsafeJobs)
}

func TestResolveOptionsOfeliaAddsPrefixAndUnsafe(t *testing.T) {
	app := newTestApp(t, "--ofelia", "daemon")
	opts := app.ResolveOptions()
	assert.Equal(t, defaults.OfeliaConfigPath, opts.ConfigPath)
	assert.Equal(t, []string{"ofelia"}, opts.Prefixes)
	assert.True(t, opts.AllowUnsafeJobs)
}

func TestResolveOptionsExplicitConfigWinsOverOfelia(t *testing.T) {
	app := newTestApp(t, "--ofelia", "--config", "/tmp/custom.ini", "daemon")
	opts := app.ResolveOptions()
	assert.Equal(t, "/tmp/custom.ini", opts.ConfigPath)
}

func TestResolveOptionsExplicitPrefixAppendsAfterOfelia(t *testing.T) {
	app := newTestApp(t, "--ofelia", "daemon", "--prefix", "extra")
	opts := app.ResolveOptions()
	assert.Equal(t, []string{"ofelia", "extra"}, opts.Prefixes)
}

func TestResolveOptionsExplicitPrefixWithoutOfeliaReplacesDefault(t *testing.T) {
	app := newTestApp(t, "daemon", "--prefix", "custom")
	opts := app.ResolveOptions()
	assert.Equal(t, []string{"custom"}, opts.Prefixes)
}

func TestVerbosityToLevelCapsAtTrace(t *testing.T) {
	assert.Equal(t, "info", VerbosityToLevel(0).String())
	assert.Equal(t, "debug", VerbosityToLevel(1).String())
	assert.Equal(t, "trace", VerbosityToLevel(2).String())
	assert.Equal(t, "trace", VerbosityToLevel(5).String())
}
