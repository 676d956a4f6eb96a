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

// Package fileconfig implements the C4 file pipeline: INI and YAML
// readers that both produce a jobspec.NormalizedMap.
package fileconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/constants"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
)

// Load reads path and returns the NormalizedMap it describes. The
// reader is picked by extension (.ini vs .yaml/.yml); on an ambiguous
// or unknown extension, both readers are tried and the first success
// is returned.
func Load(path string, logger log.Logger) (jobspec.NormalizedMap, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, cfcerr.WrapConfigError(err, "reading config file %q", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return ParseINI(string(content), logger.WithField(constants.FieldSource, "ini"))
	case ".yaml", ".yml":
		return ParseYAML(content, logger.WithField(constants.FieldSource, "yaml"))
	default:
		if m, err := ParseINI(string(content), logger.WithField(constants.FieldSource, "ini")); err == nil {
			return m, nil
		}
		m, err := ParseYAML(content, logger.WithField(constants.FieldSource, "yaml"))
		if err != nil {
			return nil, cfcerr.ConfigError("could not parse %q as INI or YAML", path)
		}
		return m, nil
	}
}

// seedKindName ensures attrs carries kind/name, matching the invariant
// that every NormalizedMap entry has both set once normalized, mirroring
// what dockerlabels.Load seeds for label-sourced jobs.
func seedKindName(attrs jobspec.Attributes, kind, name string) {
	if _, ok := attrs["kind"]; !ok {
		attrs.Set("kind", kind)
	}
	if _, ok := attrs["name"]; !ok {
		attrs.Set("name", name)
	}
}
