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

package fileconfig

import (
	"strings"

	ini "gopkg.in/ini.v1"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
)

// ParseINI parses content in the "[kind \"name\"]" section grammar
// described in spec.md §4.4/§6. The bare [global] section is accepted,
// collected and discarded. Properties that appear before any section
// header land in go-ini's implicit DEFAULT section; per spec.md §4.4
// these are outside any section and are a ConfigError, not silently
// dropped. Any other section whose name does not split into a bare
// kind/name pair is also a ConfigError.
func ParseINI(content string, logger log.Logger) (jobspec.NormalizedMap, error) {
	file, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, AllowShadows: true}, []byte(content))
	if err != nil {
		return nil, cfcerr.WrapConfigError(err, "parsing INI content")
	}

	result := jobspec.NewNormalizedMap()
	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			if len(section.Keys()) > 0 {
				return nil, cfcerr.ConfigError("INI: properties outside any section are not allowed")
			}
			continue
		}
		if name == "global" {
			continue
		}

		kind, jobName, err := splitSectionHeader(name)
		if err != nil {
			return nil, err
		}

		jobKey := name
		attrs, exists := result[jobKey]
		if exists {
			logger.Warnf("INI: duplicate section %q, merging", name)
		} else {
			attrs = jobspec.Attributes{}
			result[jobKey] = attrs
		}
		seedKindName(attrs, kind, jobName)

		for _, key := range section.Keys() {
			value := key.Value()
			if value == "" && !strings.Contains(key.String(), "=") {
				logger.Warnf("INI: section %q: skipping property %q with no value", name, key.Name())
				continue
			}
			// A key repeated within a section carries each later value
			// as a shadow; every occurrence is appended in order.
			for _, v := range key.ValueWithShadows() {
				attrs.Append(key.Name(), v)
			}
		}
	}
	return result, nil
}

// splitSectionHeader turns `job-exec "hello"` into ("job-exec", "hello").
// A header with no quoted name segment is a ConfigError.
func splitSectionHeader(header string) (kind, name string, err error) {
	spaceIdx := strings.IndexByte(header, ' ')
	if spaceIdx < 0 {
		return "", "", cfcerr.ConfigError("INI: malformed section header %q, expected `kind \"name\"`", header)
	}
	kind = header[:spaceIdx]
	rest := strings.TrimSpace(header[spaceIdx+1:])
	rest = strings.Trim(rest, `"`)
	if kind == "" || rest == "" {
		return "", "", cfcerr.ConfigError("INI: malformed section header %q, expected `kind \"name\"`", header)
	}
	return kind, rest, nil
}
