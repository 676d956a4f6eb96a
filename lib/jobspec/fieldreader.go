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

package jobspec

import (
	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/log"
)

// fieldReader wraps one job's Attributes and tracks which attribute
// names have been consumed, so the decoder can warn about leftovers -
// attributes the map carried that no known field claimed - without
// having to thread a used-set through every decodeXxx function by hand.
type fieldReader struct {
	key    string
	attrs  Attributes
	used   map[string]bool
	logger log.Logger
}

func newFieldReader(key string, attrs Attributes, logger log.Logger) *fieldReader {
	return &fieldReader{
		key:    key,
		attrs:  attrs,
		used:   make(map[string]bool, len(attrs)),
		logger: logger,
	}
}

// required reads a single-valued attribute that must be present and
// have exactly one value; "kind" additionally tolerates more than one
// value, using the last and logging a warning, to match spec behavior.
func (r *fieldReader) required(name string) (string, error) {
	values, ok := r.attrs[name]
	r.used[name] = true
	if !ok || len(values) == 0 {
		return "", cfcerr.ConfigError("job %q: missing required attribute %q", r.key, name)
	}
	if len(values) > 1 {
		if name == "kind" {
			r.logger.Warnf("job %q: attribute %q given %d times, using the last value", r.key, name, len(values))
			return values[len(values)-1], nil
		}
		return "", cfcerr.ConfigError("job %q: attribute %q must be single-valued, got %d values", r.key, name, len(values))
	}
	return values[0], nil
}

// optional reads a single-valued attribute that may be absent. It
// returns ok=false if the attribute is not present at all, and a
// ConfigError if it is present more than once - per spec.md §4.2,
// single-valued attributes with length != 1 are a load-time error, not
// a warning.
func (r *fieldReader) optional(name string) (string, bool, error) {
	values, ok := r.attrs[name]
	r.used[name] = true
	if !ok || len(values) == 0 {
		return "", false, nil
	}
	if len(values) > 1 {
		return "", false, cfcerr.ConfigError("job %q: attribute %q must be single-valued, got %d values", r.key, name, len(values))
	}
	return values[0], true, nil
}

// optionalBool reads a boolean attribute, defaulting to def if absent.
// Only the exact lowercase strings "true"/"false" are accepted.
func (r *fieldReader) optionalBool(name string, def bool) (bool, error) {
	value, ok, err := r.optional(name)
	if err != nil {
		return false, err
	}
	if !ok {
		return def, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, cfcerr.ConfigError("job %q: attribute %q must be \"true\" or \"false\", got %q", r.key, name, value)
	}
}

// multi reads a multi-valued attribute as-is, returning nil if absent.
func (r *fieldReader) multi(name string) []string {
	values := r.attrs[name]
	r.used[name] = true
	return values
}

// warnLeftovers logs a warning for every attribute present in the map
// that no decoder call claimed, matching spec.md §4.2's forward-
// compatibility behavior: leftover attributes are not an error.
func (r *fieldReader) warnLeftovers() {
	for name := range r.attrs {
		if !r.used[name] {
			r.logger.Warnf("job %q: ignoring unknown attribute %q", r.key, name)
		}
	}
}
