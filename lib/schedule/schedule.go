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

// Package schedule parses cron expressions and named presets (@hourly,
// @every 5m, ...) into a Schedule that can compute its next occurrence
// relative to a given time.
package schedule

import (
	"regexp"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/robfig/cron/v3"

	"github.com/Ayowel/cfc/lib/cfcerr"
)

// parser accepts both the 5-field POSIX form and the 6-field form with a
// leading seconds specifier, plus the named descriptors (@hourly, @daily, ...).
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// everyPattern recognizes the "@every <duration>" shorthand, e.g.
// "@every 10s" or "@every 1h30m".
var everyPattern = regexp.MustCompile(`(?i)^@every\s+(\S+)$`)

// everyUnitPattern recognizes the single-unit "@every N<s|m|h>" form that
// expandEvery rewrites into a 6-field cron expression.
var everyUnitPattern = regexp.MustCompile(`^@every\s+(\d+)(s|m|h)$`)

// Schedule is a parsed cron expression able to report its next
// occurrence after any given instant.
type Schedule struct {
	raw   string
	inner cron.Schedule
}

// String returns the original schedule expression this Schedule was
// parsed from.
func (s Schedule) String() string {
	return s.raw
}

// Next returns the first occurrence strictly after t. The underlying
// library guarantees Next(t) > t for any valid schedule.
func (s Schedule) Next(t time.Time) time.Time {
	return s.inner.Next(t)
}

// Parse parses a cron expression. It accepts:
//   - 5-field POSIX cron ("*/10 * * * *")
//   - 6-field cron with a leading seconds field ("*/10 * * * * *")
//   - named descriptors ("@hourly", "@daily", "@weekly", "@monthly", "@yearly", "@annually")
//   - the "@every <duration>" shorthand, expanded to an equivalent 6-field
//     expression before being handed to the underlying parser
func Parse(expr string) (Schedule, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Schedule{}, cfcerr.ConfigError("empty schedule expression")
	}

	normalized, err := expandEvery(trimmed)
	if err != nil {
		return Schedule{}, trace.Wrap(err)
	}

	inner, err := parser.Parse(normalized)
	if err != nil {
		return Schedule{}, cfcerr.WrapConfigError(err, "invalid schedule %q", expr)
	}
	return Schedule{raw: trimmed, inner: inner}, nil
}

// expandEvery validates the "@every <duration>" shorthand up front so a
// malformed duration is reported as a ConfigError rather than whatever
// message the underlying parser happens to produce. "@every N" with a
// single s, m or h unit is then rewritten to "*/N * * * * *",
// "0 */N * * * *" or "0 0 */N * * *" respectively; any other valid
// duration (e.g. "1h30m") passes through unchanged to robfig/cron/v3's
// native "@every" support.
func expandEvery(expr string) (string, error) {
	m := everyPattern.FindStringSubmatch(expr)
	if m == nil {
		return expr, nil
	}
	d, err := time.ParseDuration(m[1])
	if err != nil {
		return "", cfcerr.WrapConfigError(err, "invalid @every duration %q", m[1])
	}
	if d <= 0 {
		return "", cfcerr.ConfigError("@every duration must be positive, got %q", m[1])
	}
	if u := everyUnitPattern.FindStringSubmatch(expr); u != nil {
		switch u[2] {
		case "s":
			return "*/" + u[1] + " * * * * *", nil
		case "m":
			return "0 */" + u[1] + " * * * *", nil
		case "h":
			return "0 0 */" + u[1] + " * * *", nil
		}
	}
	return expr, nil
}
