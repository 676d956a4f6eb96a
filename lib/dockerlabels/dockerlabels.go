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

// Package dockerlabels implements the C3 label discovery pipeline: it
// scans the container runtime for containers enabled under a set of
// configurable prefixes and flattens their four-segment dotted labels
// into a jobspec.NormalizedMap.
package dockerlabels

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gravitational/trace"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/constants"
	"github.com/Ayowel/cfc/lib/dockerclient"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
)

// multiValuedAttributes attempt JSON-array parsing before falling back
// to a singleton list of the raw string.
var multiValuedAttributes = map[string]bool{
	"volume":      true,
	"network":     true,
	"environment": true,
}

// Load scans every container enabled under any of prefixes and returns
// the resulting NormalizedMap. unsafeAllowed gates job-local labels:
// when false, any job-local label is skipped with an error-level log
// rather than rejected outright, since it may be sourced from an
// untrusted container.
func Load(ctx context.Context, rt dockerclient.Runtime, prefixes []string, unsafeAllowed bool, logger log.Logger) (jobspec.NormalizedMap, error) {
	result := jobspec.NewNormalizedMap()
	seen := make(map[string]bool)
	logger = logger.WithField(constants.FieldSource, "labels")

	for _, prefix := range prefixes {
		containers, err := rt.ListContainersByLabel(ctx, prefix+"."+enabledSuffix+"=true")
		if err != nil {
			return nil, cfcerr.RuntimeError(err, "listing containers for prefix %q", prefix)
		}
		for _, container := range containers {
			if seen[container.ID] {
				continue
			}
			seen[container.ID] = true
			if err := ingestContainer(container.ID, container.Labels, prefixes, unsafeAllowed, result, logger); err != nil {
				return nil, trace.Wrap(err)
			}
		}
	}
	return result, nil
}

const enabledSuffix = "enabled"

// ingestContainer flattens one container's labels into result, sharing
// the prefix list across containers so multiple containers enabled
// under different prefixes still resolve consistently.
func ingestContainer(containerID string, labels map[string]string, prefixes []string, unsafeAllowed bool, result jobspec.NormalizedMap, logger log.Logger) error {
	logger = logger.WithField(constants.FieldContainer, containerID)
	prefixSet := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		prefixSet[p] = true
	}
	// jobKinds records the kind first seen for each job name on this
	// container, so the same name under two kinds is a conflict even
	// though the two land under different job-keys.
	jobKinds := make(map[string]string)

	for key, value := range labels {
		segments := strings.SplitN(key, ".", 4)
		if len(segments) != 4 {
			continue
		}
		prefix, kind, jobName, parameter := segments[0], segments[1], segments[2], segments[3]
		if !prefixSet[prefix] {
			continue
		}

		if !unsafeAllowed && kind == string(jobspec.KindLocal) {
			logger.Errorf("skipping unsafe job-local label %q (--allow-unsafe-jobs not set)", key)
			continue
		}

		if existingKind, seen := jobKinds[jobName]; seen && existingKind != kind {
			return cfcerr.ConfigError("container %s: conflicting cron types for job %q (%s vs %s)", containerID, jobName, existingKind, kind)
		}
		jobKinds[jobName] = kind

		jobKey := fmt.Sprintf("%s_%s_%s", containerID, kind, jobName)
		attrs, exists := result[jobKey]
		if !exists {
			attrs = jobspec.Attributes{}
			attrs.Set("kind", kind)
			attrs.Set("name", jobName)
			if kind != string(jobspec.KindLocal) {
				attrs.Set("container", containerID)
			}
			result[jobKey] = attrs
		}

		if err := setAttribute(attrs, containerID, jobName, parameter, value, logger); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// setAttribute records one label's value under parameter, applying the
// duplicate/conflict and container-attribute-drop rules from spec.md
// §4.3, and the JSON-array-with-singleton-fallback parsing for
// volume/network/environment.
func setAttribute(attrs jobspec.Attributes, containerID, jobName, parameter, value string, logger log.Logger) error {
	values := decodeValue(parameter, value)

	existing, has := attrs[parameter]
	if !has {
		attrs.Set(parameter, values...)
		return nil
	}

	if sameValues(existing, values) {
		return nil
	}

	if parameter == "container" && len(existing) == 1 && len(values) == 1 && existing[0] == values[0] {
		delete(attrs, parameter)
		return nil
	}

	logger.Warnf("job %q: attribute %q set again with a different value", jobName, parameter)
	return cfcerr.ConfigError("container %s: job %q: conflicting values for attribute %q", containerID, jobName, parameter)
}

// decodeValue applies the JSON-array-with-singleton-fallback rule for
// volume/network/environment, and a plain singleton for everything else.
func decodeValue(parameter, raw string) []string {
	if !multiValuedAttributes[parameter] {
		return []string{raw}
	}
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return []string{raw}
	}
	return parsed
}

func sameValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
