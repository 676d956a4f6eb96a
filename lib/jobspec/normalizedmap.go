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

// Package jobspec implements the C2 job-spec decoder: it turns the flat,
// two-level NormalizedMap produced by the label and file pipelines into
// one of the four typed JobSpec variants.
package jobspec

// NormalizedMap is the shared intermediate representation produced by
// the label pipeline (dockerlabels) and the file pipeline (fileconfig):
// job-key -> attribute-name -> ordered list of string values.
//
// The two reserved attributes "kind" and "name" are always present once
// a job-key has been fully normalized. Loaders do not filter values: an
// attribute list may be empty or hold an empty string when the source
// gave one (a YAML job without "kind" is seeded with kind "").
type NormalizedMap map[string]Attributes

// Attributes is the per-job attribute table: attribute name -> ordered
// list of values. Single-valued attributes carry a one-element list;
// multi-valued attributes (environment, volume, network) may carry more.
type Attributes map[string][]string

// NewNormalizedMap returns an empty NormalizedMap ready for population
// by a loader.
func NewNormalizedMap() NormalizedMap {
	return make(NormalizedMap)
}

// Set replaces the attribute's value list outright.
func (a Attributes) Set(key string, values ...string) {
	a[key] = append([]string(nil), values...)
}

// Append adds a value to an attribute's list, creating it if necessary.
func (a Attributes) Append(key, value string) {
	a[key] = append(a[key], value)
}

// First returns the first value for key and whether it was present.
func (a Attributes) First(key string) (string, bool) {
	v, ok := a[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
