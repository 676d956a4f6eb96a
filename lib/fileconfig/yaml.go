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
	yaml "gopkg.in/yaml.v3"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
)

// ParseYAML parses content in the "job-name: {attr: value, ...}" grammar
// described in spec.md §4.4/§6, using a yaml.Node tree so depth and
// alias use can be enforced structurally before flattening into a
// NormalizedMap: depth 0 is the document mapping (job-name keys), depth
// 1 is each job's attribute mapping, and sequences are only valid at
// depth 1 (as an attribute's value). Anything deeper is a ConfigError;
// aliases are unsupported and are dropped with a warning.
func ParseYAML(content []byte, logger log.Logger) (jobspec.NormalizedMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, cfcerr.WrapConfigError(err, "parsing YAML content")
	}
	result := jobspec.NewNormalizedMap()
	if len(doc.Content) == 0 {
		return result, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		return nil, cfcerr.ConfigError("YAML: top-level sequence is not allowed")
	}
	if root.Kind == yaml.AliasNode {
		logger.Warnf("YAML: top-level alias is unsupported, ignoring document")
		return result, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, cfcerr.ConfigError("YAML: expected a top-level mapping of job name to attributes")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		jobName := keyNode.Value

		if valueNode.Kind == yaml.AliasNode {
			logger.Warnf("YAML: job %q: alias values are unsupported, ignoring", jobName)
			continue
		}
		if valueNode.Kind != yaml.MappingNode {
			return nil, cfcerr.ConfigError("YAML: job %q: expected a mapping of attribute name to value", jobName)
		}

		attrs := jobspec.Attributes{}
		if err := ingestJobAttrs(jobName, valueNode, attrs, logger); err != nil {
			return nil, err
		}
		seedKindName(attrs, "", jobName)
		result[jobName] = attrs
	}
	return result, nil
}

// ingestJobAttrs flattens one job's attribute mapping (depth 1) into
// attrs. Scalars become singleton lists, sequences become multi-element
// lists; anything nested deeper than that is a ConfigError.
func ingestJobAttrs(jobName string, mapping *yaml.Node, attrs jobspec.Attributes, logger log.Logger) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		attrName := keyNode.Value

		switch valueNode.Kind {
		case yaml.ScalarNode:
			attrs.Set(attrName, valueNode.Value)
		case yaml.SequenceNode:
			values := make([]string, 0, len(valueNode.Content))
			for _, item := range valueNode.Content {
				if item.Kind == yaml.AliasNode {
					logger.Warnf("YAML: job %q: attribute %q: alias entries are unsupported, ignoring", jobName, attrName)
					continue
				}
				if item.Kind != yaml.ScalarNode {
					return cfcerr.ConfigError("YAML: job %q: attribute %q: sequence entries must be scalars", jobName, attrName)
				}
				values = append(values, item.Value)
			}
			attrs.Set(attrName, values...)
		case yaml.AliasNode:
			logger.Warnf("YAML: job %q: attribute %q: alias values are unsupported, ignoring", jobName, attrName)
		default:
			return cfcerr.ConfigError("YAML: job %q: attribute %q: nesting deeper than two levels is not allowed", jobName, attrName)
		}
	}
	return nil
}
