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
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"

	"github.com/Ayowel/cfc/lib/cfcerr"
	"github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/lib/schedule"
)

// DecodeAll decodes every entry of a NormalizedMap, returning the
// JobSpecs in map-iteration order. A single decode failure aborts the
// whole batch - load-path errors are fatal per the error taxonomy.
func DecodeAll(attrs NormalizedMap, logger log.Logger) ([]JobSpec, error) {
	specs := make([]JobSpec, 0, len(attrs))
	for key, jobAttrs := range attrs {
		spec, err := Decode(key, jobAttrs, logger)
		if err != nil {
			return nil, trace.Wrap(err, "decoding job %q", key)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Decode validates and builds a typed JobSpec from one NormalizedMap
// entry. kind is read (and marked consumed) first; the remaining decode is
// dispatched to the matching per-kind decoder.
func Decode(key string, attrs Attributes, logger log.Logger) (JobSpec, error) {
	if logger == nil {
		logger = log.New(logrus.NewEntry(logrus.StandardLogger()))
	}

	r := newFieldReader(key, attrs, logger)
	kindStr, err := r.required("kind")
	if err != nil {
		return nil, trace.Wrap(err)
	}

	var spec JobSpec
	switch Kind(kindStr) {
	case KindExec:
		spec, err = decodeExec(r)
	case KindRun:
		spec, err = decodeRun(r)
	case KindLocal:
		spec, err = decodeLocal(r)
	case KindServiceRun:
		spec, err = decodeServiceRun(r)
	default:
		return nil, cfcerr.ConfigError("unsupported job type %q", kindStr)
	}
	if err != nil {
		return nil, trace.Wrap(err)
	}

	r.warnLeftovers()
	return spec, nil
}

func decodeExec(r *fieldReader) (JobSpec, error) {
	base, err := r.decodeCommon()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	container, err := r.required("container")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	user, _, err := r.optional("user")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	tty, err := r.optionalBool("tty", false)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	environment := r.multi("environment")

	return ExecJob{
		common:      base,
		Container:   container,
		User:        user,
		TTY:         tty,
		Environment: environment,
	}, nil
}

func decodeRun(r *fieldReader) (JobSpec, error) {
	base, err := r.decodeCommon()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	image, _, err := r.optional("image")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	container, _, err := r.optional("container")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if image == "" && container == "" {
		return nil, cfcerr.ConfigError("job-run requires either image or container")
	}
	user, _, err := r.optional("user")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	hostname, _, err := r.optional("hostname")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	deleteFlag, err := r.optionalBool("delete", true)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	tty, err := r.optionalBool("tty", false)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return RunJob{
		common:      base,
		Image:       image,
		Container:   container,
		User:        user,
		Network:     r.multi("network"),
		Hostname:    hostname,
		Delete:      deleteFlag,
		TTY:         tty,
		Volume:      r.multi("volume"),
		Environment: r.multi("environment"),
	}, nil
}

func decodeLocal(r *fieldReader) (JobSpec, error) {
	base, err := r.decodeCommon()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	dir, _, err := r.optional("dir")
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return LocalJob{
		common:      base,
		Dir:         dir,
		Environment: r.multi("environment"),
	}, nil
}

func decodeServiceRun(r *fieldReader) (JobSpec, error) {
	base, err := r.decodeCommon()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	image, _, err := r.optional("image")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	container, _, err := r.optional("container")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if image == "" && container == "" {
		return nil, cfcerr.ConfigError("job-service-run requires either image or container")
	}
	user, _, err := r.optional("user")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	deleteFlag, err := r.optionalBool("delete", true)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	tty, err := r.optionalBool("tty", false)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return ServiceRunJob{
		common:    base,
		Image:     image,
		Container: container,
		User:      user,
		Network:   r.multi("network"),
		Delete:    deleteFlag,
		TTY:       tty,
	}, nil
}

// decodeCommon reads the fields every variant shares: name (falling
// back to the job-key if absent), schedule and command.
func (r *fieldReader) decodeCommon() (common, error) {
	name, ok, err := r.optional("name")
	if err != nil {
		return common{}, trace.Wrap(err)
	}
	if !ok || name == "" {
		name = r.key
	}
	scheduleStr, err := r.required("schedule")
	if err != nil {
		return common{}, trace.Wrap(err)
	}
	sched, err := schedule.Parse(scheduleStr)
	if err != nil {
		return common{}, trace.Wrap(err)
	}
	command, err := r.required("command")
	if err != nil {
		return common{}, trace.Wrap(err)
	}
	return common{name: name, schedule: sched, command: command, mayParallel: true}, nil
}
