package jobspec

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayowel/cfc/lib/log"
)

func testLogger() log.Logger {
	return log.New(logrus.NewEntry(logrus.StandardLogger()))
}

func TestDecodeExecJob(t *testing.T) {
	attrs := Attributes{
		"kind":      {"job-exec"},
		"name":      {"hello"},
		"container": {"c1"},
		"schedule":  {"@every 5s"},
		"command":   {"echo hi"},
	}

	spec, err := Decode("c1_job-exec_hello", attrs, testLogger())
	require.NoError(t, err)

	exec, ok := spec.(ExecJob)
	require.True(t, ok)
	assert.Equal(t, KindExec, exec.Kind())
	assert.Equal(t, "hello", exec.JobName())
	assert.Equal(t, "c1", exec.Container)
	assert.Equal(t, "echo hi", exec.Command())
	assert.True(t, exec.MayRunParallel())
}

func TestDecodeNameFallsBackToKey(t *testing.T) {
	attrs := Attributes{
		"kind":      {"job-exec"},
		"container": {"c1"},
		"schedule":  {"@hourly"},
		"command":   {"true"},
	}
	spec, err := Decode("c1_job-exec_hello", attrs, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "c1_job-exec_hello", spec.JobName())
}

func TestDecodeUnsupportedKind(t *testing.T) {
	attrs := Attributes{"kind": {"job-teleport"}}
	_, err := Decode("x", attrs, testLogger())
	assert.Error(t, err)
}

func TestDecodeRunRequiresImageOrContainer(t *testing.T) {
	attrs := Attributes{
		"kind":     {"job-run"},
		"schedule": {"@hourly"},
		"command":  {"true"},
	}
	_, err := Decode("r1", attrs, testLogger())
	assert.Error(t, err)
}

func TestDecodeRunAcceptsImageOnly(t *testing.T) {
	attrs := Attributes{
		"kind":     {"job-run"},
		"schedule": {"@hourly"},
		"command":  {"true"},
		"image":    {"alpine:latest"},
	}
	spec, err := Decode("r1", attrs, testLogger())
	require.NoError(t, err)
	run := spec.(RunJob)
	assert.Equal(t, "alpine:latest", run.Image)
	assert.True(t, run.Delete, "delete should default true")
	assert.False(t, run.TTY, "tty should default false")
}

func TestDecodeBooleanMustBeLowercase(t *testing.T) {
	attrs := Attributes{
		"kind":     {"job-exec"},
		"container": {"c1"},
		"schedule": {"@hourly"},
		"command":  {"true"},
		"tty":      {"True"},
	}
	_, err := Decode("x", attrs, testLogger())
	assert.Error(t, err)
}

func TestDecodeMultiValuedEnvironment(t *testing.T) {
	attrs := Attributes{
		"kind":        {"job-exec"},
		"container":   {"c1"},
		"schedule":    {"@hourly"},
		"command":     {"true"},
		"environment": {"A=1", "B=2"},
	}
	spec, err := Decode("x", attrs, testLogger())
	require.NoError(t, err)
	exec := spec.(ExecJob)
	assert.Equal(t, []string{"A=1", "B=2"}, exec.Environment)
}

func TestDecodeDuplicateOptionalAttributeIsConfigError(t *testing.T) {
	attrs := Attributes{
		"kind":      {"job-exec"},
		"container": {"c1"},
		"schedule":  {"@hourly"},
		"command":   {"true"},
		"user":      {"root", "nobody"},
	}
	_, err := Decode("x", attrs, testLogger())
	assert.Error(t, err)
}

func TestDecodeMissingRequiredAttribute(t *testing.T) {
	attrs := Attributes{
		"kind": {"job-local"},
	}
	_, err := Decode("x", attrs, testLogger())
	assert.Error(t, err)
}
