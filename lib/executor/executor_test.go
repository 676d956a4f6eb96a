package executor

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayowel/cfc/lib/jobctx"
	"github.com/Ayowel/cfc/lib/jobspec"
	"github.com/Ayowel/cfc/lib/log"
	"github.com/Ayowel/cfc/lib/schedule"
)

func testJobCtx(rt jobctx.Runtime) jobctx.Context {
	return jobctx.Context{
		Context: context.Background(),
		Runtime: rt,
		Logger:  log.New(logrus.NewEntry(logrus.StandardLogger())),
	}
}

func mustSchedule(t *testing.T, expr string) schedule.Schedule {
	t.Helper()
	s, err := schedule.Parse(expr)
	require.NoError(t, err)
	return s
}

func TestForDispatchesByConcreteType(t *testing.T) {
	spec, err := jobspec.Decode("x", jobspec.Attributes{
		"kind":     {"job-local"},
		"schedule": {"@hourly"},
		"command":  {"true"},
	}, nil)
	require.NoError(t, err)

	exec, err := For(spec)
	require.NoError(t, err)
	_, ok := exec.(localExecutor)
	assert.True(t, ok)
}

func TestLocalExecutorCapturesOutput(t *testing.T) {
	spec, err := jobspec.Decode("x", jobspec.Attributes{
		"kind":     {"job-local"},
		"schedule": {"@hourly"},
		"command":  {"echo hello"},
	}, nil)
	require.NoError(t, err)

	exec, err := For(spec)
	require.NoError(t, err)

	report, err := exec.Execute(testJobCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Retval)
	require.NotNil(t, report.Stdout)
	assert.Equal(t, "hello\n", *report.Stdout)
	assert.Nil(t, report.Stderr)
}

func TestLocalExecutorNonZeroExit(t *testing.T) {
	spec, err := jobspec.Decode("x", jobspec.Attributes{
		"kind":     {"job-local"},
		"schedule": {"@hourly"},
		"command":  {"false"},
	}, nil)
	require.NoError(t, err)

	exec, err := For(spec)
	require.NoError(t, err)

	report, err := exec.Execute(testJobCtx(nil))
	require.NoError(t, err)
	assert.NotEqual(t, 0, report.Retval)
}

func TestBuildEnvPreservesDotRejoinQuirk(t *testing.T) {
	env := buildEnv([]string{"KEY=a=b=c", "PLAIN=1"})
	assert.Equal(t, []string{"KEY=a.b.c", "PLAIN=1"}, env)
}

func TestSanitizeOutputMarksInvalidUTF8(t *testing.T) {
	invalid := []byte{0xff, 0xfe, 0xfd}
	assert.Equal(t, failedToParseMarker, sanitizeOutput(invalid))
}
