package dockerlabels

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayowel/cfc/lib/dockerclient"
	"github.com/Ayowel/cfc/lib/log"
)

// fakeRuntime implements dockerclient.Runtime for the label pipeline
// with just enough behavior to drive ListContainersByLabel from a
// fixed, in-memory container set.
type fakeRuntime struct {
	containers []dockerclient.Container
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) ListContainersByLabel(_ context.Context, label string) ([]dockerclient.Container, error) {
	var result []dockerclient.Container
	for _, c := range f.containers {
		for k, v := range c.Labels {
			if k+"="+v == label {
				result = append(result, c)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeRuntime) InspectContainer(context.Context, string) (*dockerclient.Container, error) {
	return nil, nil
}
func (f *fakeRuntime) CreateContainer(context.Context, dockerclient.CreateContainerOptions) (string, error) {
	return "", nil
}
func (f *fakeRuntime) StartContainer(context.Context, string) error { return nil }
func (f *fakeRuntime) StreamLogs(context.Context, string, io.Writer, io.Writer) error {
	return nil
}
func (f *fakeRuntime) WaitContainer(context.Context, string) (int, error) { return 0, nil }
func (f *fakeRuntime) RemoveContainer(context.Context, string) error     { return nil }
func (f *fakeRuntime) CreateExec(context.Context, string, dockerclient.ExecOptions) (string, error) {
	return "", nil
}
func (f *fakeRuntime) StartExecAttached(context.Context, string, io.Writer, io.Writer) error {
	return nil
}
func (f *fakeRuntime) InspectExec(context.Context, string) (*dockerclient.ExecInspectResult, error) {
	return nil, nil
}
func (f *fakeRuntime) CreateService(context.Context, dockerclient.CreateServiceOptions) (string, error) {
	return "", nil
}
func (f *fakeRuntime) ServiceTaskResult(context.Context, string) (*dockerclient.TaskResult, error) {
	return nil, nil
}
func (f *fakeRuntime) ServiceLogs(context.Context, string, io.Writer, io.Writer) error { return nil }
func (f *fakeRuntime) RemoveService(context.Context, string) error                     { return nil }

func testLogger() log.Logger {
	return log.New(logrus.NewEntry(logrus.StandardLogger()))
}

func TestLoadLabelToExecJob(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":               "true",
				"cfc.job-exec.hello.schedule": "@every 5s",
				"cfc.job-exec.hello.command":  "echo hi",
			},
		},
	}}

	result, err := Load(context.Background(), rt, []string{"cfc"}, false, testLogger())
	require.NoError(t, err)

	attrs, ok := result["c1_job-exec_hello"]
	require.True(t, ok)
	assert.Equal(t, []string{"job-exec"}, attrs["kind"])
	assert.Equal(t, []string{"hello"}, attrs["name"])
	assert.Equal(t, []string{"c1"}, attrs["container"])
	assert.Equal(t, []string{"@every 5s"}, attrs["schedule"])
	assert.Equal(t, []string{"echo hi"}, attrs["command"])
}

func TestLoadMultiPrefixConflict(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":               "true",
				"ofelia.enabled":            "true",
				"cfc.job-run.j.schedule":    "@hourly",
				"ofelia.job-exec.j.schedule": "@hourly",
			},
		},
	}}

	_, err := Load(context.Background(), rt, []string{"cfc", "ofelia"}, false, testLogger())
	assert.Error(t, err)
}

func TestLoadJSONArrayEnvironment(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":                  "true",
				"cfc.job-exec.j.environment":   `["A=1","B=2"]`,
			},
		},
	}}
	result, err := Load(context.Background(), rt, []string{"cfc"}, false, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"A=1", "B=2"}, result["c1_job-exec_j"]["environment"])
}

func TestLoadBareEnvironmentFallsBackToSingleton(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":                "true",
				"cfc.job-exec.j.environment": "A=1",
			},
		},
	}}
	result, err := Load(context.Background(), rt, []string{"cfc"}, false, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"A=1"}, result["c1_job-exec_j"]["environment"])
}

func TestLoadUnsafeLocalRejectedByDefault(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":               "true",
				"cfc.job-local.x.command":   "rm -rf /",
			},
		},
	}}
	result, err := Load(context.Background(), rt, []string{"cfc"}, false, testLogger())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestLoadUnsafeLocalAllowedWhenFlagSet(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID: "c1",
			Labels: map[string]string{
				"cfc.enabled":             "true",
				"cfc.job-local.x.command": "true",
			},
		},
	}}
	result, err := Load(context.Background(), rt, []string{"cfc"}, true, testLogger())
	require.NoError(t, err)
	assert.NotEmpty(t, result)
	_, hasContainer := result["c1_job-local_x"]["container"]
	assert.False(t, hasContainer, "job-local should never seed a container attribute")
}

func TestLoadIgnoresShortLabelKeys(t *testing.T) {
	rt := &fakeRuntime{containers: []dockerclient.Container{
		{
			ID:     "c1",
			Labels: map[string]string{"cfc.enabled": "true"},
		},
	}}
	result, err := Load(context.Background(), rt, []string{"cfc"}, false, testLogger())
	require.NoError(t, err)
	assert.Empty(t, result)
}
