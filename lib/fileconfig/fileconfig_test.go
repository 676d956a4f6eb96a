package fileconfig

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

func TestParseINIMergesDuplicateKeys(t *testing.T) {
	content := `
[job-exec "j"]
schedule = @hourly
command = touch /tmp/cfc
environment = A=1
environment = B=2
`
	result, err := ParseINI(content, testLogger())
	require.NoError(t, err)

	attrs, ok := result[`job-exec "j"`]
	require.True(t, ok)
	assert.Equal(t, []string{"job-exec"}, attrs["kind"])
	assert.Equal(t, []string{"j"}, attrs["name"])
	assert.Equal(t, []string{"A=1", "B=2"}, attrs["environment"])
}

func TestParseINIAcceptsGlobalSection(t *testing.T) {
	content := `
[global]
slack-webhook = https://example.test

[job-local "x"]
schedule = @hourly
command = true
`
	result, err := ParseINI(content, testLogger())
	require.NoError(t, err)
	_, hasGlobal := result["global"]
	assert.False(t, hasGlobal)
	_, hasJob := result[`job-local "x"`]
	assert.True(t, hasJob)
}

func TestParseINIRejectsPropertiesOutsideAnySection(t *testing.T) {
	content := `
slack-webhook = https://example.test

[job-local "x"]
schedule = @hourly
command = true
`
	_, err := ParseINI(content, testLogger())
	assert.Error(t, err)
}

func TestParseINIRejectsMalformedHeader(t *testing.T) {
	content := `
[not-a-valid-header]
schedule = @hourly
`
	_, err := ParseINI(content, testLogger())
	assert.Error(t, err)
}

func TestParseYAMLScalarAndSequence(t *testing.T) {
	content := []byte(`
hello:
  kind: job-exec
  schedule: "@hourly"
  container: my-container
  command: touch /tmp/cfc
  environment:
    - A=1
    - B=2
`)
	result, err := ParseYAML(content, testLogger())
	require.NoError(t, err)

	attrs, ok := result["hello"]
	require.True(t, ok)
	assert.Equal(t, []string{"job-exec"}, attrs["kind"])
	assert.Equal(t, []string{"A=1", "B=2"}, attrs["environment"])
}

func TestParseYAMLRejectsTopLevelSequence(t *testing.T) {
	content := []byte("- one\n- two\n")
	_, err := ParseYAML(content, testLogger())
	assert.Error(t, err)
}

func TestParseYAMLRejectsDeepNesting(t *testing.T) {
	content := []byte(`
hello:
  kind: job-exec
  nested:
    too: deep
`)
	_, err := ParseYAML(content, testLogger())
	assert.Error(t, err)
}

func TestINIAndYAMLAgreeOnEquivalentContent(t *testing.T) {
	ini := `
[job-exec "hello"]
schedule = @hourly
container = my-container
command = touch /tmp/cfc
`
	yamlDoc := []byte(`
hello:
  kind: job-exec
  schedule: "@hourly"
  container: my-container
  command: touch /tmp/cfc
`)
	iniResult, err := ParseINI(ini, testLogger())
	require.NoError(t, err)
	yamlResult, err := ParseYAML(yamlDoc, testLogger())
	require.NoError(t, err)

	iniAttrs := iniResult[`job-exec "hello"`]
	yamlAttrs := yamlResult["hello"]

	for _, field := range []string{"kind", "schedule", "container", "command"} {
		assert.Equal(t, iniAttrs[field], yamlAttrs[field], "field %q should match across loaders", field)
	}
}
