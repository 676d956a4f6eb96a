package supervisor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayowel/cfc/lib/log"
)

func testLogger() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfc.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	path := writeTempConfig(t, `
[job-local "hello"]
schedule = @hourly
command = echo hi
`)
	err := Validate(Options{ConfigPath: path}, log.New(testLogger()))
	assert.NoError(t, err)
}

func TestValidateAcceptsEmptyConfig(t *testing.T) {
	path := writeTempConfig(t, "")
	err := Validate(Options{ConfigPath: path}, log.New(testLogger()))
	assert.NoError(t, err, "an empty file decodes to zero jobs, which Validate itself does not reject")
}

func TestValidateRejectsMalformedConfig(t *testing.T) {
	path := writeTempConfig(t, `
[job-local "hello"]
schedule = not a schedule
command = echo hi
`)
	err := Validate(Options{ConfigPath: path}, log.New(testLogger()))
	assert.Error(t, err)
}
