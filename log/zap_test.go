package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerCreatesLogFile(t *testing.T) {
	tmp := t.TempDir()

	old := logDir
	logDir = filepath.Join(tmp, "logs")
	t.Cleanup(func() { logDir = old })

	InitLogger()
	require.NotNil(t, GetLogger())

	GetLogger().Info("log test entry")
	_ = GetLogger().Sync()

	data, err := os.ReadFile(ResolveLogFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "log test entry")
}
