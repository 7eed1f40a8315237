package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	require.NoError(t, Enable(path))
	t.Cleanup(Disable)

	assert.True(t, Enabled())
	Log("player", "seek to %.1f", 2.5)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "=== Debug logging started ===")
	assert.Contains(t, out, "player")
	assert.Contains(t, out, "seek to 2.5")
}

func TestLogIsSilentWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, Enable(path))
	Disable()
	assert.False(t, Enabled())

	Log("player", "dropped")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
}

func TestLogEvery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, Enable(path))
	t.Cleanup(Disable)

	for i := 0; i < 10; i++ {
		LogEvery(5, "out", "send failed")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "send failed"))
	assert.Contains(t, string(data), "count=10")
}
