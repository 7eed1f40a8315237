package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Output.Backend = BackendSynth
	cfg.Output.SoundFont = "/usr/share/sounds/sf2/FluidR3_GM.sf2"
	cfg.Playback.LeadIn = 1.5
	cfg.AddRecent("song.mid")

	require.NoError(t, cfg.SaveTo(path))
	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"backend":"none"},"playback":{"leadIn":-4}}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, BackendNone, cfg.Output.Backend)
	assert.Equal(t, 3.0, cfg.Playback.LeadIn, "non-positive lead-in falls back")
	assert.Equal(t, 60, cfg.UI.FPS)
	assert.Equal(t, 4.0, cfg.UI.WindowLength)
}

func TestLoadFromBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestAddRecent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddRecent("a.mid")
	cfg.AddRecent("b.mid")
	cfg.AddRecent("a.mid")
	assert.Equal(t, []string{"a.mid", "b.mid"}, cfg.Recent)

	for i := 0; i < 20; i++ {
		cfg.AddRecent(fmt.Sprintf("%d.mid", i))
	}
	assert.Len(t, cfg.Recent, maxRecent)
	assert.Equal(t, "19.mid", cfg.Recent[0])
}
