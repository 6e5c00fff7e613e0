package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "https://xkcd.com", s.BaseURL)
	assert.Equal(t, []int{404}, s.KnownGaps)
	assert.True(t, s.SaveImages)
	assert.True(t, s.SaveJSON)
	assert.True(t, s.Reconcile)
	assert.Equal(t, 500*time.Millisecond, s.DelayDuration())
	assert.Equal(t, "xkcdDL/2.0.0", s.UserAgent())
	assert.NoError(t, s.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"delay": 0, "known_gaps": [404, 1608], "save_json": false}`), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), s.DelayDuration())
	assert.Equal(t, []int{404, 1608}, s.KnownGaps)
	assert.False(t, s.SaveJSON)
	assert.True(t, s.SaveImages)
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.OutputDir = "/comics"
	s.ThumbnailMaxSize = 200
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Delay = -1
	s.KnownGaps = []int{0}
	s.BaseURL = ""

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delay")
	assert.Contains(t, err.Error(), "known_gaps")
	assert.Contains(t, err.Error(), "base_url")
}

func TestUserAgentOverride(t *testing.T) {
	s := DefaultSettings()
	s.UserAgentValue = "custom/1"
	assert.Equal(t, "custom/1", s.UserAgent())
}

func TestKnownGapSet(t *testing.T) {
	s := DefaultSettings()
	s.KnownGaps = []int{404, 404, 7}

	set := s.KnownGapSet()
	assert.Len(t, set, 2)
	assert.Contains(t, set, 404)
	assert.Contains(t, set, 7)
}
