package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewWingoConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
wingo:
  pre_close_cutoff: 10s
  sweep_interval: 3s
  tracks:
    - name: wingo_1m
      suffix: W1
      duration: 1m
    - name: wingo_3m
      suffix: W3
      duration: 3m
`)

	cfg, err := NewWingoConfigFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.PreCloseCutoff())
	assert.Equal(t, 3*time.Second, cfg.SweepInterval())

	tracks := cfg.Tracks()
	require.Len(t, tracks, 2)
	assert.Equal(t, "wingo_1m", tracks[0].Name)
	assert.Equal(t, "W1", tracks[0].Suffix)
	assert.Equal(t, time.Minute, tracks[0].Duration)
	assert.Equal(t, 3*time.Minute, tracks[1].Duration)
}

func TestNewWingoConfigFromYAMLRejectsBadDurations(t *testing.T) {
	// Длительность не кратна минуте
	path := writeConfig(t, `
wingo:
  pre_close_cutoff: 10s
  sweep_interval: 3s
  tracks:
    - name: wingo_90s
      suffix: W9
      duration: 90s
`)
	_, err := NewWingoConfigFromYAML(path)
	assert.Error(t, err)

	// Длительность не больше отсечки
	path = writeConfig(t, `
wingo:
  pre_close_cutoff: 2m
  sweep_interval: 3s
  tracks:
    - name: wingo_1m
      suffix: W1
      duration: 1m
`)
	_, err = NewWingoConfigFromYAML(path)
	assert.Error(t, err)

	// Дорожки отсутствуют
	path = writeConfig(t, `
wingo:
  pre_close_cutoff: 10s
  sweep_interval: 3s
  tracks: []
`)
	_, err = NewWingoConfigFromYAML(path)
	assert.Error(t, err)
}
