package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a temp dir so the developer's own config
// and .env never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MATHFOREST_HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.Debounce)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.SavedRevert)
	assert.Equal(t, 4*time.Second, cfg.Game.FailedRevert)
	assert.Equal(t, 10, cfg.Game.SessionMinAnswers)
	assert.Equal(t, 8*time.Minute, cfg.Game.SessionMinDuration)
}

func TestLoad_NoFile(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "mathforest", "mathforest.db"), cfg.Store.Path)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	isolate(t)
	_, err := Load("/nonexistent/mathforest.toml")
	assert.Error(t, err)
}

func TestLoad_TOMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
driver = "postgres"
url = "postgres://localhost/mf"

[server]
addr = ":9000"

[game]
debounce = "250ms"
session_min_answers = 4
`), 0o600))

	t.Setenv("MATHFOREST_ADDR", ":9100")
	t.Setenv("MATHFOREST_METRICS", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/mf", cfg.Store.URL)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env wins over file")
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.Debounce)
	assert.Equal(t, 4, cfg.Game.SessionMinAnswers)
	assert.Equal(t, 8*time.Minute, cfg.Game.SessionMinDuration, "unset keys keep defaults")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MATHFOREST_JWT_SECRET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MATHFOREST_JWT_SECRET") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
}

func TestLoad_BadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("MATHFOREST_DEBOUNCE", "soon")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "out", "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Addr = ":1234"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":1234", got.Server.Addr)
	assert.Equal(t, cfg.Game, got.Game)
}
