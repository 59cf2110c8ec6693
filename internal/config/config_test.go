package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("APP_AUDIO_DIR", filepath.Join(dir, "audio"))

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Address())
	assert.Equal(t, int64(16*1024*1024), cfg.App.MaxUploadSize)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif"}, cfg.App.AllowedFormats)
	assert.Equal(t, time.Hour, cfg.App.AudioRetention)
	assert.Equal(t, "en-US", cfg.Grammar.Language)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "google", cfg.TTS.Engine)
	assert.Equal(t, "en", cfg.TTS.Language)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.False(t, cfg.S3.Enabled)

	assert.DirExists(t, cfg.App.UploadDir)
	assert.DirExists(t, cfg.App.AudioDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_UPLOAD_DIR", filepath.Join(dir, "up"))
	t.Setenv("APP_AUDIO_DIR", filepath.Join(dir, "au"))
	t.Setenv("APP_ALLOWED_FORMATS", ".PNG, gif")
	t.Setenv("APP_AUDIO_RETENTION", "90s")
	t.Setenv("OCR_LANGUAGES", "eng,deu")
	t.Setenv("TTS_ENGINE", "OpenAI")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"png", "gif"}, cfg.App.AllowedFormats)
	assert.Equal(t, 90*time.Second, cfg.App.AudioRetention)
	assert.Equal(t, []string{"eng", "deu"}, cfg.OCR.Languages)
	assert.Equal(t, "openai", cfg.TTS.Engine)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "GEMINI_API_KEY=from-file\n" +
		"APP_UPLOAD_DIR=" + filepath.Join(dir, "u") + "\n" +
		"APP_AUDIO_DIR=" + filepath.Join(dir, "a") + "\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	cfg, err := load(viper.New(), envPath)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.DirExists(t, filepath.Join(dir, "u"))
	assert.DirExists(t, filepath.Join(dir, "a"))
}

func TestLoad_CreateDirsIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("APP_AUDIO_DIR", filepath.Join(dir, "audio"))

	_, err := load(viper.New(), "")
	require.NoError(t, err)
	_, err = load(viper.New(), "")
	require.NoError(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "c"}))
	assert.Nil(t, splitList([]string{" , "}))
}
