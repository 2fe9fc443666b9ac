package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "it", cfg.Domain)
	assert.Equal(t, int64(10<<20), cfg.MaxDocumentSize)
	assert.Equal(t, 100, cfg.MinTextLength)
	assert.Equal(t, 2, cfg.FuzzyMatchThreshold)
	assert.Equal(t, 0.3, cfg.FallbackConfidence)
	assert.Equal(t, 0.1, cfg.MinRoleConfidence)
	assert.Equal(t, 2.0, cfg.ExperienceLevels.MidYears)
	assert.Equal(t, 6.0, cfg.ExperienceLevels.SeniorYears)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.Gemini.Model)
	assert.False(t, cfg.Gemini.Enabled)
}

// 测试环境下找不到配置文件时回退到默认配置
func TestLoadConfigFallsBackInTests(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "it", cfg.Domain)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `domain: mechanical
max_document_size: 1048576
fuzzy_match_threshold: 1
experience_level_thresholds:
  mid_years: 3
  senior_years: 8
gemini:
  enabled: true
  model: gemini-test
  timeout: 10s
logger:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mechanical", cfg.Domain)
	assert.Equal(t, int64(1048576), cfg.MaxDocumentSize)
	assert.Equal(t, 1, cfg.FuzzyMatchThreshold)
	assert.Equal(t, 3.0, cfg.ExperienceLevels.MidYears)
	assert.Equal(t, 8.0, cfg.ExperienceLevels.SeniorYears)
	assert.True(t, cfg.Gemini.Enabled)
	assert.Equal(t, "gemini-test", cfg.Gemini.Model)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// 未覆盖的字段补默认值
	assert.Equal(t, 100, cfg.MinTextLength)
	assert.Equal(t, 0.3, cfg.FallbackConfidence)
}

func TestLoadConfigEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini:\n  api_key: file-key\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domain: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 10*time.Second, GetDuration("10s", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("not-a-duration", time.Minute))
}
