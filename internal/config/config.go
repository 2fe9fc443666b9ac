package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"resume-insight-go/internal/logger"
)

// ExperienceLevelConfig 经验级别的年限边界
// 累计年限 < MidYears 为 entry，介于两者之间为 mid，> SeniorYears 为 senior
type ExperienceLevelConfig struct {
	MidYears    float64 `yaml:"mid_years"`
	SeniorYears float64 `yaml:"senior_years"`
}

// GeminiConfig 外部分类模型（Gemini）配置
// 管道把预训练模型当作黑盒能力调用，不依赖其内部实现
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"` // 例如 "30s"
	Enabled bool   `yaml:"enabled"`
}

// Config 应用程序配置
type Config struct {
	// Domain 选择使用哪个领域的别名表和角色分类体系
	Domain string `yaml:"domain"`

	// MaxDocumentSize 上传文档的最大字节数，超出即拒绝
	MaxDocumentSize int64 `yaml:"max_document_size"`

	// MinTextLength 可抽取文本的最小字符数，低于此值视为不可读文档
	MinTextLength int `yaml:"min_text_length"`

	// FuzzyMatchThreshold 技能模糊匹配的编辑距离上限
	FuzzyMatchThreshold int `yaml:"fuzzy_match_threshold"`

	// FallbackConfidence 自由文本兜底匹配的固定置信度
	FallbackConfidence float64 `yaml:"fallback_confidence"`

	// MinRoleConfidence 角色匹配的最低置信度，低于此值不进入结果
	MinRoleConfidence float64 `yaml:"min_role_confidence"`

	// ExperienceLevels 经验级别分桶边界
	ExperienceLevels ExperienceLevelConfig `yaml:"experience_level_thresholds"`

	// VocabDir 领域词表目录，为空时使用内置词表
	VocabDir string `yaml:"vocab_dir"`

	// Gemini 外部分类模型配置
	Gemini GeminiConfig `yaml:"gemini"`

	// Logger 日志配置
	Logger logger.Config `yaml:"logger"`
}

// LoadConfig 从文件加载配置
// 未指定路径时在常见位置查找；测试环境中找不到文件则回退到默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-insight", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			if inTestEnv() {
				return DefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖（如果存在）
	if envKey := os.Getenv("GOOGLE_API_KEY"); envKey != "" {
		cfg.Gemini.APIKey = envKey
	}

	cfg.applyDefaults()
	return cfg, nil
}

// DefaultConfig 返回一份带默认值的配置，亦用于测试环境
func DefaultConfig() *Config {
	cfg := &Config{
		Domain:              "it",
		MaxDocumentSize:     10 << 20, // 10 MB
		MinTextLength:       100,
		FuzzyMatchThreshold: 2,
		FallbackConfidence:  0.3,
		MinRoleConfidence:   0.1,
		ExperienceLevels: ExperienceLevelConfig{
			MidYears:    2,
			SeniorYears: 6,
		},
	}

	cfg.Gemini.Model = "gemini-2.0-flash-lite"
	cfg.Gemini.Timeout = "30s"
	if envKey := os.Getenv("GOOGLE_API_KEY"); envKey != "" {
		cfg.Gemini.APIKey = envKey
	}

	cfg.Logger.Level = "info"
	cfg.Logger.Format = "pretty"
	cfg.Logger.TimeFormat = "2006-01-02 15:04:05"

	return cfg
}

// applyDefaults 补齐零值字段，保证配置文件可以只写需要覆盖的项
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Domain == "" {
		c.Domain = def.Domain
	}
	if c.MaxDocumentSize <= 0 {
		c.MaxDocumentSize = def.MaxDocumentSize
	}
	if c.MinTextLength <= 0 {
		c.MinTextLength = def.MinTextLength
	}
	if c.FuzzyMatchThreshold <= 0 {
		c.FuzzyMatchThreshold = def.FuzzyMatchThreshold
	}
	if c.FallbackConfidence <= 0 {
		c.FallbackConfidence = def.FallbackConfidence
	}
	if c.MinRoleConfidence <= 0 {
		c.MinRoleConfidence = def.MinRoleConfidence
	}
	if c.ExperienceLevels.MidYears <= 0 {
		c.ExperienceLevels.MidYears = def.ExperienceLevels.MidYears
	}
	if c.ExperienceLevels.SeniorYears <= 0 {
		c.ExperienceLevels.SeniorYears = def.ExperienceLevels.SeniorYears
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.Timeout == "" {
		c.Gemini.Timeout = def.Gemini.Timeout
	}
	if c.Logger.Level == "" {
		c.Logger.Level = def.Logger.Level
	}
	if c.Logger.Format == "" {
		c.Logger.Format = def.Logger.Format
	}
}

// inTestEnv 判断当前是否运行在 go test 下
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// GetDuration 解析配置中的时长字符串，失败时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
