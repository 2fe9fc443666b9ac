package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"resume-insight-go/internal/logger"
)

// roleClassifyPromptTemplate 外部分类的提示词
// 要求模型只返回 JSON，便于稳定解析
const roleClassifyPromptTemplate = `You are a recruiting assistant. Based on the resume profile below, identify the single most suitable job role for this candidate.

Resume profile:
%s

Respond with ONLY a JSON object in this exact format, no other text:
{"role": "<role name>", "confidence": <number between 0 and 1>}`

// contentGenerator 文本生成能力，便于测试时替换真实模型
type contentGenerator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator 基于 google genai SDK 的生成实现
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini 生成失败: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("Gemini 返回空响应")
	}
	return text, nil
}

// GeminiClassifier 基于 Gemini 的外部角色分类实现
type GeminiClassifier struct {
	generator contentGenerator
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewGeminiClassifier 创建 Gemini 分类器
// apiKey 为空时返回错误，调用方据此决定是否降级为纯规则分类
func NewGeminiClassifier(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("缺少 Gemini API Key")
	}
	if model == "" {
		model = "gemini-2.0-flash-lite"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}

	return &GeminiClassifier{
		generator: &geminiGenerator{client: client, model: model},
		timeout:   timeout,
		logger:    logger.Logger.With().Str("component", "gemini_classifier").Logger(),
	}, nil
}

// roleResponse 模型返回的 JSON 结构
type roleResponse struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// Classify 调用模型并解析角色标签
func (g *GeminiClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.generator.generate(ctx, fmt.Sprintf(roleClassifyPromptTemplate, text))
	if err != nil {
		return "", 0, err
	}

	var parsed roleResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &parsed); err != nil {
		g.logger.Warn().Str("raw", raw).Msg("模型响应不是有效JSON")
		return "", 0, fmt.Errorf("解析模型响应失败: %w", err)
	}

	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}

	return strings.TrimSpace(parsed.Role), parsed.Confidence, nil
}

// cleanJSONResponse 去掉模型常见的 Markdown 代码块包裹
func cleanJSONResponse(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}
