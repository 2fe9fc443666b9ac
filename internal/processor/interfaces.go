package processor

import (
	"context"

	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/loader"
	"resume-insight-go/internal/types"
)

// DocumentLoader 文档加载能力：原始字节到文本和版式块
type DocumentLoader interface {
	Load(ctx context.Context, doc types.RawDocument) (*loader.Result, error)
}

// SectionSegmenter 区域分区能力
// 第二个返回值是分区置信度（high / low）
type SectionSegmenter interface {
	Segment(ctx context.Context, blocks []types.TextBlock) ([]types.Section, string, error)
}

// FieldExtractor 字段抽取能力
type FieldExtractor interface {
	Extract(ctx context.Context, sections []types.Section, fullText string) *extractor.Extraction
}

// ProfileNormalizer 规范化能力，返回过程备注
type ProfileNormalizer interface {
	Normalize(ctx context.Context, extraction *extractor.Extraction) []string
}

// RoleClassifier 角色分类能力，返回分类结果和过程备注
type RoleClassifier interface {
	Classify(ctx context.Context, profile *types.CandidateProfile) (*types.ClassificationResult, []string)
}

// Components 管道的全部组件
// 各组件只通过接口耦合，测试时可单独替换
type Components struct {
	Loader     DocumentLoader
	Segmenter  SectionSegmenter
	Extractor  FieldExtractor
	Normalizer ProfileNormalizer
	Classifier RoleClassifier
}
