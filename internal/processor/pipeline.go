// Package processor 把各阶段组件编排成完整的简历解析管道。
// 管道是同步的：一次 Process 调用处理一份文档，组件间没有共享
// 可变状态，同一个 ResumeParser 可以被多个 goroutine 并发使用。
// 只有加载阶段会以错误终止，后续阶段的所有问题都降级为报告内容。
package processor

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-insight-go/internal/classifier"
	"resume-insight-go/internal/config"
	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/loader"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/normalizer"
	"resume-insight-go/internal/segmenter"
	"resume-insight-go/internal/tracing"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

const tracerName = "resume-insight/pipeline"

// ResumeParser 简历解析管道
type ResumeParser struct {
	components Components
	settings   Settings
	tracer     trace.Tracer
}

// NewResumeParser 用显式组件创建管道
// 五个组件缺一不可，缺失时返回 ErrNoComponents
func NewResumeParser(componentOpts []ComponentOpt, settingOpts []SettingOpt) (*ResumeParser, error) {
	components := Components{}
	for _, opt := range componentOpts {
		opt(&components)
	}

	if components.Loader == nil || components.Segmenter == nil || components.Extractor == nil ||
		components.Normalizer == nil || components.Classifier == nil {
		return nil, ErrNoComponents
	}

	settings := Settings{
		Now:    time.Now,
		Logger: logger.Logger.With().Str("component", "pipeline").Logger(),
	}
	for _, opt := range settingOpts {
		opt(&settings)
	}

	return &ResumeParser{
		components: components,
		settings:   settings,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// NewDefault 按配置组装默认管道
// 领域词表取 cfg.Domain；Gemini 未启用或初始化失败时退化为纯规则分类
func NewDefault(ctx context.Context, cfg *config.Config) (*ResumeParser, error) {
	registry := vocab.NewRegistry()
	if cfg.VocabDir != "" {
		if err := registry.LoadDir(cfg.VocabDir); err != nil {
			return nil, fmt.Errorf("加载领域词表失败: %w", err)
		}
	}
	vocabulary, err := registry.Domain(cfg.Domain)
	if err != nil {
		return nil, err
	}

	docLoader, err := loader.New(ctx,
		loader.WithMaxSize(cfg.MaxDocumentSize),
		loader.WithMinTextLength(cfg.MinTextLength),
	)
	if err != nil {
		return nil, err
	}

	sectionSegmenter, err := segmenter.New(segmenter.Config{})
	if err != nil {
		return nil, err
	}

	classifierOpts := []classifier.Option{}
	if cfg.Gemini.Enabled {
		timeout := config.GetDuration(cfg.Gemini.Timeout, 30*time.Second)
		external, gerr := classifier.NewGeminiClassifier(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, timeout)
		if gerr != nil {
			logger.Warn().Err(gerr).Msg("Gemini 分类器初始化失败，使用纯规则分类")
		} else {
			classifierOpts = append(classifierOpts, classifier.WithExternal(external))
		}
	}

	componentOpts := []ComponentOpt{
		WithcompLoader(docLoader),
		WithcompSegmenter(sectionSegmenter),
		WithcompExtractor(extractor.New(vocabulary, extractor.Config{
			FuzzyThreshold:     cfg.FuzzyMatchThreshold,
			FallbackConfidence: cfg.FallbackConfidence,
		})),
		WithcompNormalizer(normalizer.New(vocabulary)),
		WithcompClassifier(classifier.New(vocabulary, classifier.Config{
			MinRoleConfidence: cfg.MinRoleConfidence,
			MidYears:          cfg.ExperienceLevels.MidYears,
			SeniorYears:       cfg.ExperienceLevels.SeniorYears,
		}, classifierOpts...)),
	}

	return NewResumeParser(componentOpts, nil)
}

// Process 处理一份简历文档，返回画像、分类结果和抽取报告
// 只有加载失败返回错误；之后的每个阶段都尽力而为，问题记入报告
func (p *ResumeParser) Process(ctx context.Context, doc types.RawDocument) (*types.ParseResult, error) {
	ctx, rootSpan := p.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(
			attribute.String("resume.filename", doc.Filename),
			attribute.String("resume.mime_type", doc.MIMEType),
			attribute.Int("resume.size_bytes", len(doc.Content)),
		))
	defer rootSpan.End()

	startTime := p.settings.Now()

	// 加载：唯一的致命阶段
	loadCtx, loadSpan := p.tracer.Start(ctx, "pipeline.load")
	loadResult, err := p.components.Loader.Load(loadCtx, doc)
	if err != nil {
		tracing.RecordErrorWithInfo(loadSpan, err, tracing.ErrorTypeParse,
			attribute.String("resume.mime_type", doc.MIMEType),
			attribute.Int("resume.size_bytes", len(doc.Content)),
		)
		loadSpan.End()
		return nil, NewLoadError(doc.Filename, err)
	}
	loadSpan.SetAttributes(
		attribute.String("resume.format", string(loadResult.Format)),
		attribute.Int("resume.block_count", len(loadResult.Blocks)),
		attribute.String("resume.excerpt", tracing.SafeResumeContent(loadResult.Text)),
	)
	loadSpan.End()

	var notes []string

	// 分区
	segmentCtx, segmentSpan := p.tracer.Start(ctx, "pipeline.segment")
	sections, segmentConfidence, err := p.components.Segmenter.Segment(segmentCtx, loadResult.Blocks)
	if err != nil {
		// 分区失败不终止，整个文档作为 other 区域继续
		segmentErr := NewSegmentError(doc.Filename, err)
		tracing.RecordError(segmentSpan, segmentErr, tracing.ErrorTypeInternal)
		p.settings.Logger.Warn().Err(segmentErr).Msg("区域划分失败，整个文档按未分类内容处理")
		notes = append(notes, segmentErr.Error())
		sections = []types.Section{{Type: types.SectionOther, Blocks: loadResult.Blocks}}
		segmentConfidence = types.SegmentationLow
	}
	segmentSpan.SetAttributes(
		attribute.Int("resume.section_count", len(sections)),
		attribute.String("resume.segmentation_confidence", segmentConfidence),
	)
	segmentSpan.End()

	// 抽取
	extractCtx, extractSpan := p.tracer.Start(ctx, "pipeline.extract")
	extraction := p.components.Extractor.Extract(extractCtx, sections, loadResult.Text)
	extractSpan.SetAttributes(
		attribute.Int("resume.field_count", len(extraction.Fields)),
		attribute.Int("resume.skill_count", len(extraction.Skills)),
	)
	extractSpan.End()

	// 规范化
	normalizeCtx, normalizeSpan := p.tracer.Start(ctx, "pipeline.normalize")
	notes = append(notes, p.components.Normalizer.Normalize(normalizeCtx, extraction)...)
	normalizeSpan.End()

	// 组装画像并检查不变量
	profile, assembleNotes := assembleProfile(extraction)
	notes = append(notes, assembleNotes...)

	// 分类
	classifyCtx, classifySpan := p.tracer.Start(ctx, "pipeline.classify")
	classification, classifyNotes := p.components.Classifier.Classify(classifyCtx, profile)
	notes = append(notes, classifyNotes...)
	classifySpan.SetAttributes(attribute.Int("resume.role_count", len(classification.Roles)))
	classifySpan.End()

	report := buildReport(extraction, profile, segmentConfidence, notes, p.settings.Now())

	if p.settings.Debug {
		p.settings.Logger.Debug().
			Str("report_id", report.ReportID).
			Str("name", tracing.MaskPII(profile.Name)).
			Int("sections", len(sections)).
			Int("skills", len(profile.Skills)).
			Dur("elapsed", p.settings.Now().Sub(startTime)).
			Msg("简历解析完成")
	}

	rootSpan.SetAttributes(
		attribute.String("resume.report_id", report.ReportID),
		attribute.String("candidate.name", tracing.SafeAttributeValue("candidate.name", profile.Name, tracing.DefaultMaxLength)),
	)

	return &types.ParseResult{
		Profile:        *profile,
		Classification: *classification,
		Report:         report,
	}, nil
}
