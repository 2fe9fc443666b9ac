package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/classifier"
	"resume-insight-go/internal/config"
	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/loader"
	"resume-insight-go/internal/normalizer"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 415 555 0101

Professional Summary
Backend developer with eight years of experience building services.

Skills
Go, Python, Docker, Kubernetes

Work Experience
Senior Backend Developer at Acme Inc
Jan 2018 - Present
- designed and ran the billing platform

Education
B.Sc Computer Science, State University, 2014
`

func defaultParser(t *testing.T) *ResumeParser {
	t.Helper()
	parser, err := NewDefault(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	return parser
}

func TestProcessSyntheticResume(t *testing.T) {
	parser := defaultParser(t)

	result, err := parser.Process(context.Background(), types.RawDocument{
		Filename: "resume.txt",
		MIMEType: "text/plain",
		Content:  []byte(sampleResume),
	})
	require.NoError(t, err)

	profile := result.Profile
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane.doe@example.com", profile.Email)
	assert.Equal(t, "+14155550101", profile.Phone)
	assert.False(t, profile.Unusable)
	assert.NotEmpty(t, profile.Summary)

	skillNames := make(map[string]bool)
	for _, skill := range profile.Skills {
		skillNames[skill.Name] = true
	}
	for _, expected := range []string{"Go", "Python", "Docker", "Kubernetes"} {
		assert.True(t, skillNames[expected], "缺少技能 %s", expected)
	}

	require.Len(t, profile.Experience, 1)
	job := profile.Experience[0]
	assert.Equal(t, "Senior Backend Developer", job.Title)
	assert.Equal(t, "Acme Inc", job.Employer)
	require.NotNil(t, job.Start)
	assert.True(t, job.Current)

	require.Len(t, profile.Education, 1)

	// 分类：明显的后端画像，经验超过 senior 阈值
	require.NotEmpty(t, result.Classification.Roles)
	assert.Equal(t, "Backend Developer", result.Classification.Roles[0].Role)
	assert.Equal(t, types.LevelSenior, result.Classification.ExperienceLevel)

	// 报告：结构良好的合成简历，核心字段全部就位
	report := result.Report
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, types.SegmentationHigh, report.SegmentationConfidence)
	assert.Empty(t, report.MissingFields)
	assert.NotZero(t, report.GeneratedAt)

	highConfidence := 0
	for _, confidence := range report.FieldConfidence {
		assert.GreaterOrEqual(t, confidence, 0.0)
		assert.LessOrEqual(t, confidence, 1.0)
		if confidence >= 0.8 {
			highConfidence++
		}
	}
	assert.GreaterOrEqual(t, highConfidence, 5)
}

// 同一份文档重复处理，除报告标识和时间戳外输出一致
func TestProcessDeterministic(t *testing.T) {
	parser := defaultParser(t)
	doc := types.RawDocument{Filename: "resume.txt", Content: []byte(sampleResume)}

	first, err := parser.Process(context.Background(), doc)
	require.NoError(t, err)
	second, err := parser.Process(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, first.Profile, second.Profile)
	assert.Equal(t, first.Classification, second.Classification)
	assert.Equal(t, first.Report.FieldConfidence, second.Report.FieldConfidence)
	assert.Equal(t, first.Report.MissingFields, second.Report.MissingFields)
	assert.NotEqual(t, first.Report.ReportID, second.Report.ReportID)
}

func TestProcessHeadinglessDocument(t *testing.T) {
	parser := defaultParser(t)

	text := "this resume has no structure whatsoever, it is a single run-on paragraph " +
		"mentioning that the candidate can be reached at someone@example.com and knows Go"
	result, err := parser.Process(context.Background(), types.RawDocument{
		Filename: "blob.txt",
		Content:  []byte(text),
	})
	require.NoError(t, err)

	assert.Equal(t, types.SegmentationLow, result.Report.SegmentationConfidence)
	// 尽力而为的抽取仍然找到了邮箱
	assert.Equal(t, "someone@example.com", result.Profile.Email)
}

func TestProcessLoaderErrorsAreFatal(t *testing.T) {
	parser := defaultParser(t)

	tests := []struct {
		name     string
		doc      types.RawDocument
		sentinel error
	}{
		{"unsupported format", types.RawDocument{Filename: "photo.png", Content: []byte("xx")}, loader.ErrUnsupportedFormat},
		{"empty document", types.RawDocument{Filename: "resume.txt"}, loader.ErrCorruptDocument},
		{"too little text", types.RawDocument{Filename: "resume.txt", Content: []byte("hi")}, loader.ErrCorruptDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Process(context.Background(), tt.doc)
			require.Error(t, err)
			// 管道错误保留底层哨兵，调用方用 errors.Is 分流
			assert.ErrorIs(t, err, tt.sentinel)

			var parseErr *ResumeParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "load", parseErr.Op)
		})
	}
}

func TestNewResumeParserRequiresAllComponents(t *testing.T) {
	_, err := NewResumeParser(nil, nil)
	assert.ErrorIs(t, err, ErrNoComponents)

	_, err = NewResumeParser([]ComponentOpt{WithcompLoader(&stubLoader{})}, nil)
	assert.ErrorIs(t, err, ErrNoComponents)
}

func TestProcessWithInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	parser, err := NewDefault(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	WithsetNow(func() time.Time { return fixed })(&parser.settings)

	result, err := parser.Process(context.Background(), types.RawDocument{
		Filename: "resume.txt",
		Content:  []byte(sampleResume),
	})
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), result.Report.GeneratedAt)
}

// 分区失败不终止管道：整个文档按 other 区域继续，问题记入报告
func TestProcessSegmenterFailureDegrades(t *testing.T) {
	vocabulary, err := vocab.NewRegistry().Domain("it")
	require.NoError(t, err)

	parser, err := NewResumeParser([]ComponentOpt{
		WithcompLoader(&stubLoader{}),
		WithcompSegmenter(&stubSegmenter{err: errors.New("正则回溯超限")}),
		WithcompExtractor(extractor.New(vocabulary, extractor.Config{FuzzyThreshold: 2, FallbackConfidence: 0.3})),
		WithcompNormalizer(normalizer.New(vocabulary)),
		WithcompClassifier(classifier.New(vocabulary, classifier.Config{MinRoleConfidence: 0.1, MidYears: 2, SeniorYears: 6})),
	}, nil)
	require.NoError(t, err)

	result, err := parser.Process(context.Background(), types.RawDocument{
		Filename: "resume.txt",
		Content:  []byte(sampleResume),
	})
	require.NoError(t, err)

	assert.Equal(t, types.SegmentationLow, result.Report.SegmentationConfidence)
	require.NotEmpty(t, result.Report.Notes)
	assert.Contains(t, result.Report.Notes[0], "区域划分失败")
}

func TestSegmentErrorWrapsSentinel(t *testing.T) {
	err := NewSegmentError("resume.txt", errors.New("正则回溯超限"))
	assert.ErrorIs(t, err, ErrSegmentFailed)

	var parseErr *ResumeParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "segment", parseErr.Op)
	assert.Equal(t, "resume.txt", parseErr.Filename)
}

// ----- 组件桩 -----

type stubLoader struct {
	err error
}

func (s *stubLoader) Load(ctx context.Context, doc types.RawDocument) (*loader.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &loader.Result{Text: "stub", Blocks: []types.TextBlock{{Text: "stub"}}}, nil
}

type stubSegmenter struct {
	err error
}

func (s *stubSegmenter) Segment(ctx context.Context, blocks []types.TextBlock) ([]types.Section, string, error) {
	return nil, "", s.err
}

// ----- 汇编器 -----

func TestAssembleProfileDateOrderViolation(t *testing.T) {
	extraction := &extractor.Extraction{
		Experience: []types.JobEntry{
			{
				Title:    "Engineer",
				StartRaw: "Jan 2020",
				EndRaw:   "Jan 2018",
				Start:    &types.YearMonth{Year: 2020, Month: 1},
				End:      &types.YearMonth{Year: 2018, Month: 1},
			},
		},
		Fields: []types.ExtractedField{
			{Name: types.FieldName, Value: "Jane Doe", Confidence: 0.9},
		},
	}

	profile, notes := assembleProfile(extraction)

	require.Len(t, profile.Experience, 1)
	// 违反时间顺序的结束日期被清空转为开放区间
	assert.Nil(t, profile.Experience[0].End)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[0], "Engineer")
}

func TestAssembleProfileKeepsBestCandidate(t *testing.T) {
	extraction := &extractor.Extraction{
		Fields: []types.ExtractedField{
			{Name: types.FieldEmail, Value: "low@example.com", Confidence: 0.5},
			{Name: types.FieldEmail, Value: "high@example.com", Confidence: 1.0},
		},
	}

	profile, _ := assembleProfile(extraction)
	assert.Equal(t, "high@example.com", profile.Email)
}

func TestAssembleProfileUnusable(t *testing.T) {
	profile, notes := assembleProfile(&extractor.Extraction{
		Skills: []types.SkillEntry{{Name: "Go", Confidence: 1.0}},
	})

	assert.True(t, profile.Unusable)
	assert.NotEmpty(t, notes)
}

func TestBuildReportMissingFields(t *testing.T) {
	extraction := &extractor.Extraction{
		Fields: []types.ExtractedField{
			{Name: types.FieldName, Value: "Jane Doe", Confidence: 0.9},
		},
	}
	profile, notes := assembleProfile(extraction)

	report := buildReport(extraction, profile, types.SegmentationLow, notes, time.Now())

	assert.Contains(t, report.MissingFields, types.FieldEmail)
	assert.Contains(t, report.MissingFields, types.FieldPhone)
	assert.Contains(t, report.MissingFields, "skills")
	assert.Contains(t, report.MissingFields, "experience")
	assert.NotContains(t, report.MissingFields, types.FieldName)
	assert.Equal(t, types.SegmentationLow, report.SegmentationConfidence)
	assert.Equal(t, 0.9, report.FieldConfidence[types.FieldName])
}
