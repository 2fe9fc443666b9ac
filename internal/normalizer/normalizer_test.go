package normalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

func itNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	vocabulary, err := vocab.NewRegistry().Domain("it")
	require.NoError(t, err)
	return New(vocabulary)
}

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		raw      string
		expected *types.YearMonth
		ok       bool
	}{
		{"Jan 2020", &types.YearMonth{Year: 2020, Month: 1}, true},
		{"January 2020", &types.YearMonth{Year: 2020, Month: 1}, true},
		{"Sept 2019", &types.YearMonth{Year: 2019, Month: 9}, true},
		{"Dec. 2021", &types.YearMonth{Year: 2021, Month: 12}, true},
		{"01/2020", &types.YearMonth{Year: 2020, Month: 1}, true},
		{"11 / 2018", &types.YearMonth{Year: 2018, Month: 11}, true},
		{"2020-01", &types.YearMonth{Year: 2020, Month: 1}, true},
		{"2020", &types.YearMonth{Year: 2020}, true},
		{"13/2020", nil, false},
		{"someday", nil, false},
		{"1800", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := ParseYearMonth(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw: %q", tt.raw)
		if tt.ok {
			require.NotNil(t, got, "raw: %q", tt.raw)
			assert.Equal(t, *tt.expected, *got, "raw: %q", tt.raw)
		}
	}
}

func TestNormalizeFillsDates(t *testing.T) {
	n := itNormalizer(t)

	extraction := &extractor.Extraction{
		Experience: []types.JobEntry{
			{Title: "Backend Developer", StartRaw: "Jan 2018", EndRaw: "Mar 2021"},
			{Title: "Intern", StartRaw: "sometime", Current: true},
		},
	}
	notes := n.Normalize(context.Background(), extraction)

	first := extraction.Experience[0]
	require.NotNil(t, first.Start)
	assert.Equal(t, types.YearMonth{Year: 2018, Month: 1}, *first.Start)
	require.NotNil(t, first.End)
	assert.Equal(t, types.YearMonth{Year: 2021, Month: 3}, *first.End)

	// 无法解析的日期保持 nil 并产生备注
	assert.Nil(t, extraction.Experience[1].Start)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[0], "sometime")
}

func TestNormalizeSkillsDedup(t *testing.T) {
	n := itNormalizer(t)

	extraction := &extractor.Extraction{
		Skills: []types.SkillEntry{
			{Name: "golang", Raw: "golang", Confidence: 0.6},
			{Name: "Go", Raw: "Go", Confidence: 1.0},
			{Name: "React", Raw: "React", Confidence: 1.0},
			{Name: "React", Raw: "ReactJS", Confidence: 0.8},
		},
	}
	n.Normalize(context.Background(), extraction)

	require.Len(t, extraction.Skills, 2)

	byName := make(map[string]types.SkillEntry)
	for _, skill := range extraction.Skills {
		byName[skill.Name] = skill
	}
	// 别名归一后按最高置信度去重
	assert.Equal(t, 1.0, byName["Go"].Confidence)
	assert.Equal(t, 1.0, byName["React"].Confidence)
}

func TestNormalizeContactValidation(t *testing.T) {
	n := itNormalizer(t)

	extraction := &extractor.Extraction{
		Fields: []types.ExtractedField{
			{Name: types.FieldEmail, Value: "JANE@Example.com", Confidence: 1.0},
			{Name: types.FieldPhone, Value: "+1 (415) 555-0101", Confidence: 1.0},
		},
	}
	notes := n.Normalize(context.Background(), extraction)
	assert.Empty(t, notes)

	require.Len(t, extraction.Fields, 2)
	assert.Equal(t, "jane@example.com", extraction.Fields[0].Value)
	assert.Equal(t, "+14155550101", extraction.Fields[1].Value)
}

// 校验失败的联系方式被清除而不是保留错误值
func TestNormalizeDropsInvalidContact(t *testing.T) {
	n := itNormalizer(t)

	extraction := &extractor.Extraction{
		Fields: []types.ExtractedField{
			{Name: types.FieldEmail, Value: "not-an-email", Confidence: 1.0},
			{Name: types.FieldPhone, Value: "123", Confidence: 1.0},
			{Name: types.FieldName, Value: "Jane Doe", Confidence: 0.9},
		},
	}
	notes := n.Normalize(context.Background(), extraction)

	require.Len(t, extraction.Fields, 1)
	assert.Equal(t, types.FieldName, extraction.Fields[0].Name)
	assert.Len(t, notes, 2)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"+1 (415) 555-0101", "+14155550101", true},
		{"415.555.0101", "4155550101", true},
		{"123", "", false},
		{"12345678901234567890", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizePhone(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw: %q", tt.raw)
		assert.Equal(t, tt.expected, got, "raw: %q", tt.raw)
	}
}

func TestNormalizeSeniority(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Sr. Software Engineer", "Senior Software Engineer"},
		{"Jr Developer", "Junior Developer"},
		{"Engineering Mgr", "Engineering Manager"},
		{"Backend Dev", "Backend Developer"},
		{"Senior Architect", "Senior Architect"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeSeniority(tt.raw), "raw: %q", tt.raw)
	}
}

// 规范化是纯函数：同样的输入重复执行得到同样的结果
func TestNormalizeIdempotent(t *testing.T) {
	n := itNormalizer(t)

	build := func() *extractor.Extraction {
		return &extractor.Extraction{
			Fields: []types.ExtractedField{
				{Name: types.FieldEmail, Value: "jane@example.com", Confidence: 1.0},
			},
			Skills: []types.SkillEntry{
				{Name: "golang", Confidence: 0.7},
				{Name: "Go", Confidence: 1.0},
			},
			Experience: []types.JobEntry{
				{Title: "Sr. Engineer", StartRaw: "2019", EndRaw: "Jan 2022"},
			},
		}
	}

	first := build()
	second := build()
	n.Normalize(context.Background(), first)
	n.Normalize(context.Background(), second)

	assert.Equal(t, first, second)
}
