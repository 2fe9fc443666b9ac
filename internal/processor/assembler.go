package processor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/types"
)

// assembleProfile 把抽取结果合并成候选人画像并检查不变量
// 同一槽位的多个候选保留置信度最高者；日期区间违反 start <= end 时
// 清空结束日期转为开放区间并记备注
func assembleProfile(extraction *extractor.Extraction) (*types.CandidateProfile, []string) {
	var notes []string

	profile := &types.CandidateProfile{
		Summary:        extraction.Summary,
		Skills:         extraction.Skills,
		Education:      extraction.Education,
		Certifications: extraction.Certifications,
	}
	if profile.Skills == nil {
		profile.Skills = []types.SkillEntry{}
	}
	if profile.Education == nil {
		profile.Education = []types.EducationEntry{}
	}
	if profile.Certifications == nil {
		profile.Certifications = []types.CertificationEntry{}
	}

	for name, field := range bestFields(extraction.Fields) {
		switch name {
		case types.FieldName:
			profile.Name = field.Value
		case types.FieldEmail:
			profile.Email = field.Value
		case types.FieldPhone:
			profile.Phone = field.Value
		case types.FieldLinkedIn:
			profile.LinkedIn = field.Value
		case types.FieldGitHub:
			profile.GitHub = field.Value
		case types.FieldSummary:
			if profile.Summary == "" {
				profile.Summary = field.Value
			}
		}
	}

	profile.Experience = make([]types.JobEntry, 0, len(extraction.Experience))
	for _, entry := range extraction.Experience {
		if entry.Start != nil && entry.End != nil && !entry.Start.Before(*entry.End) {
			notes = append(notes, fmt.Sprintf(
				"经历 %q 的日期区间异常 (%s 之后是 %s)，结束日期已置为开放",
				entry.Title, entry.StartRaw, entry.EndRaw))
			entry.End = nil
		}
		profile.Experience = append(profile.Experience, entry)
	}

	// 姓名和全部联系方式都缺失时标记为不可用，但画像仍然返回
	if profile.Name == "" && profile.Email == "" && profile.Phone == "" {
		profile.Unusable = true
		notes = append(notes, "未抽取到姓名和任何联系方式，画像标记为不可用")
	}

	return profile, notes
}

// bestFields 按槽位名归并，保留每个槽位置信度最高的候选
func bestFields(fields []types.ExtractedField) map[string]types.ExtractedField {
	best := make(map[string]types.ExtractedField, len(fields))
	for _, field := range fields {
		if existing, ok := best[field.Name]; !ok || field.Confidence > existing.Confidence {
			best[field.Name] = field
		}
	}
	return best
}

// 报告覆盖的核心字段，缺失时进入 MissingFields
var coreFields = []string{
	types.FieldName, types.FieldEmail, types.FieldPhone, types.FieldSummary,
	"skills", "experience", "education",
}

// buildReport 汇总本次运行的字段置信度、缺失字段和各阶段备注
func buildReport(extraction *extractor.Extraction, profile *types.CandidateProfile, segmentConfidence string, notes []string, now time.Time) types.ExtractionReport {
	confidence := make(map[string]float64)

	for name, field := range bestFields(extraction.Fields) {
		confidence[name] = field.Confidence
	}
	if avg, ok := averageSkillConfidence(profile.Skills); ok {
		confidence["skills"] = avg
	}
	if avg, ok := averageJobConfidence(profile.Experience); ok {
		confidence["experience"] = avg
	}
	if avg, ok := averageEducationConfidence(profile.Education); ok {
		confidence["education"] = avg
	}
	if avg, ok := averageCertConfidence(profile.Certifications); ok {
		confidence["certifications"] = avg
	}

	missing := []string{}
	for _, field := range coreFields {
		if _, ok := confidence[field]; !ok {
			missing = append(missing, field)
		}
	}

	if notes == nil {
		notes = []string{}
	}

	return types.ExtractionReport{
		ReportID:               uuid.New().String(),
		FieldConfidence:        confidence,
		MissingFields:          missing,
		SegmentationConfidence: segmentConfidence,
		Notes:                  notes,
		GeneratedAt:            now.Unix(),
	}
}

func averageSkillConfidence(skills []types.SkillEntry) (float64, bool) {
	if len(skills) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range skills {
		sum += s.Confidence
	}
	return sum / float64(len(skills)), true
}

func averageJobConfidence(entries []types.JobEntry) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Confidence
	}
	return sum / float64(len(entries)), true
}

func averageEducationConfidence(entries []types.EducationEntry) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Confidence
	}
	return sum / float64(len(entries)), true
}

func averageCertConfidence(entries []types.CertificationEntry) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Confidence
	}
	return sum / float64(len(entries)), true
}
