// Package normalizer 把抽取结果整理成规范形式：日期统一为年月结构、
// 技能别名归一并去重、职级措辞标准化、联系方式校验。
// 规范化从不失败，无法处理的值保持原样或清空并记入备注。
package normalizer

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"resume-insight-go/internal/extractor"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

// 月份名到月序的映射，键为小写前三个字母
var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// 规范日期的几种写法
var (
	monthYearRe   = regexp.MustCompile(`(?i)^([a-z]{3,9})\.?,?\s*(\d{4})$`)
	slashMonthRe  = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d{4})$`)
	isoMonthRe    = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	bareYearOnlyRe = regexp.MustCompile(`^(\d{4})$`)
)

// 职级缩写的标准化替换
var seniorityReplacements = []struct{ pattern *regexp.Regexp; replacement string }{
	{regexp.MustCompile(`(?i)\bsr\.?\s`), "Senior "},
	{regexp.MustCompile(`(?i)\bjr\.?\s`), "Junior "},
	{regexp.MustCompile(`(?i)\bmgr\.?\b`), "Manager"},
	{regexp.MustCompile(`(?i)\bengg\.?\b`), "Engineer"},
	{regexp.MustCompile(`(?i)\bdev\b`), "Developer"},
}

var emailValidRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Normalizer 规范化器，绑定领域词表做别名归一
type Normalizer struct {
	vocabulary *vocab.DomainVocabulary
	logger     zerolog.Logger
}

// New 创建规范化器
func New(vocabulary *vocab.DomainVocabulary) *Normalizer {
	return &Normalizer{
		vocabulary: vocabulary,
		logger:     logger.Logger.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize 对抽取结果做就地规范化，返回过程中产生的备注
// 输入不变时输出完全一致，不依赖任何外部状态
func (n *Normalizer) Normalize(ctx context.Context, extraction *extractor.Extraction) []string {
	var notes []string

	notes = append(notes, n.normalizeContact(extraction)...)
	n.normalizeSkills(extraction)
	notes = append(notes, n.normalizeExperience(extraction)...)

	n.logger.Debug().
		Int("skills", len(extraction.Skills)).
		Int("notes", len(notes)).
		Msg("规范化完成")

	return notes
}

// normalizeContact 校验邮箱和电话，无效值清空并记备注
func (n *Normalizer) normalizeContact(extraction *extractor.Extraction) []string {
	var notes []string

	fields := extraction.Fields[:0]
	for _, field := range extraction.Fields {
		switch field.Name {
		case types.FieldEmail:
			if !emailValidRe.MatchString(field.Value) {
				notes = append(notes, "抽取到的邮箱格式无效，已丢弃: "+field.Value)
				continue
			}
			field.Value = strings.ToLower(field.Value)
		case types.FieldPhone:
			normalized, ok := normalizePhone(field.Value)
			if !ok {
				notes = append(notes, "抽取到的电话号码无效，已丢弃: "+field.Value)
				continue
			}
			field.Value = normalized
		}
		fields = append(fields, field)
	}
	extraction.Fields = fields

	return notes
}

// normalizePhone 去掉格式符并校验位数
// 保留前导 +，数字位数须在 7 到 15 之间
func normalizePhone(raw string) (string, bool) {
	var sb strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' && i == 0:
			sb.WriteRune(r)
		}
	}

	normalized := sb.String()
	digits := len(strings.TrimPrefix(normalized, "+"))
	if digits < 7 || digits > 15 {
		return "", false
	}
	return normalized, true
}

// normalizeSkills 做别名归一和去重
// 同一规范名出现多次时保留最高置信度的那条
func (n *Normalizer) normalizeSkills(extraction *extractor.Extraction) {
	best := make(map[string]int)
	deduped := make([]types.SkillEntry, 0, len(extraction.Skills))

	for _, skill := range extraction.Skills {
		if canonical, ok := n.vocabulary.CanonicalSkill(skill.Name); ok {
			skill.Name = canonical
		}

		key := strings.ToLower(skill.Name)
		if idx, seen := best[key]; seen {
			if skill.Confidence > deduped[idx].Confidence {
				deduped[idx] = skill
			}
			continue
		}
		best[key] = len(deduped)
		deduped = append(deduped, skill)
	}

	extraction.Skills = deduped
}

// normalizeExperience 解析日期区间并标准化职位措辞
func (n *Normalizer) normalizeExperience(extraction *extractor.Extraction) []string {
	var notes []string

	for i := range extraction.Experience {
		entry := &extraction.Experience[i]
		entry.Title = normalizeSeniority(entry.Title)

		if entry.StartRaw != "" {
			start, ok := ParseYearMonth(entry.StartRaw)
			if ok {
				entry.Start = start
			} else {
				notes = append(notes, "无法解析的起始日期: "+entry.StartRaw)
			}
		}
		if entry.EndRaw != "" {
			end, ok := ParseYearMonth(entry.EndRaw)
			if ok {
				entry.End = end
			} else {
				notes = append(notes, "无法解析的结束日期: "+entry.EndRaw)
			}
		}
	}

	return notes
}

// normalizeSeniority 把职位中的职级缩写展开成标准写法
func normalizeSeniority(title string) string {
	for _, r := range seniorityReplacements {
		title = r.pattern.ReplaceAllString(title, r.replacement)
	}
	return strings.TrimSpace(title)
}

// ParseYearMonth 把原始日期字符串解析为年月
// 支持 "Jan 2020"、"January 2020"、"01/2020"、"2020-01" 和裸年份
// "2020"（月份记 0 表示仅年份）
func ParseYearMonth(raw string) (*types.YearMonth, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	if match := monthYearRe.FindStringSubmatch(raw); match != nil {
		prefix := strings.ToLower(match[1])
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		month, ok := monthIndex[prefix]
		if !ok {
			return nil, false
		}
		year, _ := strconv.Atoi(match[2])
		return &types.YearMonth{Year: year, Month: month}, true
	}

	if match := slashMonthRe.FindStringSubmatch(raw); match != nil {
		month, _ := strconv.Atoi(match[1])
		year, _ := strconv.Atoi(match[2])
		if month < 1 || month > 12 {
			return nil, false
		}
		return &types.YearMonth{Year: year, Month: month}, true
	}

	if match := isoMonthRe.FindStringSubmatch(raw); match != nil {
		year, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		if month < 1 || month > 12 {
			return nil, false
		}
		return &types.YearMonth{Year: year, Month: month}, true
	}

	if match := bareYearOnlyRe.FindStringSubmatch(raw); match != nil {
		year, _ := strconv.Atoi(match[1])
		if year < 1900 || year > 2100 {
			return nil, false
		}
		return &types.YearMonth{Year: year}, true
	}

	return nil, false
}
