// Package extractor 对每个简历区域应用模式规则，抽取带置信度的类型化字段。
// 抽取失败从不致命：缺失的字段记录为缺失，由报告呈现给调用方。
// 置信度反映匹配质量：词表/正则精确命中为 1.0，模糊命中按匹配强度
// 折算，自由文本兜底使用配置的固定低值。
package extractor

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

// 联系方式的识别模式
var (
	emailRe = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// 电话：国际格式、带区号格式和裸 10 位号码
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{3,5}[\s.-]?\d{3,5}(?:[\s.-]?\d{2,4})?`),
		regexp.MustCompile(`\(\d{2,4}\)[\s.-]?\d{3,4}[\s.-]?\d{3,4}`),
		regexp.MustCompile(`\b\d{3}[\s.-]\d{3}[\s.-]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w%-]+`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w.-]+`)
	// 姓名：位置最高的首字母大写行
	nameRe = regexp.MustCompile(`^[A-Z][A-Za-z'’.-]+(?:\s+[A-Z][A-Za-z'’.-]+){1,3}$`)
)

// 技能列表的切分符：逗号、分号、竖线、斜杠、项目符号与换行
var skillDelimRe = regexp.MustCompile(`[,;|/\n\t]|•|·|▪|‣|●|(?:^|\s)[-*]\s`)

// Extraction 抽取阶段的完整输出
// 标量字段进入 Fields；技能和经历条目天然多值，保留为列表
type Extraction struct {
	Fields         []types.ExtractedField
	Skills         []types.SkillEntry
	Experience     []types.JobEntry
	Education      []types.EducationEntry
	Certifications []types.CertificationEntry
	Summary        string
}

// Config 抽取器配置
type Config struct {
	// FuzzyThreshold 技能模糊匹配的编辑距离上限
	FuzzyThreshold int
	// FallbackConfidence 自由文本兜底的固定置信度
	FallbackConfidence float64
}

// Extractor 字段抽取器，绑定一个领域词表
type Extractor struct {
	vocabulary *vocab.DomainVocabulary
	config     Config
	logger     zerolog.Logger
}

// New 创建字段抽取器
func New(vocabulary *vocab.DomainVocabulary, config Config) *Extractor {
	if config.FuzzyThreshold <= 0 {
		config.FuzzyThreshold = 2
	}
	if config.FallbackConfidence <= 0 {
		config.FallbackConfidence = 0.3
	}
	return &Extractor{
		vocabulary: vocabulary,
		config:     config,
		logger:     logger.Logger.With().Str("component", "extractor").Logger(),
	}
}

// Extract 对全部区域执行逐区域抽取
// fullText 用于链接收集和无对应区域时的兜底扫描
func (e *Extractor) Extract(ctx context.Context, sections []types.Section, fullText string) *Extraction {
	out := &Extraction{}

	seen := make(map[types.SectionType]bool)
	for i := range sections {
		section := &sections[i]
		seen[section.Type] = true

		switch section.Type {
		case types.SectionContact:
			e.extractContact(section, out)
		case types.SectionSummary:
			e.extractSummary(section, out)
		case types.SectionSkills:
			e.extractSkills(section, out)
		case types.SectionExperience:
			e.extractExperience(section, out)
		case types.SectionEducation:
			e.extractEducation(section, out)
		case types.SectionCertifications:
			e.extractCertifications(section, out)
		}
	}

	// 没有对应区域时对全文做尽力而为的扫描
	if !seen[types.SectionContact] {
		e.scanContactFallback(fullText, sections, out)
	}
	if !seen[types.SectionSkills] {
		e.scanSkillsFallback(fullText, out)
	}

	// 链接可能出现在任何位置，统一从全文收集
	e.harvestLinks(fullText, out)

	e.logger.Debug().
		Int("fields", len(out.Fields)).
		Int("skills", len(out.Skills)).
		Int("experience", len(out.Experience)).
		Int("education", len(out.Education)).
		Msg("字段抽取完成")

	return out
}

// extractContact 从联系方式区域抽取邮箱、电话和姓名
func (e *Extractor) extractContact(section *types.Section, out *Extraction) {
	text := section.Text()

	if match := emailRe.FindString(text); match != "" {
		out.addField(types.FieldEmail, match, section.Type, 1.0)
	}

	if phone := findPhone(text); phone != "" {
		out.addField(types.FieldPhone, phone, section.Type, 1.0)
	}

	// 姓名取位置最高的首字母大写行
	for _, block := range section.Blocks {
		line := strings.TrimSpace(block.Text)
		if line == "" || strings.Contains(line, "@") {
			continue
		}
		if nameRe.MatchString(line) {
			out.addField(types.FieldName, line, section.Type, 0.9)
			return
		}
	}

	// 兜底：第一个不含数字和链接的非空行
	for _, block := range section.Blocks {
		line := strings.TrimSpace(block.Text)
		if line == "" || strings.ContainsAny(line, "@0123456789") || strings.Contains(line, "/") {
			continue
		}
		out.addField(types.FieldName, line, section.Type, e.config.FallbackConfidence)
		return
	}
}

// extractSummary 把概述区域的正文合并为单个摘要字段
func (e *Extractor) extractSummary(section *types.Section, out *Extraction) {
	var lines []string
	for _, block := range section.Blocks {
		line := strings.TrimSpace(block.Text)
		if line == "" || strings.TrimSpace(section.Heading) == line {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	summary := strings.Join(lines, " ")
	if out.Summary == "" {
		out.Summary = summary
		out.addField(types.FieldSummary, summary, section.Type, 0.8)
	}
}

// extractSkills 切分技能区域并逐个匹配领域词表
// 未命中的 token 以低置信度保留，避免新技能被静默丢弃
func (e *Extractor) extractSkills(section *types.Section, out *Extraction) {
	body := sectionBody(section)
	for _, token := range tokenizeSkills(body) {
		name, confidence, matched := e.matchSkill(token)
		if !matched {
			name = token
			confidence = e.config.FallbackConfidence
		}
		out.Skills = append(out.Skills, types.SkillEntry{
			Name:       name,
			Raw:        token,
			Confidence: confidence,
		})
	}
}

// matchSkill 把 token 和词表比对：先精确（含别名），再按编辑距离模糊匹配
func (e *Extractor) matchSkill(token string) (string, float64, bool) {
	if canonical, ok := e.vocabulary.CanonicalSkill(token); ok {
		return canonical, 1.0, true
	}

	lowered := strings.ToLower(token)
	bestDistance := e.config.FuzzyThreshold + 1
	bestName := ""
	for _, canonical := range e.vocabulary.SkillNames() {
		distance := levenshtein.ComputeDistance(lowered, strings.ToLower(canonical))
		if distance < bestDistance {
			bestDistance = distance
			bestName = canonical
		}
	}

	if bestName == "" || bestDistance > e.config.FuzzyThreshold {
		return "", 0, false
	}

	// 置信度与匹配强度成正比：距离越大越低
	longer := utf8.RuneCountInString(bestName)
	if n := utf8.RuneCountInString(token); n > longer {
		longer = n
	}
	confidence := 1.0 - float64(bestDistance)/float64(longer)
	if confidence < e.config.FallbackConfidence {
		confidence = e.config.FallbackConfidence
	}
	return bestName, confidence, true
}

// harvestLinks 从全文收集 LinkedIn / GitHub 链接
func (e *Extractor) harvestLinks(fullText string, out *Extraction) {
	if match := linkedinRe.FindString(fullText); match != "" {
		out.addField(types.FieldLinkedIn, ensureHTTPS(match), types.SectionContact, 0.9)
	}
	if match := githubRe.FindString(fullText); match != "" {
		out.addField(types.FieldGitHub, ensureHTTPS(match), types.SectionContact, 0.9)
	}
}

// scanContactFallback 没有联系方式区域时扫描全文
func (e *Extractor) scanContactFallback(fullText string, sections []types.Section, out *Extraction) {
	if match := emailRe.FindString(fullText); match != "" {
		out.addField(types.FieldEmail, match, types.SectionOther, 0.7)
	}
	if phone := findPhone(fullText); phone != "" {
		out.addField(types.FieldPhone, phone, types.SectionOther, 0.7)
	}

	// 姓名仍然取全文中位置最高的大写行
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if nameRe.MatchString(line) {
			out.addField(types.FieldName, line, types.SectionOther, 0.6)
		}
		break
	}
}

// scanSkillsFallback 没有技能区域时对全文 token 做词表精确匹配
// 兜底模式下不保留未命中的 token，避免把正文噪声当成技能
func (e *Extractor) scanSkillsFallback(fullText string, out *Extraction) {
	found := make(map[string]bool)
	for _, token := range tokenizeSkills(fullText) {
		canonical, ok := e.vocabulary.CanonicalSkill(token)
		if !ok || found[canonical] {
			continue
		}
		found[canonical] = true
		out.Skills = append(out.Skills, types.SkillEntry{
			Name:       canonical,
			Raw:        token,
			Confidence: 0.7,
		})
	}
}

// addField 追加一个抽取字段
func (x *Extraction) addField(name, value string, section types.SectionType, confidence float64) {
	x.Fields = append(x.Fields, types.ExtractedField{
		Name:       name,
		Value:      value,
		Section:    section,
		Confidence: confidence,
	})
}

// findPhone 依次尝试各电话格式，返回第一个命中
func findPhone(text string) string {
	for _, re := range phoneRes {
		if match := re.FindString(text); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

// tokenizeSkills 按常见分隔符切分技能文本
func tokenizeSkills(text string) []string {
	raw := skillDelimRe.Split(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(strings.Trim(token, "-*•·:"))
		if token == "" {
			continue
		}
		// 过长的片段是句子而不是技能
		if utf8.RuneCountInString(token) > 40 || len(strings.Fields(token)) > 4 {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// sectionBody 返回区域正文（去掉标题行）
func sectionBody(section *types.Section) string {
	var sb strings.Builder
	heading := strings.TrimSpace(section.Heading)
	for _, block := range section.Blocks {
		if heading != "" && strings.TrimSpace(block.Text) == heading {
			continue
		}
		sb.WriteString(block.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ensureHTTPS 补全链接协议头
func ensureHTTPS(url string) string {
	if strings.HasPrefix(strings.ToLower(url), "http") {
		return url
	}
	return "https://" + url
}
