package extractor

import (
	"regexp"
	"strings"

	"resume-insight-go/internal/types"
)

// 日期 token：月份+年份、MM/YYYY 或裸年份
const dateTokenPattern = `(?:(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?,?\s*\d{4}|\d{1,2}\s*/\s*\d{4}|\d{4})`

// 日期区间：起始 token + 分隔符 + 结束 token 或进行中标记
var dateRangeRe = regexp.MustCompile(`(?i)(` + dateTokenPattern + `)\s*(?:-|–|—|~|to|till|until)\s*(` + dateTokenPattern + `|present|current|now|ongoing|date)`)

// 进行中标记
var openEndRe = regexp.MustCompile(`(?i)^(present|current|now|ongoing|date)$`)

// 裸年份，教育条目常只写毕业年份
var bareYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// 职位行的结构模式，按解析优先级排列
var (
	titleAtEmployerRe   = regexp.MustCompile(`^(.{2,60}?)\s+(?:at|@)\s+(.{2,80})$`)
	employerDashTitleRe = regexp.MustCompile(`^(.{2,80}?)\s*[—–|]\s*(.{2,60})$`)
	titleCommaEmployerRe = regexp.MustCompile(`^(.{2,60}?),\s*(.{2,80})$`)
)

// extractExperience 把工作经历区域按空行切成条目，逐条解析职位、
// 雇主和日期区间。原始日期字符串保留在 StartRaw/EndRaw，规范化
// 阶段再转换为 YearMonth
func (e *Extractor) extractExperience(section *types.Section, out *Extraction) {
	for _, chunk := range splitEntries(section) {
		entry := e.parseJobEntry(chunk)
		if entry != nil {
			out.Experience = append(out.Experience, *entry)
		}
	}
}

// parseJobEntry 解析单个工作经历条目
// 条目的第一行（或前两行之一）携带职位/雇主，日期区间可在任意行
func (e *Extractor) parseJobEntry(lines []string) *types.JobEntry {
	if len(lines) == 0 {
		return nil
	}

	entry := &types.JobEntry{}

	// 先定位日期区间并从行中剥离，剩下的才是职位行
	var cleaned []string
	for _, line := range lines {
		if entry.StartRaw == "" {
			if match := dateRangeRe.FindStringSubmatch(line); match != nil {
				entry.StartRaw = strings.TrimSpace(match[1])
				end := strings.TrimSpace(match[2])
				if openEndRe.MatchString(end) {
					entry.Current = true
				} else {
					entry.EndRaw = end
				}
				line = strings.TrimSpace(dateRangeRe.ReplaceAllString(line, ""))
				line = strings.Trim(line, "()[],|—–- \t")
			}
		}
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	if len(cleaned) > 0 {
		parseTitleLine(cleaned[0], entry)
		if entry.Employer == "" && len(cleaned) > 1 {
			// 雇主可能单独占第二行
			if second := strings.TrimSpace(cleaned[1]); looksLikeEmployer(second) {
				entry.Employer = second
				cleaned = append(cleaned[:1], cleaned[2:]...)
			}
		}
	}
	if len(cleaned) > 1 {
		entry.Description = strings.Join(cleaned[1:], "\n")
	}

	if entry.Title == "" && entry.StartRaw == "" {
		// 既没有职位也没有日期，不是一个可用条目
		return nil
	}

	entry.Confidence = jobConfidence(entry, e.config.FallbackConfidence)
	return entry
}

// parseTitleLine 从职位行解析职位和雇主
// 支持 "Title at Employer"、"Employer — Title"、"Title | Employer"
// 和 "Title, Employer" 四种写法
func parseTitleLine(line string, entry *types.JobEntry) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if match := titleAtEmployerRe.FindStringSubmatch(line); match != nil {
		entry.Title = strings.TrimSpace(match[1])
		entry.Employer = strings.TrimSpace(match[2])
		return
	}
	if match := employerDashTitleRe.FindStringSubmatch(line); match != nil {
		left, right := strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
		// 破折号两侧的归属看哪边更像职位
		if looksLikeTitle(right) || !looksLikeTitle(left) {
			entry.Employer, entry.Title = left, right
		} else {
			entry.Title, entry.Employer = left, right
		}
		return
	}
	if match := titleCommaEmployerRe.FindStringSubmatch(line); match != nil {
		entry.Title = strings.TrimSpace(match[1])
		entry.Employer = strings.TrimSpace(match[2])
		return
	}

	entry.Title = line
}

// 职位行中的高频词
var titleWords = []string{
	"engineer", "developer", "manager", "analyst", "consultant", "architect",
	"designer", "specialist", "lead", "director", "intern", "officer",
	"nurse", "assistant", "accountant", "scientist", "administrator", "technician",
}

// looksLikeTitle 判断一段文本是否更像职位名而不是公司名
func looksLikeTitle(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range titleWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// 公司名的常见后缀
var employerSuffixes = []string{
	"inc", "inc.", "llc", "ltd", "ltd.", "corp", "corp.", "co.", "gmbh",
	"technologies", "solutions", "systems", "labs", "group", "pvt",
}

// looksLikeEmployer 判断一行是否像公司名：短且带公司后缀，或不含职位词
func looksLikeEmployer(line string) bool {
	if len(strings.Fields(line)) > 6 || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		return false
	}
	lowered := strings.ToLower(line)
	for _, suffix := range employerSuffixes {
		if strings.Contains(lowered, suffix) {
			return true
		}
	}
	return !looksLikeTitle(line) && len(strings.Fields(line)) <= 4
}

// jobConfidence 按解析出的成分给条目打分
// 职位+雇主+日期齐全 0.9，缺一项 0.6，只剩自由文本用兜底值
func jobConfidence(entry *types.JobEntry, fallback float64) float64 {
	have := 0
	if entry.Title != "" {
		have++
	}
	if entry.Employer != "" {
		have++
	}
	if entry.StartRaw != "" {
		have++
	}

	switch have {
	case 3:
		return 0.9
	case 2:
		return 0.6
	default:
		return fallback
	}
}

// extractEducation 解析教育背景区域
// 每个条目识别学位行（含学位关键词）和院校行
func (e *Extractor) extractEducation(section *types.Section, out *Extraction) {
	for _, chunk := range splitEntries(section) {
		entry := e.parseEducationEntry(chunk)
		if entry != nil {
			out.Education = append(out.Education, *entry)
		}
	}
}

// 院校名的特征词
var institutionWords = []string{
	"university", "college", "institute", "school", "academy", "polytechnic",
}

func (e *Extractor) parseEducationEntry(lines []string) *types.EducationEntry {
	if len(lines) == 0 {
		return nil
	}

	entry := &types.EducationEntry{}
	var leftovers []string

	for _, line := range lines {
		lowered := strings.ToLower(line)

		if entry.PeriodRaw == "" {
			if match := dateRangeRe.FindString(line); match != "" {
				entry.PeriodRaw = strings.TrimSpace(match)
			} else if match := bareYearRe.FindString(line); match != "" {
				entry.PeriodRaw = match
			}
		}

		switch {
		case entry.Degree == "" && containsAny(lowered, e.vocabulary.DegreeKeywords):
			entry.Degree = strings.TrimSpace(line)
		case entry.Institution == "" && containsAny(lowered, institutionWords):
			entry.Institution = strings.TrimSpace(line)
		default:
			leftovers = append(leftovers, line)
		}
	}

	// 两者都没识别出来时退回位置约定：第一行学位，第二行院校
	if entry.Degree == "" && len(leftovers) > 0 {
		entry.Degree = strings.TrimSpace(leftovers[0])
		leftovers = leftovers[1:]
	}
	if entry.Institution == "" && len(leftovers) > 0 {
		entry.Institution = strings.TrimSpace(leftovers[0])
	}

	if entry.Degree == "" && entry.Institution == "" {
		return nil
	}

	if containsAny(strings.ToLower(entry.Degree), e.vocabulary.DegreeKeywords) {
		entry.Confidence = 0.9
	} else {
		entry.Confidence = e.config.FallbackConfidence
	}
	return entry
}

// extractCertifications 解析证书区域，逐行识别
// 含领域证书关键词的行置信度高，其余行低置信度保留
func (e *Extractor) extractCertifications(section *types.Section, out *Extraction) {
	heading := strings.TrimSpace(section.Heading)
	for _, block := range section.Blocks {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(block.Text), "-*•·● "))
		if line == "" || line == heading {
			continue
		}

		confidence := e.config.FallbackConfidence
		if containsAny(strings.ToLower(line), e.vocabulary.CertKeywords) {
			confidence = 0.9
		}
		out.Certifications = append(out.Certifications, types.CertificationEntry{
			Name:       line,
			Confidence: confidence,
		})
	}
}

// splitEntries 把区域正文按空行切成条目，每个条目是去过空白的行集合
func splitEntries(section *types.Section) [][]string {
	heading := strings.TrimSpace(section.Heading)

	var entries [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, current)
			current = nil
		}
	}

	for _, block := range section.Blocks {
		line := strings.TrimSpace(block.Text)
		if line == "" {
			flush()
			continue
		}
		if line == heading {
			continue
		}
		current = append(current, line)
	}
	flush()

	return entries
}

// containsAny 判断文本中是否出现任一关键词
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
