// Package segmenter 把文本块划分为带标签的简历区域。
// 通过标题行识别切分：命中关键词的标题行开启一个新区域，吸收后续
// 文本块直到下一个标题或文档结尾。区域互不重叠且覆盖全部输入块。
package segmenter

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resume-insight-go/internal/types"
)

// 默认的区域标题正则，均要求整行匹配，避免正文行误触发
var defaultHeadingPatterns = map[types.SectionType]string{
	types.SectionContact: `(?i)^\s*(contact(\s+(info|information|details))?|personal\s+(information|details))\s*:?\s*$`,
	types.SectionSummary: `(?i)^\s*((professional|career|executive)\s+summary|summary(\s+of\s+qualifications)?|(career\s+)?objective|profile|about(\s+me)?)\s*:?\s*$`,
	types.SectionSkills:  `(?i)^\s*((technical|core|key|professional)\s+skills|skills(\s+&\s+abilities)?|technolog(y|ies)|technical\s+proficiencies|core\s+competenc(y|ies)|(areas\s+of\s+)?expertise|tools(\s+(and|&)\s+technologies)?)\s*:?\s*$`,
	types.SectionExperience: `(?i)^\s*((work|professional|employment|relevant|industry)\s+(experience|history)|experience|employment(\s+history)?|career\s+history|internship(s)?(\s+experience)?)\s*:?\s*$`,
	types.SectionEducation:  `(?i)^\s*(education(al)?(\s+(background|qualifications|history))?|academic\s+(background|qualifications|history)|qualifications)\s*:?\s*$`,
	types.SectionCertifications: `(?i)^\s*(certification(s)?|certificate(s)?|license(s)?(\s+(and|&)\s+certification(s)?)?|(professional\s+)?(certifications?|development)|courses?(\s+(and|&)\s+certifications?)?)\s*:?\s*$`,
}

// 标题判定的固定优先级：一行同时命中多个模式时靠前者胜出
var headingPrecedence = []types.SectionType{
	types.SectionContact,
	types.SectionSummary,
	types.SectionSkills,
	types.SectionExperience,
	types.SectionEducation,
	types.SectionCertifications,
}

// 前导区判定用的联系方式特征
var (
	emailPattern = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)[\s.-]?)?\d{3,5}[\s.-]?\d{3,5}(?:[\s.-]?\d{2,4})?`)
)

// Config 分区器配置
type Config struct {
	// CustomHeadingPatterns 按区域类型覆盖默认标题正则
	CustomHeadingPatterns map[types.SectionType]string
}

// Segmenter 区域分区器
type Segmenter struct {
	headingRegex map[types.SectionType]*regexp.Regexp
	// headingOrder 判定时的遍历顺序，保证同一输入总得到同一结果
	headingOrder []types.SectionType
}

// New 创建分区器，编译全部标题正则
func New(config Config) (*Segmenter, error) {
	patterns := make(map[types.SectionType]string, len(defaultHeadingPatterns))
	for sectionType, pattern := range defaultHeadingPatterns {
		patterns[sectionType] = pattern
	}
	for sectionType, pattern := range config.CustomHeadingPatterns {
		patterns[sectionType] = pattern
	}

	s := &Segmenter{headingRegex: make(map[types.SectionType]*regexp.Regexp, len(patterns))}
	for sectionType, pattern := range patterns {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("编译区域标题正则失败 %s: %w", sectionType, err)
		}
		s.headingRegex[sectionType] = regex
	}

	// 先按固定优先级，再把自定义的额外类型按名称排在后面
	for _, sectionType := range headingPrecedence {
		if _, ok := s.headingRegex[sectionType]; ok {
			s.headingOrder = append(s.headingOrder, sectionType)
		}
	}
	var extras []string
	for sectionType := range s.headingRegex {
		if !slicesContains(headingPrecedence, sectionType) {
			extras = append(extras, string(sectionType))
		}
	}
	sort.Strings(extras)
	for _, extra := range extras {
		s.headingOrder = append(s.headingOrder, types.SectionType(extra))
	}

	return s, nil
}

func slicesContains(list []types.SectionType, target types.SectionType) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

// Segment 把文本块划分为有序的区域集合
// 返回的区域覆盖 100% 的输入块；第二个返回值是分区置信度：
// 一个标题都没识别到时整个文档落入 other，置信度为 low
func (s *Segmenter) Segment(ctx context.Context, blocks []types.TextBlock) ([]types.Section, string, error) {
	if len(blocks) == 0 {
		return nil, types.SegmentationLow, nil
	}

	// 第一轮：找出每个标题行开启的区域类型
	headings := make(map[int]types.SectionType)
	for _, block := range blocks {
		if sectionType, ok := s.classifyHeading(block); ok {
			headings[block.Index] = sectionType
		}
	}

	if len(headings) == 0 {
		// 完全没有标题：整个文档作为一个 other 区域，后续阶段尽力抽取
		return []types.Section{{
			Type:   types.SectionOther,
			Blocks: blocks,
		}}, types.SegmentationLow, nil
	}

	var sections []types.Section
	var current *types.Section

	for _, block := range blocks {
		if sectionType, ok := headings[block.Index]; ok {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &types.Section{
				Type:    sectionType,
				Heading: strings.TrimSpace(block.Text),
				Blocks:  []types.TextBlock{block},
			}
			continue
		}

		if current == nil {
			// 第一个标题之前的前导内容：含邮箱/电话归为 contact，否则 summary
			current = &types.Section{
				Type:   s.classifyPreamble(blocks, block.Index),
				Blocks: []types.TextBlock{block},
			}
			continue
		}

		current.Blocks = append(current.Blocks, block)
	}
	if current != nil {
		sections = append(sections, *current)
	}

	return sections, types.SegmentationHigh, nil
}

// classifyHeading 判断一个文本块是否是某个区域的标题行
func (s *Segmenter) classifyHeading(block types.TextBlock) (types.SectionType, bool) {
	line := strings.TrimSpace(block.Text)
	if line == "" {
		return "", false
	}

	for _, sectionType := range s.headingOrder {
		if s.headingRegex[sectionType].MatchString(line) {
			return sectionType, true
		}
	}
	return "", false
}

// classifyPreamble 判定第一个标题之前的前导区类型
// 从当前块起到第一个标题为止的文本中出现邮箱或电话即视为 contact
func (s *Segmenter) classifyPreamble(blocks []types.TextBlock, fromIndex int) types.SectionType {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Index < fromIndex {
			continue
		}
		if _, ok := s.classifyHeading(block); ok {
			break
		}
		sb.WriteString(block.Text)
		sb.WriteString("\n")
	}

	preamble := sb.String()
	if emailPattern.MatchString(preamble) || containsPhone(preamble) {
		return types.SectionContact
	}
	return types.SectionSummary
}

// containsPhone 判断文本中是否出现足够长的电话号码
// 正则本身较宽松，这里再要求至少 7 位数字，过滤掉年份等短数字串
func containsPhone(text string) bool {
	for _, match := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range match {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return true
		}
	}
	return false
}
