// Package classifier 基于领域词表对候选人画像做角色匹配和经验分级。
// 规则打分是确定性的：角色得分 = 命中技能权重之和（外加职位关键词
// 加成），再按角色总权重归一到 [0,1]。可选的外部模型结果作为补充，
// 外部调用失败从不影响规则结果。
package classifier

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/types"
	"resume-insight-go/internal/vocab"
)

// ExternalClassifier 外部角色分类能力
// 实现方接收画像的文本描述，返回一个角色标签和置信度
type ExternalClassifier interface {
	Classify(ctx context.Context, text string) (label string, confidence float64, err error)
}

// 职位中出现这些词时经验级别至少为 mid
var seniorTitleWords = []string{
	"senior", "lead", "principal", "staff", "head", "director", "chief", "vp",
}

// Config 分类器配置
type Config struct {
	// MinRoleConfidence 角色入选的最低归一化得分
	MinRoleConfidence float64
	// MidYears / SeniorYears 经验分级的年限阈值
	MidYears    float64
	SeniorYears float64
}

// Classifier 角色分类器
type Classifier struct {
	vocabulary *vocab.DomainVocabulary
	config     Config
	external   ExternalClassifier
	now        func() time.Time
	logger     zerolog.Logger
}

// Option 分类器配置选项
type Option func(*Classifier)

// WithExternal 挂载外部分类能力
func WithExternal(external ExternalClassifier) Option {
	return func(c *Classifier) {
		c.external = external
	}
}

// WithNow 注入时钟，开放区间的经验计算依赖当前时间
func WithNow(now func() time.Time) Option {
	return func(c *Classifier) {
		c.now = now
	}
}

// New 创建角色分类器
func New(vocabulary *vocab.DomainVocabulary, config Config, options ...Option) *Classifier {
	if config.MinRoleConfidence <= 0 {
		config.MinRoleConfidence = 0.1
	}
	if config.MidYears <= 0 {
		config.MidYears = 2
	}
	if config.SeniorYears <= 0 {
		config.SeniorYears = 6
	}

	c := &Classifier{
		vocabulary: vocabulary,
		config:     config,
		now:        time.Now,
		logger:     logger.Logger.With().Str("component", "classifier").Logger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Classify 对画像打分，返回分类结果和过程备注
// 备注用于报告呈现，例如外部模型调用失败
func (c *Classifier) Classify(ctx context.Context, profile *types.CandidateProfile) (*types.ClassificationResult, []string) {
	var notes []string

	result := &types.ClassificationResult{
		Roles: c.scoreRoles(profile),
	}

	result.TotalExperienceMonths = c.totalExperienceMonths(profile.Experience)
	result.ExperienceLevel = c.experienceLevel(result.TotalExperienceMonths, profile.Experience)

	if c.external != nil {
		if note := c.mergeExternal(ctx, profile, result); note != "" {
			notes = append(notes, note)
		}
	}

	c.logger.Debug().
		Int("roles", len(result.Roles)).
		Str("level", string(result.ExperienceLevel)).
		Int("experience_months", result.TotalExperienceMonths).
		Msg("角色分类完成")

	return result, notes
}

// scoreRoles 对词表中的每个角色定义计算归一化得分
func (c *Classifier) scoreRoles(profile *types.CandidateProfile) []types.RoleMatch {
	skillSet := make(map[string]bool, len(profile.Skills))
	for _, skill := range profile.Skills {
		skillSet[strings.ToLower(skill.Name)] = true
	}

	var titles []string
	for _, entry := range profile.Experience {
		titles = append(titles, strings.ToLower(entry.Title))
	}

	var matches []types.RoleMatch
	for _, role := range c.vocabulary.Roles {
		matched := 0.0
		for skill, weight := range role.Skills {
			if skillSet[strings.ToLower(skill)] {
				matched += weight
			}
		}

		bonus := 0.0
		if titleHits(titles, role.TitleKeywords) {
			bonus = role.TitleBonus
		}

		// 满分即角色总权重（已含头衔加分）：技能全中且头衔命中时得 1.0
		denominator := role.TotalWeight()
		if denominator <= 0 {
			continue
		}
		confidence := (matched + bonus) / denominator
		if confidence < c.config.MinRoleConfidence {
			continue
		}

		matches = append(matches, types.RoleMatch{
			Domain:        c.vocabulary.Domain,
			Role:          role.Name,
			Confidence:    confidence,
			MatchedWeight: matched,
			Source:        "rule",
		})
	}

	sortRoleMatches(matches)

	return matches
}

// sortRoleMatches 得分降序；同分时命中权重高者优先，再按名称保证确定性
func sortRoleMatches(matches []types.RoleMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].MatchedWeight != matches[j].MatchedWeight {
			return matches[i].MatchedWeight > matches[j].MatchedWeight
		}
		return matches[i].Role < matches[j].Role
	})
}

// titleHits 判断任一职位是否包含任一角色关键词
func titleHits(titles []string, keywords []string) bool {
	for _, title := range titles {
		for _, keyword := range keywords {
			if strings.Contains(title, keyword) {
				return true
			}
		}
	}
	return false
}

// monthSpan 一段经历在时间轴上的闭区间，单位为从公元起的月序
type monthSpan struct {
	start int
	end   int
}

// totalExperienceMonths 计算总经验月数
// 区间先合并再求和，重叠的经历不会重复计入
func (c *Classifier) totalExperienceMonths(entries []types.JobEntry) int {
	nowTime := c.now()
	nowMonths := nowTime.Year()*12 + int(nowTime.Month()) - 1

	var spans []monthSpan
	for _, entry := range entries {
		if entry.Start == nil {
			continue
		}
		start := entry.Start.Year*12 + monthOrJanuary(entry.Start.Month) - 1

		end := nowMonths
		if entry.End != nil {
			end = entry.End.Year*12 + monthOrJanuary(entry.End.Month) - 1
		} else if !entry.Current {
			// 没有结束日期也没有进行中标记，按单月计
			end = start + 1
		}
		if end > nowMonths {
			end = nowMonths
		}
		if end <= start {
			continue
		}
		spans = append(spans, monthSpan{start: start, end: end})
	}

	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	total := 0
	current := spans[0]
	for _, span := range spans[1:] {
		if span.start <= current.end {
			if span.end > current.end {
				current.end = span.end
			}
			continue
		}
		total += current.end - current.start
		current = span
	}
	total += current.end - current.start

	return total
}

// monthOrJanuary 仅年份的日期按一月计
func monthOrJanuary(month int) int {
	if month <= 0 {
		return 1
	}
	return month
}

// experienceLevel 按月数分档，职位中的高级别关键词可把结果抬到 mid
func (c *Classifier) experienceLevel(months int, entries []types.JobEntry) types.ExperienceLevel {
	years := float64(months) / 12

	level := types.LevelEntry
	switch {
	case years >= c.config.SeniorYears:
		level = types.LevelSenior
	case years >= c.config.MidYears:
		level = types.LevelMid
	}

	if level == types.LevelEntry {
		for _, entry := range entries {
			lowered := strings.ToLower(entry.Title)
			for _, word := range seniorTitleWords {
				if strings.Contains(lowered, word) {
					return types.LevelMid
				}
			}
		}
	}

	return level
}

// mergeExternal 调用外部分类能力并把结果并入规则结果
// 返回非空字符串表示一条报告备注；外部失败只降级，不影响规则结果
func (c *Classifier) mergeExternal(ctx context.Context, profile *types.CandidateProfile, result *types.ClassificationResult) string {
	label, confidence, err := c.external.Classify(ctx, profileText(profile))
	if err != nil {
		c.logger.Warn().Err(err).Msg("外部分类调用失败，仅保留规则结果")
		return "外部分类不可用: " + err.Error()
	}
	if label == "" {
		return ""
	}

	merged := false
	for i := range result.Roles {
		if strings.EqualFold(result.Roles[i].Role, label) {
			if confidence > result.Roles[i].Confidence {
				result.Roles[i].Confidence = confidence
			}
			result.Roles[i].Source = "rule+external"
			merged = true
			break
		}
	}
	if !merged {
		result.Roles = append(result.Roles, types.RoleMatch{
			Domain:     c.vocabulary.Domain,
			Role:       label,
			Confidence: confidence,
			Source:     "external",
		})
	}

	// 外部结果并入后重新排序，保持置信度降序的约定
	sortRoleMatches(result.Roles)
	return ""
}

// profileText 把画像压成一段供外部模型使用的描述文本
func profileText(profile *types.CandidateProfile) string {
	var sb strings.Builder

	if profile.Summary != "" {
		sb.WriteString(profile.Summary)
		sb.WriteString("\n")
	}

	if len(profile.Skills) > 0 {
		names := make([]string, 0, len(profile.Skills))
		for _, skill := range profile.Skills {
			names = append(names, skill.Name)
		}
		sb.WriteString("Skills: ")
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString("\n")
	}

	for _, entry := range profile.Experience {
		sb.WriteString(entry.Title)
		if entry.Employer != "" {
			sb.WriteString(" at ")
			sb.WriteString(entry.Employer)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
