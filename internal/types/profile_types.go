package types

// SectionType 表示简历区域类型，取值为固定的封闭集合
type SectionType string

const (
	// SectionContact 联系方式区域
	SectionContact SectionType = "contact"
	// SectionSummary 个人概述区域
	SectionSummary SectionType = "summary"
	// SectionSkills 技能区域
	SectionSkills SectionType = "skills"
	// SectionExperience 工作经历区域
	SectionExperience SectionType = "experience"
	// SectionEducation 教育经历区域
	SectionEducation SectionType = "education"
	// SectionCertifications 证书区域
	SectionCertifications SectionType = "certifications"
	// SectionOther 未分类内容区域
	SectionOther SectionType = "other"
)

// LayoutTag 表示文本行的版式标签
type LayoutTag string

const (
	// LayoutHeading 标题行
	LayoutHeading LayoutTag = "heading"
	// LayoutBody 正文行
	LayoutBody LayoutTag = "body"
	// LayoutListItem 列表项行
	LayoutListItem LayoutTag = "list-item"
)

// RawDocument 上传的原始文档，管道的唯一输入
// 管道运行结束后即丢弃，是否持久化由外部存储层决定
type RawDocument struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Content  []byte `json:"-"`
}

// TextBlock 带版式标签的文本行，由加载器产出、分区器消费
type TextBlock struct {
	Index int       `json:"index"` // 在文档中的位置序号
	Text  string    `json:"text"`
	Tag   LayoutTag `json:"tag"`
}

// Section 一个带标签的简历区域及其包含的文本块
// 各区域互不重叠，合起来覆盖整个文档；无法归类的内容落入 other
type Section struct {
	Type    SectionType `json:"type"`
	Heading string      `json:"heading,omitempty"` // 触发该区域的原始标题行，可能为空
	Blocks  []TextBlock `json:"blocks"`
}

// Text 返回区域内全部文本块拼接后的文本
func (s *Section) Text() string {
	var out string
	for i, b := range s.Blocks {
		if i > 0 {
			out += "\n"
		}
		out += b.Text
	}
	return out
}

// ExtractedField 单个抽取结果：字段名、原始值、来源区域与置信度
// 同一逻辑槽位可能有多个候选（例如两个电话号码），由汇编器保留置信度最高者；
// 列表型字段（技能、经历条目）天然允许多值
type ExtractedField struct {
	Name       string      `json:"name"`
	Value      string      `json:"value"`
	Section    SectionType `json:"section"`
	Confidence float64     `json:"confidence"` // [0,1]，启发式评分而非标定概率
}

// 常用字段槽位名
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldSummary  = "summary"
	FieldSkill    = "skill"
)

// YearMonth 日期的规范表示，只保留年和月
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12，0 表示仅知道年份
}

// Before 判断 ym 是否早于或等于 other（月份未知时只比较年份）
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	if ym.Month == 0 || other.Month == 0 {
		return true
	}
	return ym.Month <= other.Month
}

// JobEntry 一段工作经历
// End 为 nil 表示开放式结束（Present/Current）
type JobEntry struct {
	Title      string     `json:"title"`
	Employer   string     `json:"employer"`
	StartRaw   string     `json:"start_raw,omitempty"` // 抽取到的原始日期文本
	EndRaw     string     `json:"end_raw,omitempty"`
	Start      *YearMonth `json:"start,omitempty"` // 规范化后的日期，由规范化器填充
	End        *YearMonth `json:"end,omitempty"`
	Current    bool       `json:"current"` // 开放式结束标记
	Description string    `json:"description,omitempty"`
	Confidence float64    `json:"confidence"`
}

// EducationEntry 一段教育经历
type EducationEntry struct {
	Degree      string  `json:"degree"`
	Institution string  `json:"institution,omitempty"`
	PeriodRaw   string  `json:"period_raw,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// SkillEntry 规范化后的单项技能
type SkillEntry struct {
	Name       string  `json:"name"`              // 别名解析后的规范名
	Raw        string  `json:"raw,omitempty"`     // 简历中的原始写法（与规范名不同时保留）
	Confidence float64 `json:"confidence"`
}

// CertificationEntry 单项证书
type CertificationEntry struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// CandidateProfile 规范化后的候选人画像，最终输出的主体
// 不变式：工作经历的 start <= end（或 end 开放）；技能列表在别名解析后无重复
type CandidateProfile struct {
	Name           string               `json:"name,omitempty"`
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	LinkedIn       string               `json:"linkedin,omitempty"`
	GitHub         string               `json:"github,omitempty"`
	Summary        string               `json:"summary,omitempty"`
	Skills         []SkillEntry         `json:"skills"`
	Experience     []JobEntry           `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	// Unusable 表示画像同时缺少姓名和任何联系方式
	// 这是保留标记而非错误，是否接受残缺画像由调用方决定
	Unusable bool `json:"unusable"`
}

// ExperienceLevel 经验级别分桶
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// RoleMatch 单个 (领域, 角色, 置信度) 匹配结果
type RoleMatch struct {
	Domain     string  `json:"domain"`
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
	// MatchedWeight 命中的技能权重合计，用于并列时的排序依据
	MatchedWeight float64 `json:"matched_weight"`
	// Source 标注该结果来自规则评分还是外部模型
	Source string `json:"source,omitempty"`
}

// ClassificationResult 角色分类结果
// 各角色的置信度彼此独立，不构成概率分布，总和不必为 1
type ClassificationResult struct {
	// Roles 按置信度降序排列；空列表表示信号不足，不是错误
	Roles []RoleMatch `json:"roles"`
	// ExperienceLevel 独立于角色匹配，由累计工作月数推导
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	// TotalExperienceMonths 全部工作经历的累计月数
	TotalExperienceMonths int `json:"total_experience_months"`
}

// ExtractionReport 单次管道运行的抽取报告
// 汇编器完成后即不再修改，作为单个不可变结果交给外部边界层
type ExtractionReport struct {
	ReportID string `json:"report_id"`
	// FieldConfidence 每个成功抽取字段的置信度
	FieldConfidence map[string]float64 `json:"field_confidence"`
	// MissingFields 未能定位的字段列表，供下游或人工复核参考
	MissingFields []string `json:"missing_fields"`
	// SegmentationConfidence 分区置信度：high 或 low
	SegmentationConfidence string `json:"segmentation_confidence"`
	// Notes 各阶段附加的诊断信息
	Notes []string `json:"notes,omitempty"`
	// GeneratedAt 报告生成时间（Unix 秒）
	GeneratedAt int64 `json:"generated_at"`
}

// 分区置信度取值
const (
	SegmentationHigh = "high"
	SegmentationLow  = "low"
)

// ParseResult 管道的完整输出：画像 + 分类 + 报告
// 字段名与嵌套结构跨版本保持稳定，外部持久化层按原样存储
type ParseResult struct {
	Profile        CandidateProfile     `json:"profile"`
	Classification ClassificationResult `json:"classification"`
	Report         ExtractionReport     `json:"report"`
}
