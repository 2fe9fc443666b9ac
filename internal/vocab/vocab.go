// Package vocab 管理各招聘领域的数据驱动查找表：
// 技能词表、别名表、角色分类体系以及学位/证书关键词。
// 词表在进程启动时加载一次，之后只读；更换词表需要显式重新加载。
package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoleDefinition 单个角色定义：加权技能、职位关键词与头衔加分
type RoleDefinition struct {
	Name string `yaml:"name"`
	// Skills 技能名（规范名）到权重的映射
	Skills map[string]float64 `yaml:"skills"`
	// TitleKeywords 职位名中出现即视为命中的关键词
	TitleKeywords []string `yaml:"title_keywords"`
	// TitleBonus 职位关键词命中时的加分，为 0 时该角色没有头衔加成
	TitleBonus float64 `yaml:"title_bonus"`
}

// TotalWeight 角色的满分权重（全部技能权重 + 头衔加分）
func (r *RoleDefinition) TotalWeight() float64 {
	total := r.TitleBonus
	for _, w := range r.Skills {
		total += w
	}
	return total
}

// DomainVocabulary 单个领域的完整词表
type DomainVocabulary struct {
	Domain string `yaml:"domain"`
	// Skills 规范技能名列表
	Skills []string `yaml:"skills"`
	// Aliases 表面写法（小写）到规范技能名的映射
	Aliases map[string]string `yaml:"aliases"`
	// Roles 该领域的角色分类体系
	Roles []RoleDefinition `yaml:"roles"`
	// DegreeKeywords 学位识别关键词
	DegreeKeywords []string `yaml:"degree_keywords"`
	// CertKeywords 证书识别关键词
	CertKeywords []string `yaml:"cert_keywords"`

	// skillSet 规范名的小写索引，加载时构建
	skillSet map[string]string
}

// buildIndex 构建小写查找索引
func (v *DomainVocabulary) buildIndex() {
	v.skillSet = make(map[string]string, len(v.Skills))
	for _, s := range v.Skills {
		v.skillSet[strings.ToLower(s)] = s
	}
}

// CanonicalSkill 查找 token 对应的规范技能名
// 先查别名表，再查规范名索引；两者都未命中时返回 ok=false
func (v *DomainVocabulary) CanonicalSkill(token string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	if key == "" {
		return "", false
	}
	if canonical, ok := v.Aliases[key]; ok {
		return canonical, true
	}
	if canonical, ok := v.skillSet[key]; ok {
		return canonical, true
	}
	return "", false
}

// SkillNames 返回全部规范技能名（副本）
func (v *DomainVocabulary) SkillNames() []string {
	out := make([]string, len(v.Skills))
	copy(out, v.Skills)
	return out
}

// Registry 领域词表注册中心，构建完成后只读
type Registry struct {
	domains map[string]*DomainVocabulary
}

// NewRegistry 构建带内置词表的注册中心
func NewRegistry() *Registry {
	r := &Registry{domains: make(map[string]*DomainVocabulary)}
	for _, v := range builtinVocabularies() {
		v.buildIndex()
		r.domains[v.Domain] = v
	}
	return r
}

// LoadDir 从目录加载 YAML 词表文件并覆盖同名领域
// 文件格式与 DomainVocabulary 的 yaml 标签一致，一个文件一个领域
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("读取词表目录失败: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("读取词表文件 %s 失败: %w", name, err)
		}

		var v DomainVocabulary
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("解析词表文件 %s 失败: %w", name, err)
		}
		if v.Domain == "" {
			return fmt.Errorf("词表文件 %s 缺少 domain 字段", name)
		}

		v.buildIndex()
		r.domains[strings.ToLower(v.Domain)] = &v
	}

	return nil
}

// Domain 按名称查找领域词表
func (r *Registry) Domain(name string) (*DomainVocabulary, error) {
	v, ok := r.domains[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("未知领域: %s (可用: %s)", name, strings.Join(r.DomainNames(), ", "))
	}
	return v, nil
}

// DomainNames 返回全部已注册的领域名，按字典序排列
func (r *Registry) DomainNames() []string {
	names := make([]string, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
