package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltinDomains(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"finance", "healthcare", "it", "mechanical"}, r.DomainNames())

	for _, name := range r.DomainNames() {
		v, err := r.Domain(name)
		require.NoError(t, err)
		assert.NotEmpty(t, v.Skills, "domain %s", name)
		assert.NotEmpty(t, v.Roles, "domain %s", name)
		assert.NotEmpty(t, v.DegreeKeywords, "domain %s", name)
	}
}

func TestDomainUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Domain("astrology")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "astrology")
}

func TestCanonicalSkill(t *testing.T) {
	r := NewRegistry()
	v, err := r.Domain("it")
	require.NoError(t, err)

	tests := []struct {
		token     string
		canonical string
		ok        bool
	}{
		{"Go", "Go", true},
		{"go", "Go", true},
		{"golang", "Go", true},
		{"JS", "JavaScript", true},
		{"ReactJS", "React", true},
		{"k8s", "Kubernetes", true},
		{"  docker  ", "Docker", true},
		{"underwater basketry", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		canonical, ok := v.CanonicalSkill(tt.token)
		assert.Equal(t, tt.ok, ok, "token: %q", tt.token)
		assert.Equal(t, tt.canonical, canonical, "token: %q", tt.token)
	}
}

func TestRoleTotalWeight(t *testing.T) {
	role := RoleDefinition{
		Skills:     map[string]float64{"A": 3, "B": 2},
		TitleBonus: 3,
	}
	assert.Equal(t, 8.0, role.TotalWeight())
}

// 外部 YAML 词表覆盖同名内置领域，新增领域直接注册
func TestLoadDirOverridesAndAdds(t *testing.T) {
	dir := t.TempDir()

	itOverride := `domain: it
skills:
  - Zig
aliases:
  ziglang: Zig
roles:
  - name: Systems Programmer
    skills:
      Zig: 3
    title_keywords:
      - systems
    title_bonus: 2
degree_keywords:
  - bachelor
cert_keywords:
  - certified
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "it.yaml"), []byte(itOverride), 0o644))

	legal := `domain: legal
skills:
  - Contract Law
roles:
  - name: Paralegal
    skills:
      Contract Law: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legal.yml"), []byte(legal), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir))

	it, err := r.Domain("it")
	require.NoError(t, err)
	canonical, ok := it.CanonicalSkill("ziglang")
	require.True(t, ok)
	assert.Equal(t, "Zig", canonical)
	_, ok = it.CanonicalSkill("golang")
	assert.False(t, ok, "覆盖后内置别名不应保留")

	legalVocab, err := r.Domain("legal")
	require.NoError(t, err)
	assert.Equal(t, "legal", legalVocab.Domain)
}

func TestLoadDirRejectsMissingDomain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("skills:\n  - A\n"), 0o644))

	r := NewRegistry()
	assert.Error(t, r.LoadDir(dir))
}

func TestLoadDirMissingDirectory(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadDir("/nonexistent/vocab/dir"))
}
