package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "*"},
		{"ab", "a*"},
		{"abc", "a*c"},
		{"abcd", "a**d"},
		{"Jane Doe", "Ja****oe"},
		{"jane.doe@example.com", "ja****************om"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPII(tt.in), "输入: %q", tt.in)
	}
}

func TestSafeAttributeValueMasksSensitiveKeys(t *testing.T) {
	// 键名包含敏感关键字时值被掩码
	assert.Equal(t, "Ja****oe", SafeAttributeValue("candidate.name", "Jane Doe", DefaultMaxLength))
	assert.Equal(t, "Ja****oe", SafeAttributeValue("Contact-Email", "Jane Doe", DefaultMaxLength))

	// 普通键名短值原样通过
	assert.Equal(t, "report-42", SafeAttributeValue("resume.report_id", "report-42", DefaultMaxLength))
}

func TestSafeAttributeValueTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 300)

	out := SafeAttributeValue("resume.excerpt", long, DefaultMaxLength)
	assert.LessOrEqual(t, len([]rune(out)), DefaultMaxLength)
	assert.Contains(t, out, "...")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "ab...ij", TruncateString("abcdefghij", 7))
}

func TestSafeResumeContent(t *testing.T) {
	short := "Jane Doe\nBackend developer"
	assert.Equal(t, short, SafeResumeContent(short))

	long := strings.Repeat("resume body ", 40)
	out := SafeResumeContent(long)
	assert.LessOrEqual(t, len([]rune(out)), MaxResumeLength)
	assert.Contains(t, out, "...")
}
