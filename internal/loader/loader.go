// Package loader 把上传的原始文档转换为纯文本和带版式标签的文本块。
// 这是管道中唯一会以致命错误终止的阶段：格式不支持、文档损坏或超出
// 大小上限时直接拒绝，不产生部分输出。
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/types"
)

// 加载阶段的致命错误
var (
	// ErrUnsupportedFormat MIME 类型和扩展名都无法识别
	ErrUnsupportedFormat = errors.New("不支持的文档格式")
	// ErrCorruptDocument 解析器无法从文档中提取任何可用文本
	ErrCorruptDocument = errors.New("文档损坏或不可读")
	// ErrDocumentTooLarge 文档超出配置的大小上限
	ErrDocumentTooLarge = errors.New("文档超出大小限制")
)

// Format 识别出的文档格式
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// Result 加载结果：全文、带版式标签的文本块和解析元数据
type Result struct {
	Text   string
	Blocks []types.TextBlock
	Format Format
	Meta   map[string]interface{}
}

// Loader 文档加载器
type Loader struct {
	maxSize       int64
	minTextLength int
	pdf           *einoPDFExtractor
	logger        zerolog.Logger
}

// Option 加载器配置选项
type Option func(*Loader)

// WithMaxSize 设置文档大小上限（字节）
func WithMaxSize(maxSize int64) Option {
	return func(l *Loader) {
		l.maxSize = maxSize
	}
}

// WithMinTextLength 设置可抽取文本的最小字符数，低于此值视为不可读
func WithMinTextLength(n int) Option {
	return func(l *Loader) {
		l.minTextLength = n
	}
}

// WithLogger 设置自定义日志记录器
func WithLogger(lg zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = lg
	}
}

// New 创建文档加载器
// PDF 解析器初始化失败时返回错误
func New(ctx context.Context, options ...Option) (*Loader, error) {
	pdfExtractor, err := newEinoPDFExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("创建PDF解析器失败: %w", err)
	}

	l := &Loader{
		maxSize:       10 << 20,
		minTextLength: 1,
		pdf:           pdfExtractor,
		logger:        logger.Logger.With().Str("component", "loader").Logger(),
	}

	for _, option := range options {
		option(l)
	}

	return l, nil
}

// Load 把原始文档转换为文本和文本块
// 除此处的三类致命错误外，管道后续阶段不再失败
func (l *Loader) Load(ctx context.Context, doc types.RawDocument) (*Result, error) {
	if int64(len(doc.Content)) > l.maxSize {
		return nil, fmt.Errorf("%w: %d 字节 (上限 %d)", ErrDocumentTooLarge, len(doc.Content), l.maxSize)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: 空文档", ErrCorruptDocument)
	}

	format, err := DetectFormat(doc)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("filename", doc.Filename).
		Str("format", string(format)).
		Int("size", len(doc.Content)).
		Msg("开始加载文档")

	var text string
	meta := map[string]interface{}{"format": string(format)}

	switch format {
	case FormatPDF:
		var pdfMeta map[string]interface{}
		text, pdfMeta, err = l.pdf.extractText(ctx, doc.Content, doc.Filename)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		for k, v := range pdfMeta {
			meta[k] = v
		}
	case FormatDOCX:
		text, err = extractDocxText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
	case FormatText:
		text = decodeText(doc.Content)
	}

	text = normalizeNewlines(text)
	if runeCount := utf8.RuneCountInString(strings.TrimSpace(text)); runeCount < l.minTextLength {
		return nil, fmt.Errorf("%w: 仅提取到 %d 个字符", ErrCorruptDocument, runeCount)
	}

	blocks := TagBlocks(text)
	meta["text_length"] = len(text)
	meta["block_count"] = len(blocks)

	l.logger.Debug().
		Int("blocks", len(blocks)).
		Int("chars", len(text)).
		Msg("文档加载完成")

	return &Result{
		Text:   text,
		Blocks: blocks,
		Format: format,
		Meta:   meta,
	}, nil
}

// DetectFormat 根据声明的 MIME 类型和文件扩展名判断格式
// 先看 MIME，再回退到扩展名，两者都无法识别时报 ErrUnsupportedFormat
func DetectFormat(doc types.RawDocument) (Format, error) {
	switch doc.MIMEType {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return FormatDOCX, nil
	}
	if strings.HasPrefix(doc.MIMEType, "text/") {
		return FormatText, nil
	}

	name := strings.ToLower(strings.TrimSpace(doc.Filename))
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return FormatPDF, nil
	case strings.HasSuffix(name, ".docx"), strings.HasSuffix(name, ".doc"):
		return FormatDOCX, nil
	case strings.HasSuffix(name, ".txt"):
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: mime=%q 文件名=%q 扩展名=%q",
		ErrUnsupportedFormat, doc.MIMEType, doc.Filename, filepath.Ext(name))
}

// extractDocxText 从 DOCX 字节提取正文文本
func extractDocxText(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析DOCX失败: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// decodeText 解码纯文本，无效字节替换为 U+FFFD
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// normalizeNewlines 统一换行符并压缩连续空行
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}

// 列表项的常见前缀
var bulletPrefixes = []string{"-", "*", "•", "·", "▪", "‣", "➢", "●"}

// TagBlocks 把文本按行切分并打上版式标签
// 空行保留为正文块，保证后续区域覆盖全部原始行
func TagBlocks(text string) []types.TextBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]types.TextBlock, 0, len(lines))

	for i, line := range lines {
		blocks = append(blocks, types.TextBlock{
			Index: i,
			Text:  line,
			Tag:   classifyLine(line),
		})
	}

	return blocks
}

// classifyLine 判断单行的版式：列表项、标题或正文
func classifyLine(line string) types.LayoutTag {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return types.LayoutBody
	}

	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix+" ") || trimmed == prefix {
			return types.LayoutListItem
		}
	}

	if isHeadingLike(trimmed) {
		return types.LayoutHeading
	}

	return types.LayoutBody
}

// isHeadingLike 判断一行是否形似区域标题：短、首字母大写或全大写、无句末标点
func isHeadingLike(line string) bool {
	if utf8.RuneCountInString(line) > 48 {
		return false
	}
	if strings.ContainsAny(line, "@") {
		return false
	}
	line = strings.TrimSuffix(line, ":")

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}

	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
