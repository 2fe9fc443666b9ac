package loader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// pdfParseTimeout 单个PDF的解析超时
const pdfParseTimeout = 30 * time.Second

// einoPDFExtractor 基于 Eino PDF Parser 的文本提取器
type einoPDFExtractor struct {
	parser *pdf.PDFParser
}

// newEinoPDFExtractor 初始化 Eino PDF 文本提取器
// 不按页分割，整份文档作为单个连续文本返回
func newEinoPDFExtractor(ctx context.Context) (*einoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}
	return &einoPDFExtractor{parser: p}, nil
}

// extractText 从PDF字节提取完整文本和解析元数据
func (e *einoPDFExtractor) extractText(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, pdfParseTimeout)
	defer cancel()

	startTime := time.Now()
	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(uri),
	)
	if err != nil {
		return "", nil, fmt.Errorf("eino PDF parser failed for %s: %w", uri, err)
	}
	if len(docs) == 0 {
		return "", nil, fmt.Errorf("eino PDF parser returned no documents for %s", uri)
	}

	// 合并所有返回的文档内容（正常情况下只有一个）
	var fullContent string
	for i, doc := range docs {
		fullContent += doc.Content
		if i < len(docs)-1 {
			fullContent += "\n\n"
		}
	}

	metadata := map[string]interface{}{
		"document_count":         len(docs),
		"processing_duration_ms": time.Since(startTime).Milliseconds(),
	}
	if docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			metadata[k] = v
		}
	}

	return fullContent, metadata, nil
}
