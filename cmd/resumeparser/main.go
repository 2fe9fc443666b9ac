// 命令行入口：解析一份简历文件并输出完整的解析结果 JSON。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/loader"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/processor"
	"resume-insight-go/internal/types"
)

func main() {
	var (
		filePath   string
		configPath string
		domain     string
		mimeType   string
		pretty     bool
		debug      bool
	)

	pflag.StringVarP(&filePath, "file", "f", "", "简历文件路径 (pdf / docx / txt)")
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，默认在常见位置查找")
	pflag.StringVarP(&domain, "domain", "d", "", "领域名称，覆盖配置文件中的 domain")
	pflag.StringVar(&mimeType, "mime", "", "文档 MIME 类型，为空时按扩展名判断")
	pflag.BoolVar(&pretty, "pretty", false, "缩进输出 JSON")
	pflag.BoolVar(&debug, "debug", false, "打开调试日志")
	pflag.Parse()

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "用法: resumeparser --file <简历文件> [--config <配置文件>]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	// .env 不存在不是错误
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if domain != "" {
		cfg.Domain = domain
	}
	if debug {
		cfg.Logger.Level = "debug"
	}
	logger.Init(cfg.Logger)

	content, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取简历文件失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	parser, err := processor.NewDefault(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化解析管道失败: %v\n", err)
		os.Exit(1)
	}

	result, err := parser.Process(ctx, types.RawDocument{
		Filename: filepath.Base(filePath),
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		switch {
		case errors.Is(err, loader.ErrUnsupportedFormat):
			fmt.Fprintf(os.Stderr, "不支持的文档格式: %v\n", err)
		case errors.Is(err, loader.ErrDocumentTooLarge):
			fmt.Fprintf(os.Stderr, "文档过大: %v\n", err)
		case errors.Is(err, loader.ErrCorruptDocument):
			fmt.Fprintf(os.Stderr, "文档损坏或不可读: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "解析失败: %v\n", err)
		}
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "输出结果失败: %v\n", err)
		os.Exit(1)
	}
}
