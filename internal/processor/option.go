package processor

import (
	"time"

	"github.com/rs/zerolog"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// Settings 管道运行设置
type Settings struct {
	// Debug 打开逐阶段的调试日志
	Debug bool
	// Now 时钟来源，报告时间戳和开放区间的经验计算都用它
	// 注入固定时钟可以让同一输入产生完全一致的输出
	Now func() time.Time
	// Logger 管道日志记录器
	Logger zerolog.Logger
}

// ----- 组件选项 -----

// WithcompLoader 设置文档加载组件
func WithcompLoader(l DocumentLoader) ComponentOpt {
	return func(c *Components) {
		c.Loader = l
	}
}

// WithcompSegmenter 设置区域分区组件
func WithcompSegmenter(s SectionSegmenter) ComponentOpt {
	return func(c *Components) {
		c.Segmenter = s
	}
}

// WithcompExtractor 设置字段抽取组件
func WithcompExtractor(e FieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.Extractor = e
	}
}

// WithcompNormalizer 设置规范化组件
func WithcompNormalizer(n ProfileNormalizer) ComponentOpt {
	return func(c *Components) {
		c.Normalizer = n
	}
}

// WithcompClassifier 设置角色分类组件
func WithcompClassifier(cl RoleClassifier) ComponentOpt {
	return func(c *Components) {
		c.Classifier = cl
	}
}

// ----- 设置选项 -----

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetNow 注入时钟
func WithsetNow(now func() time.Time) SettingOpt {
	return func(s *Settings) {
		if now != nil {
			s.Now = now
		} else {
			s.Now = time.Now
		}
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(lg zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = lg
	}
}
