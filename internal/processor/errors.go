package processor

import (
	"errors"
	"fmt"
)

// 管道级的基础错误
var (
	ErrSegmentFailed = errors.New("简历区域划分失败")
	ErrNoComponents  = errors.New("管道组件未配置")
)

// ResumeParseError 携带阶段和文件信息的管道错误
// BaseErr 保留底层错误链，errors.Is 可以穿透到加载器的哨兵错误
type ResumeParseError struct {
	Filename string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *ResumeParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (阶段:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Filename, e.Detail)
	}
	return fmt.Sprintf("%s (阶段:%s, 文件:%s)", e.BaseErr, e.Op, e.Filename)
}

func (e *ResumeParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewLoadError(filename string, err error) error {
	return &ResumeParseError{
		Filename: filename,
		Op:       "load",
		BaseErr:  err,
	}
}

func NewSegmentError(filename string, err error) error {
	return &ResumeParseError{
		Filename: filename,
		Op:       "segment",
		BaseErr:  fmt.Errorf("%w: %v", ErrSegmentFailed, err),
	}
}
