package domain

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable 可恢复的空数据错误
// 用户信号、候选集或曲库为空时返回，调用方以零向量/空列表降级，不中断请求
var ErrDataUnavailable = errors.New("requested data unavailable")

// UpstreamError 上游协作方（文本编码服务、文档存储）调用失败
// 只中止当前工作单元（单曲Embedding或单次推荐请求），不影响已提交的记录
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure in %s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError 向量维度不一致
// 偏好向量与曲库向量维度不同时必须显式失败，禁止静默截断或补零
type DimensionMismatchError struct {
	SongID   string
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	if e.SongID != "" {
		return fmt.Sprintf("embedding dimension mismatch for song %s: expected %d, got %d", e.SongID, e.Expected, e.Got)
	}
	return fmt.Sprintf("embedding dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}
