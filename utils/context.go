package utils

import (
	"context"
	"errors"
	"strings"
)

// IsContextCanceled 检查错误是否由上下文取消导致
// 驱动有时只返回包含 "context canceled" 的字符串错误
func IsContextCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return strings.Contains(err.Error(), "context canceled")
}

// IsClientDisconnect 请求上下文已取消，或错误本身由取消导致
func IsClientDisconnect(ctx context.Context, err error) bool {
	if ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return true
	}
	return IsContextCanceled(err)
}
