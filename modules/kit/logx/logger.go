package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是 CLI 与 server 共用的最小日志接口。
//
// 约束：
// - 只承载结构化字段 + ctx 透传（trace/span/run_id）
// - 序列化诊断（属性不可读、类无法实例化等）也走这里的 Warn
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃一切输出的 Logger，测试与未初始化场景使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
