package app

import (
	"context"

	"go.uber.org/zap"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/logx"
)

// diagnostics 收集一次运行内的诊断，同时逐条写 WARN 日志。
type diagnostics struct {
	ctx  context.Context
	log  Logger
	list []domain.Diagnostic
}

func (d *diagnostics) report(reason Reason, node Node, property string) {
	diag := domain.Diagnostic{
		Reason:   reason.Code,
		Message:  reason.Message,
		Property: property,
	}
	fields := make([]zap.Field, 0, 3)
	if node != nil {
		diag.Node = node.Name()
		diag.Class = node.ClassName()
		fields = append(fields, zap.String("node", diag.Node), zap.String("class", diag.Class))
	}
	if property != "" {
		fields = append(fields, zap.String("property", property))
	}
	d.list = append(d.list, diag)
	logx.ReportDiagnosticWithLoggerContext(d.ctx, d.log, reason.Code, reason.Message, fields...)
}
