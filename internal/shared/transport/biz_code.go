package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 响应体 code 字段的取值。0 成功；1~499 可预期的拒绝；>=500 服务端问题。
const (
	OK              = 0
	InvalidParam    = 400
	Unauthorized    = 401
	NotFound        = 404
	ScriptRejected  = 422
	SystemError     = 500
	ServiceUnusable = 503
)
