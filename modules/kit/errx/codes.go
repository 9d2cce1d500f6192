package errx

// 跨进程（CLI / server）统一的系统类错误码。
//
// 约束：
// - 这里只放技术类错误码，便于告警与排障
// - 序列化相关的业务错误码（体积超限、根节点不可读等）由 scriptgen 自行定义

const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（Mongo/MySQL/类数据库未就绪等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeReqParamError 表示请求参数错误（文档无法解析、根路径不存在等）。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	// CodeUnauthorized 表示会话令牌缺失或无效。
	CodeUnauthorized Code = "UNAUTHORIZED"
)

var (
	ErrInternal     = NewSys(CodeInternal, "内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "依赖不可用")
	ErrReqParamERR  = NewSys(CodeReqParamError, "请求参数错误")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "未授权")
)
