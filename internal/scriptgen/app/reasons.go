package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 可恢复的诊断：节点/属性被跳过，输出降级但运行继续。
	ReasonPropertyUnreadable  = NewReason("PROPERTY_UNREADABLE", "属性不可读，已跳过")
	ReasonValueUnformattable  = NewReason("VALUE_UNFORMATTABLE", "属性值无法转成字面量，已跳过")
	ReasonAccessRestricted    = NewReason("ACCESS_RESTRICTED", "节点在当前上下文不可读，已跳过")
	ReasonUnsupportedNode     = NewReason("UNSUPPORTED_NODE", "服务节点不能重建，已跳过")
	ReasonUninstantiable      = NewReason("UNINSTANTIABLE", "类无法实例化，已跳过")
	ReasonMetadataUnavailable = NewReason("METADATA_UNAVAILABLE", "类属性列表不可用，已跳过")
	ReasonAncestorSkipped     = NewReason("ANCESTOR_SKIPPED", "祖先节点被跳过，整棵子树一并跳过")
	ReasonUnresolvedReference = NewReason("UNRESOLVED_REFERENCE", "引用目标无法寻址，已丢弃")
	ReasonPrewarmFailed       = NewReason("PREWARM_FAILED", "属性缓存预热失败")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonArtifactWriteFail = NewReason("ARTIFACT_WRITE_FAIL", "产物写入失败")
	ReasonHistoryWriteFail  = NewReason("HISTORY_WRITE_FAIL", "运行记录写入失败")
)
