package app

import "SceneScript/modules/kit/errx"

type Code = errx.Code

const (
	CodeAccessRestricted Code = "SCRIPT_ACCESS_RESTRICTED"
	CodeUninstantiable   Code = "SCRIPT_UNINSTANTIABLE"
	CodeUnsupportedRoot  Code = "SCRIPT_UNSUPPORTED_ROOT"
	CodeSizeExceeded     Code = "SCRIPT_SIZE_EXCEEDED"
	CodeArtifactNotFound Code = "SCRIPT_ARTIFACT_NOT_FOUND"
	CodeBadRequest       Code = errx.CodeReqParamError
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

type Error = errx.Error

func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

// 哨兵错误：通过 WithData/WithCause 派生，禁止直接修改。
var (
	ErrAccessRestricted = errx.NewBiz(CodeAccessRestricted, "根节点在当前上下文不可读")
	ErrUninstantiable   = errx.NewBiz(CodeUninstantiable, "类无法实例化")
	ErrUnsupportedRoot  = errx.NewBiz(CodeUnsupportedRoot, "根节点是服务，不能重建")
	ErrSizeExceeded     = errx.NewBiz(CodeSizeExceeded, "脚本超出长度上限")
	ErrArtifactNotFound = errx.NewBiz(CodeArtifactNotFound, "产物不存在")
	ErrBadRequest       = errx.ErrReqParamERR
	// ErrNameSpaceExhausted 是后缀搜索达到上限；正常输入不可能触发。
	ErrNameSpaceExhausted = errx.NewSys(CodeInternalServer, "标识符后缀耗尽")
	ErrInternalServer     = errx.ErrInternal
	ErrUnavailable        = errx.ErrUnavailable
)
