package scene

import "SceneScript/modules/kit/errx"

const (
	CodeUnknownProperty    errx.Code = "SCENE_UNKNOWN_PROPERTY"
	CodePropertyUnreadable errx.Code = "SCENE_PROPERTY_UNREADABLE"
	CodeNotCreatable       errx.Code = "SCENE_NOT_CREATABLE"
	CodeBadValue           errx.Code = "SCENE_BAD_VALUE"
	CodeBadDocument        errx.Code = "SCENE_BAD_DOCUMENT"
	CodeNotFound           errx.Code = "SCENE_NOT_FOUND"
)

var (
	ErrUnknownProperty    = errx.NewBiz(CodeUnknownProperty, "属性不存在")
	ErrPropertyUnreadable = errx.NewBiz(CodePropertyUnreadable, "属性不可读")
	ErrNotCreatable       = errx.NewBiz(CodeNotCreatable, "类不可实例化")
	ErrBadValue           = errx.NewBiz(CodeBadValue, "属性值无法解析")
	ErrBadDocument        = errx.NewBiz(CodeBadDocument, "场景文档无效")
	ErrNotFound           = errx.NewBiz(CodeNotFound, "节点不存在")
)
