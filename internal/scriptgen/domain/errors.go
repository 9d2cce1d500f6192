package domain

import "SceneScript/modules/kit/errx"

type Code = errx.Code

const (
	CodeArtifactNotFound Code = "SCRIPT_ARTIFACT_NOT_FOUND"
	// CodeSystemUnavailable 复用 kit 的统一系统码。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrArtifactNotFound  = errx.NewBiz(CodeArtifactNotFound, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)
