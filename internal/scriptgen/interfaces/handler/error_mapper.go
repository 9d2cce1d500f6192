package handler

import (
	"errors"
	"net/http"

	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/dto"
	"SceneScript/internal/shared/transport"
	"SceneScript/modules/kit/errx"
)

// toStatus 把错误映射成 HTTP 状态与业务码。
func toStatus(err error) (int, int) {
	switch {
	case errors.Is(err, app.ErrBadRequest):
		return http.StatusBadRequest, transport.InvalidParam
	case errors.Is(err, app.ErrArtifactNotFound):
		return http.StatusNotFound, transport.NotFound
	case errors.Is(err, app.ErrUnavailable):
		return http.StatusServiceUnavailable, transport.ServiceUnusable
	case errx.IsBiz(err):
		// 根节点不可读、不可实例化、超出上限等
		return http.StatusUnprocessableEntity, transport.ScriptRejected
	default:
		return http.StatusInternalServerError, transport.SystemError
	}
}

func errorResp(err error) (int, dto.Resp) {
	status, code := toStatus(err)
	resp := dto.Resp{Code: code, ErrCode: string(errx.CodeOf(err))}
	var e *errx.Error
	if errors.As(err, &e) {
		resp.Msg = e.Msg()
		resp.Reason = e.Reason()
	} else {
		resp.Msg = err.Error()
	}
	return status, resp
}
