package dto

import (
	"github.com/goccy/go-json"

	"SceneScript/internal/scriptgen/domain"
)

// GenerateReq 是 POST /v1/scripts 与 ws script.generate 的请求体。
// Options 中缺省的开关取配置文件 serializer.* 的值。
type GenerateReq struct {
	Document json.RawMessage `json:"document"`
	Root     string          `json:"root"`
	Options  OptionsReq      `json:"options"`
}

type OptionsReq struct {
	Verbose *bool `json:"verbose"`
	Parent  *bool `json:"parent"`
	Module  *bool `json:"module"`
	Context *bool `json:"context"`
}

// Apply 用请求中显式给出的开关覆盖 base。
func (o OptionsReq) Apply(base domain.Options) domain.Options {
	if o.Verbose != nil {
		base.Verbose = *o.Verbose
	}
	if o.Parent != nil {
		base.Parent = *o.Parent
	}
	if o.Module != nil {
		base.Module = *o.Module
	}
	if o.Context != nil {
		base.Context = *o.Context
	}
	return base
}

// Resp 是统一响应信封；code 为 transport 业务码，err_code 为 errx 错误码。
type Resp struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg,omitempty"`
	ErrCode string `json:"err_code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Data    any    `json:"data,omitempty"`
}
