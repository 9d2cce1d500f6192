package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/scriptgen/dto"
	"SceneScript/internal/shared/transport"
	"SceneScript/internal/shared/transport/ws"
	"SceneScript/modules/kit/errx"
	"SceneScript/modules/kit/logx"
	"SceneScript/modules/kit/tracex"
)

type Script struct {
	svc      *app.ScriptService
	defaults func() domain.Options
	log      logx.Logger
}

// NewScript defaults 每次请求调用一次，配置热更新后立即生效。
func NewScript(svc *app.ScriptService, defaults func() domain.Options, log logx.Logger) *Script {
	if defaults == nil {
		defaults = func() domain.Options { return domain.Options{Verbose: true} }
	}
	if log == nil {
		log = logx.Nop()
	}
	return &Script{svc: svc, defaults: defaults, log: log}
}

func (s *Script) RegisterHTTP(g *gin.RouterGroup) {
	g.POST("/scripts", s.create)
	g.GET("/scripts/:id", s.get)
	g.GET("/scripts", s.history)
}

func (s *Script) RegisterWS(r *ws.Router) {
	r.Group("script").Handle("generate", s.generateWS)
	r.Group("script").Handle("get", s.getWS)
	r.Group("script").Handle("history", s.historyWS)
}

func (s *Script) create(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "scriptgen")

	var req dto.GenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, ctx, app.ErrBadRequest.WithData("reason", "BODY_TOO_LARGE").WithCause(err))
			return
		}
		s.fail(c, ctx, app.ErrBadRequest.WithCause(err))
		return
	}

	resp, err := s.generate(ctx, req)
	if err != nil {
		s.fail(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, dto.Resp{Code: transport.OK, Data: resp})
}

func (s *Script) get(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "scriptgen")
	a, err := s.svc.Get(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, dto.Resp{Code: transport.OK, Data: a})
}

// history 按 ?limit= 返回最近的运行记录。
func (s *Script) history(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "scriptgen")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		s.fail(c, ctx, app.ErrBadRequest.WithData("field", "limit").WithCause(err))
		return
	}
	recs, err := s.svc.History(ctx, limit)
	if err != nil {
		s.fail(c, ctx, err)
		return
	}
	c.JSON(http.StatusOK, dto.Resp{Code: transport.OK, Data: recs})
}

func (s *Script) generate(ctx context.Context, req dto.GenerateReq) (*app.GenerateResp, error) {
	return s.svc.Generate(ctx, app.GenerateReq{
		Document: req.Document,
		Root:     req.Root,
		Options:  req.Options.Apply(s.defaults()),
	})
}

func (s *Script) fail(c *gin.Context, ctx context.Context, err error) {
	s.report(ctx, "http script", err)
	status, resp := errorResp(err)
	transport.SetErrorReason(ctx, resp.ErrCode)
	c.JSON(status, resp)
}

func (s *Script) generateWS(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	ctx = tracex.WithSpanID(ctx, "scriptgen")

	var body dto.GenerateReq
	if err := ws.BindJSON(req, &body); err != nil {
		s.failWS(ctx, resp, app.ErrBadRequest.WithCause(err))
		return
	}
	out, err := s.generate(ctx, body)
	if err != nil {
		s.failWS(ctx, resp, err)
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = out
}

func (s *Script) getWS(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	ctx = tracex.WithSpanID(ctx, "scriptgen")

	var body struct {
		ID string `json:"id"`
	}
	if err := ws.BindJSON(req, &body); err != nil || body.ID == "" {
		s.failWS(ctx, resp, app.ErrBadRequest.WithData("field", "id"))
		return
	}
	a, err := s.svc.Get(ctx, body.ID)
	if err != nil {
		s.failWS(ctx, resp, err)
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = a
}

func (s *Script) historyWS(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	ctx = tracex.WithSpanID(ctx, "scriptgen")

	var body struct {
		Limit int `json:"limit"`
	}
	_ = ws.BindJSON(req, &body)
	recs, err := s.svc.History(ctx, body.Limit)
	if err != nil {
		s.failWS(ctx, resp, err)
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = recs
}

func (s *Script) failWS(ctx context.Context, resp *ws.WsMsgResp, err error) {
	s.report(ctx, "ws script", err)
	_, r := errorResp(err)
	transport.SetErrorReason(ctx, r.ErrCode)
	resp.Body.Code = r.Code
	resp.Body.Msg = r
}

// report 每个请求只调用一次。
func (s *Script) report(ctx context.Context, action string, err error) {
	if errx.IsBiz(err) {
		var e *errx.Error
		reason, msg := "", err.Error()
		if errors.As(err, &e) {
			reason, msg = e.CodeText(), e.Msg()
		}
		logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog(action+" reject", reason, msg))
		return
	}
	logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog(action+" error", err))
}
