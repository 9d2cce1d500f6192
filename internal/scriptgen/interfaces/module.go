package interfaces

import (
	"github.com/gin-gonic/gin"

	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/scriptgen/interfaces/handler"
	ws "SceneScript/internal/shared/transport/ws"
	"SceneScript/modules/kit/logx"
)

type Deps struct {
	Loader     app.SceneLoader
	Serializer *app.Serializer
	Artifacts  app.ArtifactRepo
	History    app.HistoryRepo
	// Defaults 返回当前配置中的默认运行选项。
	Defaults func() domain.Options
	Log      logx.Logger
}

type Module struct {
	svc    *app.ScriptService
	script *handler.Script
}

func New(d Deps) *Module {
	svc := app.NewScriptService(d.Loader, d.Serializer, d.Artifacts, d.History, d.Log)
	return &Module{
		svc:    svc,
		script: handler.NewScript(svc, d.Defaults, d.Log),
	}
}

func (m *Module) Service() *app.ScriptService { return m.svc }

func (m *Module) RegisterHTTP(g *gin.RouterGroup) {
	m.script.RegisterHTTP(g)
}

func (m *Module) RegisterWS(r *ws.Router) {
	m.script.RegisterWS(r)
}
