package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"SceneScript/internal/shared/security"
	"SceneScript/modules/kit/logx"
	"SceneScript/modules/kit/tracex"
)

type Server struct {
	router   *Router
	issuer   *security.Issuer
	upgrader websocket.Upgrader
	log      logx.Logger
	// onConnect 在握手推送之后调用
	onConnect func(session, plugin string, conn WSConn)
}

// NewServer issuer 为 nil 或未配置密钥时不鉴权。
func NewServer(r *Router, issuer *security.Issuer, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		issuer: issuer,
		upgrader: websocket.Upgrader{
			// 插件来自本机 Studio，不做 Origin 校验
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: l,
	}
}

// OnConnect 只能在开始服务前设置。
func (s *Server) OnConnect(fn func(session, plugin string, conn WSConn)) {
	s.onConnect = fn
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	plugin := ""
	if s.issuer.Enabled() {
		claims, err := s.issuer.ParseToken(req.URL.Query().Get("token"))
		if err != nil {
			s.log.Warn("websocket auth failed", zap.String("addr", req.RemoteAddr), zap.Error(err))
			http.Error(resp, "unauthorized", http.StatusUnauthorized)
			return
		}
		plugin = claims.Plugin
	}

	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	session := tracex.NewRunID()
	s.log.Info("websocket upgrade success", zap.String("session", session), zap.String("plugin", plugin))

	wsServer := NewWsServer(wsConn, s.log)
	wsServer.Router(s.router)
	if plugin != "" {
		wsServer.SetProperty(ConnKeyPlugin, plugin)
	}
	wsServer.Run()
	wsServer.handshake(session)
	if s.onConnect != nil {
		s.onConnect(session, plugin, wsServer)
	}
}
