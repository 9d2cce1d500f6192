package ws

type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
	// closeAfter 写完这条后关闭连接
	closeAfter bool
}

// WSConn 是 handler 能看到的会话。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any)
	// Kick 排在已入队消息之后推送一条通知，写出后关闭连接。
	Kick(name string, data any)
	Close()
	// Done 在连接关闭时被关闭。
	Done() <-chan struct{}
}

type Handshake struct {
	Session string `json:"session"`
}

type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

const (
	HandshakeMsg  = "handshake"
	HeartbeatMsg  = "heartbeat"
	ConnKeyPlugin = "plugin"
	ConnKeySession = "session"
)
