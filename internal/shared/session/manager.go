package session

import (
	"sync"

	"SceneScript/internal/shared/transport/ws"
)

// ReplacedMsg 推给被同一插件新连接顶掉的旧连接。
const ReplacedMsg = "sessionReplaced"

// Manager 记录在线的插件连接；同一插件只保留最新的一条。
type Manager struct {
	sync.RWMutex
	plugin2conn map[string]ws.WSConn
	conn2plugin map[ws.WSConn]string
	sessions    map[string]ws.WSConn
	conn2sess   map[ws.WSConn]string
}

func NewManager() *Manager {
	return &Manager{
		plugin2conn: make(map[string]ws.WSConn),
		conn2plugin: make(map[ws.WSConn]string),
		sessions:    make(map[string]ws.WSConn),
		conn2sess:   make(map[ws.WSConn]string),
	}
}

// Bind plugin 为空表示未鉴权连接，不做互踢。
func (m *Manager) Bind(session, plugin string, conn ws.WSConn) {
	if conn == nil || session == "" {
		return
	}
	m.Lock()
	if _, ok := m.conn2sess[conn]; !ok {
		go m.watchConnDone(conn)
	}
	var old ws.WSConn
	if plugin != "" {
		if prev := m.plugin2conn[plugin]; prev != nil && prev != conn {
			old = prev
		}
		m.plugin2conn[plugin] = conn
		m.conn2plugin[conn] = plugin
	}
	m.sessions[session] = conn
	m.conn2sess[conn] = session
	m.Unlock()

	if old != nil {
		old.Kick(ReplacedMsg, nil)
	}
}

func (m *Manager) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	m.Unbind(conn)
}

func (m *Manager) Unbind(conn ws.WSConn) {
	m.Lock()
	defer m.Unlock()
	if s, ok := m.conn2sess[conn]; ok {
		delete(m.conn2sess, conn)
		if m.sessions[s] == conn {
			delete(m.sessions, s)
		}
	}
	if p, ok := m.conn2plugin[conn]; ok {
		delete(m.conn2plugin, conn)
		if m.plugin2conn[p] == conn {
			delete(m.plugin2conn, p)
		}
	}
}

func (m *Manager) Get(session string) (ws.WSConn, bool) {
	m.RLock()
	defer m.RUnlock()
	c, ok := m.sessions[session]
	return c, ok
}

func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}
