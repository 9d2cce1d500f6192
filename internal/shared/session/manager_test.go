package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu     sync.Mutex
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{done: make(chan struct{})} }

func (c *fakeConn) SetProperty(string, any) {}
func (c *fakeConn) GetProperty(string) any  { return nil }
func (c *fakeConn) RemoveProperty(string)   {}
func (c *fakeConn) Addr() string            { return "test" }
func (c *fakeConn) Push(name string, _ any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
}
func (c *fakeConn) Kick(name string, data any) {
	c.Push(name, data)
	c.Close()
}
func (c *fakeConn) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *fakeConn) Done() <-chan struct{} { return c.done }

func TestManager_同插件新连接顶掉旧连接(t *testing.T) {
	m := NewManager()
	a, b := newFakeConn(), newFakeConn()

	m.Bind("s1", "studio", a)
	m.Bind("s2", "studio", b)

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatalf("期望旧连接被关闭")
	}
	a.mu.Lock()
	assert.Equal(t, []string{ReplacedMsg}, a.pushed)
	a.mu.Unlock()

	assert.Eventually(t, func() bool { return m.Count() == 1 }, time.Second, 10*time.Millisecond)
	got, ok := m.Get("s2")
	assert.True(t, ok)
	assert.Equal(t, b, got)
}

func TestManager_连接关闭自动解绑(t *testing.T) {
	m := NewManager()
	c := newFakeConn()
	m.Bind("s1", "", c)
	assert.Equal(t, 1, m.Count())

	c.Close()
	assert.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 10*time.Millisecond)
	_, ok := m.Get("s1")
	assert.False(t, ok)
}
