// Package scene 是宿主对象模型：带类型的实例树、属性表、父子链接，实例默认值来自类数据库。
package scene

import (
	"strings"
	"sync"

	"SceneScript/internal/classdb"
)

const dataModelClass = "DataModel"

// Host 持有一棵以 DataModel 为根的实例树。
type Host struct {
	db   *classdb.Database
	root *Instance
	byID map[string]*Instance

	mu       sync.Mutex
	defaults map[string]map[string]any
}

func NewHost(db *classdb.Database) (*Host, error) {
	h := &Host{
		db:       db,
		byID:     make(map[string]*Instance),
		defaults: make(map[string]map[string]any),
	}
	root, err := h.spawn(dataModelClass)
	if err != nil {
		return nil, err
	}
	root.name = "Game"
	h.root = root
	return h, nil
}

// Root 返回 DataModel。
func (h *Host) Root() *Instance { return h.root }

// Database 返回实例默认值所依据的类数据库。
func (h *Host) Database() *classdb.Database { return h.db }

// Create 等价于 Instance.new(className)：服务与 NotCreatable 类不可创建。
func (h *Host) Create(className string) (*Instance, error) {
	c, err := h.db.Class(className)
	if err != nil {
		return nil, ErrNotCreatable.WithData("class", className).WithCause(err)
	}
	if c.HasTag(classdb.TagNotCreatable) || c.HasTag(classdb.TagService) {
		return nil, ErrNotCreatable.WithData("class", className)
	}
	return h.spawn(className)
}

// Service 返回 DataModel 下指定类的服务，不存在则创建。
func (h *Host) Service(className string) (*Instance, error) {
	for _, c := range h.root.children {
		if c.className == className {
			return c, nil
		}
	}
	if !h.db.IsService(className) {
		return nil, ErrNotCreatable.WithData("class", className)
	}
	s, err := h.spawn(className)
	if err != nil {
		return nil, err
	}
	s.SetParent(h.root)
	return s, nil
}

func (h *Host) spawn(className string) (*Instance, error) {
	defaults, err := h.classDefaults(className)
	if err != nil {
		return nil, err
	}
	props := make(map[string]any, len(defaults))
	for k, v := range defaults {
		props[k] = v
	}
	return &Instance{className: className, name: className, props: props}, nil
}

// classDefaults 按继承链（父类在前）合并默认值，缺省默认值的属性置 nil。
func (h *Host) classDefaults(className string) (map[string]any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d, ok := h.defaults[className]; ok {
		return d, nil
	}
	chain, err := h.db.Chain(className)
	if err != nil {
		return nil, ErrNotCreatable.WithData("class", className).WithCause(err)
	}
	out := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		for _, m := range c.Members {
			if m.MemberType != classdb.MemberProperty || isStructural(m.Name) {
				continue
			}
			if _, ok := out[m.Name]; !ok {
				out[m.Name] = nil
			}
		}
		for name, raw := range c.Defaults {
			if isStructural(name) {
				continue
			}
			v, ref, err := DecodeValue(raw)
			if err != nil {
				return nil, ErrBadValue.WithData("class", c.Name).WithData("property", name).WithCause(err)
			}
			if ref != "" {
				continue
			}
			out[name] = v
		}
	}
	h.defaults[className] = out
	return out, nil
}

func isStructural(property string) bool {
	return property == "Name" || property == "Parent" || property == "ClassName"
}

// IsService 判断类是否为单例服务。
func (h *Host) IsService(className string) bool {
	return className == dataModelClass || h.db.IsService(className)
}

// Readable 为 false 表示节点自身或任一祖先被锁定。
func (h *Host) Readable(n *Instance) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.locked {
			return false
		}
	}
	return true
}

// Find 支持 "#id" 与 "Workspace.Model.Part"（可带 game. 前缀）两种写法。
func (h *Host) Find(path string) (*Instance, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "#") {
		if n, ok := h.byID[path[1:]]; ok {
			return n, nil
		}
		return nil, ErrNotFound.WithData("path", path)
	}
	cur := h.root
	if path == "" || path == "game" {
		return cur, nil
	}
	segments := strings.Split(path, ".")
	if segments[0] == "game" {
		segments = segments[1:]
	}
	for _, seg := range segments {
		next := cur.FindFirstChild(seg)
		if next == nil {
			return nil, ErrNotFound.WithData("path", path).WithData("segment", seg)
		}
		cur = next
	}
	return cur, nil
}

// Register 让节点可以通过 #id 查找。
func (h *Host) Register(id string, n *Instance) {
	if id == "" {
		return
	}
	n.id = id
	h.byID[id] = n
}
