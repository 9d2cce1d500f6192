package scene

import (
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// Document 是场景树的 JSON 表示；顶层节点挂在 DataModel 下（通常是服务）。
type Document struct {
	Children []DocNode `json:"Children"`
}

type DocNode struct {
	ClassName  string         `json:"ClassName"`
	Name       string         `json:"Name,omitempty"`
	Id         string         `json:"Id,omitempty"`
	Locked     bool           `json:"Locked,omitempty"`
	Unreadable []string       `json:"Unreadable,omitempty"`
	Properties map[string]any `json:"Properties,omitempty"`
	Children   []DocNode      `json:"Children,omitempty"`
}

type pendingRef struct {
	node     *Instance
	property string
	id       string
}

// LoadFile 读取文档文件并建树。
func (h *Host) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ErrBadDocument.WithData("path", path).WithCause(err)
	}
	defer f.Close()
	return h.Load(f)
}

func (h *Host) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ErrBadDocument.WithCause(err)
	}
	return h.LoadBytes(data)
}

// LoadBytes 分两遍：先建节点与标量属性，再解析 {"Ref":"id"}。
func (h *Host) LoadBytes(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrBadDocument.WithCause(err)
	}
	var refs []pendingRef
	for i := range doc.Children {
		if err := h.build(h.root, &doc.Children[i], &refs); err != nil {
			return err
		}
	}
	for _, p := range refs {
		target, ok := h.byID[p.id]
		if !ok {
			return ErrBadDocument.WithData("node", p.node.FullName()).WithData("property", p.property).WithData("ref", p.id)
		}
		if err := p.node.Set(p.property, target); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) build(parent *Instance, dn *DocNode, refs *[]pendingRef) error {
	if dn.ClassName == "" {
		return ErrBadDocument.WithData("parent", parent.FullName()).WithData("reason", "missing ClassName")
	}
	var (
		n   *Instance
		err error
	)
	if parent == h.root && h.db.IsService(dn.ClassName) {
		n, err = h.Service(dn.ClassName)
	} else {
		n, err = h.Create(dn.ClassName)
	}
	if err != nil {
		return err
	}
	if dn.Name != "" {
		n.name = dn.Name
	}
	if dn.Id != "" {
		if _, dup := h.byID[dn.Id]; dup {
			return ErrBadDocument.WithData("id", dn.Id).WithData("reason", "duplicate Id")
		}
		h.Register(dn.Id, n)
	}
	n.SetParent(parent)
	for _, prop := range propertyOrder(dn.Properties) {
		raw := dn.Properties[prop]
		v, ref, err := DecodeValue(raw)
		if err != nil {
			return ErrBadValue.WithData("node", n.FullName()).WithData("property", prop).WithCause(err)
		}
		if ref != "" {
			if _, ok := n.props[prop]; !ok {
				return ErrUnknownProperty.WithData("property", prop).WithData("class", n.className)
			}
			*refs = append(*refs, pendingRef{node: n, property: prop, id: ref})
			continue
		}
		if err := n.Set(prop, v); err != nil {
			return err
		}
	}
	for _, prop := range dn.Unreadable {
		n.SetUnreadable(prop)
	}
	for i := range dn.Children {
		if err := h.build(n, &dn.Children[i], refs); err != nil {
			return err
		}
	}
	// 先挂完子树再上锁，Locked 只影响读取。
	n.locked = dn.Locked
	return nil
}

// propertyOrder 给出稳定的写入顺序：派生变换属性排在 CFrame 之后，叠加在它上面。
func propertyOrder[V any](props map[string]V) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		da, db := derivedTransform[keys[a]], derivedTransform[keys[b]]
		if da != db {
			return db
		}
		return keys[a] < keys[b]
	})
	return keys
}
