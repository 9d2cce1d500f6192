// Package hostadapter 把 scene 宿主适配成 scriptgen 的 Host/SceneLoader 端口。
package hostadapter

import (
	"context"

	"SceneScript/internal/classdb"
	"SceneScript/internal/scene"
	"SceneScript/internal/scriptgen/app"
)

// Host 包装 *scene.Host。节点在两侧都是 *scene.Instance，身份一致。
type Host struct {
	h *scene.Host
}

func New(h *scene.Host) *Host {
	return &Host{h: h}
}

func (a *Host) New(className string) (app.Node, error) {
	n, err := a.h.Create(className)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (a *Host) Descendants(n app.Node) []app.Node {
	inst, ok := n.(*scene.Instance)
	if !ok {
		return nil
	}
	ds := inst.Descendants()
	out := make([]app.Node, len(ds))
	for i, d := range ds {
		out[i] = d
	}
	return out
}

// Parent 没有父节点时返回 nil 接口，而不是装着 nil 指针的接口。
func (a *Host) Parent(n app.Node) app.Node {
	inst, ok := n.(*scene.Instance)
	if !ok || inst.Parent() == nil {
		return nil
	}
	return inst.Parent()
}

func (a *Host) IsService(className string) bool {
	return a.h.IsService(className)
}

func (a *Host) Readable(n app.Node) bool {
	inst, ok := n.(*scene.Instance)
	return ok && a.h.Readable(inst)
}

// Loader 每次运行新建一个宿主，载入文档并按路径找根节点。
type Loader struct {
	db *classdb.Database
}

func NewLoader(db *classdb.Database) *Loader {
	return &Loader{db: db}
}

func (l *Loader) Load(ctx context.Context, document []byte, rootPath string) (app.Host, app.Node, error) {
	h, err := scene.NewHost(l.db)
	if err != nil {
		return nil, nil, err
	}
	if err := h.LoadBytes(document); err != nil {
		return nil, nil, err
	}
	root, err := h.Find(rootPath)
	if err != nil {
		return nil, nil, err
	}
	return New(h), root, nil
}
