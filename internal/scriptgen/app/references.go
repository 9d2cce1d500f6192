package app

import (
	"strings"

	"SceneScript/internal/shared/lua"
)

const (
	dataModelClass = "DataModel"
	workspaceClass = "Workspace"
)

// resolve 把 from 的一个延迟引用解析成表达式：
// 自引用用自身标识符；子树内节点用标识符（平铺）或 require 容器（拆分）；
// 子树外节点用从 game/workspace/服务出发的完整路径。
func (r *run) resolve(from *SerializedNode, ref DeferredRef, split bool) (string, bool) {
	target := ref.Target
	if target == from.Node {
		return from.Ident, true
	}
	if sn, ok := r.serialized[target]; ok {
		if split {
			return "require(" + r.containerPath(sn.Node) + ")", true
		}
		return sn.Ident, true
	}
	if _, named := r.names.Name(target); named {
		// 在子树内但被跳过了。
		r.diags.report(ReasonUnresolvedReference, from.Node, ref.Property)
		return "", false
	}
	path, ok := r.externalPath(target)
	if !ok {
		r.diags.report(ReasonUnresolvedReference, from.Node, ref.Property)
		return "", false
	}
	return path, true
}

// externalPath 沿祖先链走到可识别的根：game、workspace 或 game:GetService("X")。
// 祖先链断开（未挂到 DataModel 下）的节点无法寻址。
func (r *run) externalPath(n Node) (string, bool) {
	var segments []string
	cur := n
	for {
		parent := r.host.Parent(cur)
		if parent == nil {
			if cur.ClassName() != dataModelClass {
				return "", false
			}
			return join("game", segments), true
		}
		if parent.ClassName() == dataModelClass && r.host.Parent(parent) == nil {
			switch {
			case cur.ClassName() == workspaceClass:
				return join("workspace", segments), true
			case r.host.IsService(cur.ClassName()):
				return join("game:GetService("+lua.Quote(cur.ClassName())+")", segments), true
			default:
				return join("game", append([]string{cur.Name()}, segments...)), true
			}
		}
		segments = append([]string{cur.Name()}, segments...)
		cur = parent
	}
}

func join(prefix string, segments []string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteString(lua.Index(s))
	}
	return b.String()
}

// containerPath 是拆分模式下从顶层脚本到 n 所在容器的 FindFirstChild 链。
func (r *run) containerPath(n Node) string {
	var chain []string
	for cur := n; cur != nil; cur = r.host.Parent(cur) {
		sn, ok := r.serialized[cur]
		if !ok {
			break
		}
		chain = append(chain, sn.Ident)
		if cur == r.root.Node {
			break
		}
	}
	var b strings.Builder
	b.WriteString("script")
	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString(":FindFirstChild(")
		b.WriteString(lua.Quote(chain[i]))
		b.WriteString(")")
	}
	return b.String()
}
