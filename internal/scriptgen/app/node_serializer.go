package app

import (
	"errors"
	"reflect"

	"go.uber.org/zap"

	"SceneScript/internal/shared/lua"
)

// DeferredRef 是值为另一个节点的属性，等所有标识符都存在后再解析。
type DeferredRef struct {
	Property string
	Target   Node
}

// SerializedNode 是一个节点的构造语句、内联赋值与延迟引用。
// Length 是语句长度之和，每条语句另计一个分隔符。
type SerializedNode struct {
	Node       Node
	Ident      string
	Statements []string
	Length     int
	Refs       []DeferredRef

	parentLink string
}

func (sn *SerializedNode) add(stmt string) {
	sn.Statements = append(sn.Statements, stmt)
	sn.Length += len(stmt) + 1
}

// errMetadata 标记属性列表获取失败，调用方据此区分诊断原因。
var errMetadata = errors.New("metadata unavailable")

// serializeObject 生成 n 的构造语句，以及与同类默认实例不同的属性。
func (r *run) serializeObject(n Node) (*SerializedNode, error) {
	class := n.ClassName()
	if r.host.IsService(class) {
		return nil, ErrUnsupportedRoot.WithData("class", class).WithData("node", n.Name())
	}
	props, err := r.props.Properties(class, r.opts.Context)
	if err != nil {
		return nil, ErrUnavailable.WithData("class", class).WithCause(errors.Join(errMetadata, err))
	}
	base, err := r.base.Of(class)
	if err != nil {
		return nil, err
	}
	ident, ok := r.names.Name(n)
	if !ok {
		return nil, ErrInternalServer.WithData("node", n.Name()).WithData("stage", "names")
	}

	sn := &SerializedNode{Node: n, Ident: ident}
	sn.add(r.local(ident, "Instance.new("+lua.Quote(class)+")"))
	for _, p := range props {
		if p == "Parent" {
			continue
		}
		v, err := n.Get(p)
		if err != nil {
			r.diags.report(ReasonPropertyUnreadable, n, p)
			continue
		}
		if bv, berr := base.Get(p); berr == nil && sameValue(v, bv) {
			continue
		}
		if target, ok := v.(Node); ok && target != nil {
			sn.Refs = append(sn.Refs, DeferredRef{Property: p, Target: target})
			continue
		}
		lit, err := r.format.Literal(v, r.opts.Verbose)
		if err != nil {
			r.diags.report(ReasonValueUnformattable, n, p)
			r.log.Debug("literal failed", zap.String("property", p), zap.Error(err))
			continue
		}
		sn.add(r.assign(ident, p, lit))
	}
	return sn, nil
}

// sameValue 对节点按身份比较，其余按值深比较。
func sameValue(a, b any) bool {
	an, aIsNode := a.(Node)
	bn, bIsNode := b.(Node)
	if aIsNode || bIsNode {
		return aIsNode && bIsNode && an == bn
	}
	return reflect.DeepEqual(a, b)
}

func (r *run) local(ident, expr string) string {
	if r.opts.Verbose {
		return "local " + ident + " = " + expr
	}
	return "local " + ident + "=" + expr
}

func (r *run) assign(target, property, expr string) string {
	if r.opts.Verbose {
		return target + lua.Index(property) + " = " + expr
	}
	return target + lua.Index(property) + "=" + expr
}
