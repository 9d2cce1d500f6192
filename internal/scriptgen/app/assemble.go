package app

import (
	"strings"

	"SceneScript/internal/scriptgen/domain"
)

// source 每条语句后跟一个换行，长度与累计长度一致。
func source(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *run) topLevel(src string) *domain.Container {
	c := &domain.Container{
		ClassName: domain.ClassScript,
		Name:      r.root.Node.Name(),
		Source:    src,
		Disabled:  true,
	}
	if r.opts.Module {
		c.ClassName = domain.ClassModuleScript
		c.Disabled = false
	}
	return c
}

// parentAssignment 恢复根节点原父节点；父节点无法寻址时记诊断并省略。
func (r *run) parentAssignment() (string, bool) {
	if !r.opts.Parent {
		return "", false
	}
	parent := r.host.Parent(r.root.Node)
	if parent == nil {
		return "", false
	}
	path, ok := r.externalPath(parent)
	if !ok {
		r.diags.report(ReasonUnresolvedReference, r.root.Node, "Parent")
		return "", false
	}
	return r.assign(r.root.Ident, "Parent", path), true
}

// assembleFlat：根语句，各后代语句及其父链接，后代引用（遍历序），根引用，可选父节点与 return。
func (r *run) assembleFlat() (*domain.Container, error) {
	lines := make([]string, 0, r.names.Len()*4)
	lines = append(lines, r.root.Statements...)
	for _, sn := range r.order {
		lines = append(lines, sn.Statements...)
		lines = append(lines, sn.parentLink)
	}
	for _, sn := range r.order {
		lines = append(lines, r.refLines(sn, false)...)
	}
	lines = append(lines, r.refLines(r.root, false)...)
	if stmt, ok := r.parentAssignment(); ok {
		lines = append(lines, stmt)
	}
	if r.opts.Module {
		lines = append(lines, "return "+r.root.Ident)
	}

	src := source(lines)
	if len(src) > domain.MaxSourceLength {
		return nil, ErrSizeExceeded.WithData("container", r.root.Node.Name()).WithData("length", len(src))
	}
	return r.topLevel(src), nil
}

func (r *run) refLines(sn *SerializedNode, split bool) []string {
	var out []string
	for _, ref := range sn.Refs {
		expr, ok := r.resolve(sn, ref, split)
		if !ok {
			continue
		}
		out = append(out, r.assign(sn.Ident, ref.Property, expr))
	}
	return out
}

// assembleSplit：每个节点一个 ModuleScript，按节点树嵌套；顶层脚本负责加载根并连接引用。
func (r *run) assembleSplit() (*domain.Container, error) {
	containers := make(map[Node]*domain.Container, len(r.order)+1)
	all := append([]*SerializedNode{r.root}, r.order...)
	for _, sn := range all {
		c := &domain.Container{ClassName: domain.ClassModuleScript, Name: sn.Ident}
		containers[sn.Node] = c
		if sn != r.root {
			parent := containers[r.host.Parent(sn.Node)]
			parent.Children = append(parent.Children, c)
		}
	}
	for _, sn := range all {
		c := containers[sn.Node]
		lines := append([]string{}, sn.Statements...)
		if len(c.Children) > 0 {
			lines = append(lines, r.glue(sn.Ident))
		}
		lines = append(lines, "return "+sn.Ident)
		c.Source = source(lines)
		if len(c.Source) > domain.MaxSourceLength {
			return nil, ErrSizeExceeded.WithData("container", sn.Ident).WithData("length", len(c.Source))
		}
	}

	rootIdent := r.root.Ident
	lines := []string{r.local(rootIdent, "require("+r.containerPath(r.root.Node)+")")}
	lines = append(lines, r.refLines(r.root, true)...)
	if stmt, ok := r.parentAssignment(); ok {
		lines = append(lines, stmt)
	}
	for _, sn := range r.order {
		if len(sn.Refs) == 0 {
			continue
		}
		refs := r.refLines(sn, true)
		if len(refs) == 0 {
			continue
		}
		lines = append(lines, r.block(r.local(sn.Ident, "require("+r.containerPath(sn.Node)+")"), refs)...)
	}
	if r.opts.Module {
		lines = append(lines, "return "+rootIdent)
	}

	src := source(lines)
	if len(src) > domain.MaxSourceLength {
		return nil, ErrSizeExceeded.WithData("container", r.root.Node.Name()).WithData("length", len(src))
	}
	top := r.topLevel(src)
	top.Children = []*domain.Container{containers[r.root.Node]}
	return top, nil
}

// glue 在加载时 require 所有子容器并挂到本地实例下。
func (r *run) glue(ident string) string {
	if r.opts.Verbose {
		return "for _, child in ipairs(script:GetChildren()) do require(child).Parent = " + ident + " end"
	}
	return "for _,child in ipairs(script:GetChildren())do require(child).Parent=" + ident + " end"
}

// block 用 do ... end 包住一个后代的引用连接，避免顶层局部变量超过上限。
func (r *run) block(head string, body []string) []string {
	if !r.opts.Verbose {
		return []string{"do " + head + " " + strings.Join(body, " ") + " end"}
	}
	out := make([]string, 0, len(body)+3)
	out = append(out, "do", "\t"+head)
	for _, l := range body {
		out = append(out, "\t"+l)
	}
	return append(out, "end")
}
