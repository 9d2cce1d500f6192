package scene

import "strings"

// Instance 是场景树中的一个节点。身份即指针。
type Instance struct {
	id         string
	className  string
	name       string
	parent     *Instance
	children   []*Instance
	props      map[string]any
	locked     bool
	unreadable map[string]bool
}

func (i *Instance) ClassName() string { return i.className }

func (i *Instance) Name() string { return i.name }

// ID 是文档里的 Id 字段，用于引用与 #id 查找；可以为空。
func (i *Instance) ID() string { return i.id }

func (i *Instance) Parent() *Instance { return i.parent }

func (i *Instance) Children() []*Instance {
	out := make([]*Instance, len(i.children))
	copy(out, i.children)
	return out
}

// Locked 的节点及其所有后代在当前上下文不可索引。
func (i *Instance) Locked() bool { return i.locked }

func (i *Instance) SetLocked(locked bool) { i.locked = locked }

// SetUnreadable 让单个属性读取失败，模拟受限属性。
func (i *Instance) SetUnreadable(property string) {
	if i.unreadable == nil {
		i.unreadable = make(map[string]bool)
	}
	i.unreadable[property] = true
}

// Get 读取属性。Name/ClassName/Parent 是结构字段，其余来自属性表。
func (i *Instance) Get(property string) (any, error) {
	if i.unreadable[property] {
		return nil, ErrPropertyUnreadable.WithData("property", property).WithData("node", i.FullName())
	}
	switch property {
	case "Name":
		return i.name, nil
	case "ClassName":
		return i.className, nil
	case "Parent":
		if i.parent == nil {
			return nil, nil
		}
		return i.parent, nil
	}
	v, ok := i.props[property]
	if !ok {
		return nil, ErrUnknownProperty.WithData("property", property).WithData("class", i.className)
	}
	if derivedTransform[property] && i.hasCFrame() {
		return i.getDerived(property), nil
	}
	return v, nil
}

// Set 写入属性；引用类属性传 *Instance，nil 指针会归一成 nil。
func (i *Instance) Set(property string, value any) error {
	if ref, ok := value.(*Instance); ok && ref == nil {
		value = nil
	}
	switch property {
	case "Name":
		s, ok := value.(string)
		if !ok {
			return ErrBadValue.WithData("property", property)
		}
		i.name = s
		return nil
	case "Parent":
		p, _ := value.(*Instance)
		i.SetParent(p)
		return nil
	case "ClassName":
		return ErrBadValue.WithData("property", property)
	}
	if _, ok := i.props[property]; !ok {
		return ErrUnknownProperty.WithData("property", property).WithData("class", i.className)
	}
	if derivedTransform[property] && i.hasCFrame() {
		return i.setDerived(property, value)
	}
	i.props[property] = value
	return nil
}

// SetParent 维护父子两侧的链接。
func (i *Instance) SetParent(p *Instance) {
	if i.parent == p {
		return
	}
	if old := i.parent; old != nil {
		for k, c := range old.children {
			if c == i {
				old.children = append(old.children[:k], old.children[k+1:]...)
				break
			}
		}
	}
	i.parent = p
	if p != nil {
		p.children = append(p.children, i)
	}
}

// FindFirstChild 返回第一个名字匹配的子节点。
func (i *Instance) FindFirstChild(name string) *Instance {
	for _, c := range i.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Descendants 先序遍历，不含自身。
func (i *Instance) Descendants() []*Instance {
	var out []*Instance
	var walk func(n *Instance)
	walk = func(n *Instance) {
		for _, c := range n.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(i)
	return out
}

// FullName 形如 Workspace.Model.Part，不含 DataModel 本身。
func (i *Instance) FullName() string {
	var parts []string
	for n := i; n != nil; n = n.parent {
		if n.parent == nil && n.className == dataModelClass {
			break
		}
		parts = append(parts, n.name)
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, ".")
}
