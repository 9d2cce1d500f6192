package domain

const (
	ClassScript       = "Script"
	ClassModuleScript = "ModuleScript"

	// MaxSourceLength 是单个脚本单元 Source 的硬上限（字符数）。
	MaxSourceLength = 199_999
	// MaxFlatNodes 是平铺模式下最多容纳的节点数（含根）。
	MaxFlatNodes = 200
)

type Strategy string

const (
	StrategyFlat  Strategy = "flat"
	StrategySplit Strategy = "split"
)

// Container 是产物中的一个脚本单元；拆分模式下按节点树嵌套。
type Container struct {
	ClassName string       `json:"class_name" bson:"class_name"`
	Name      string       `json:"name" bson:"name"`
	Source    string       `json:"source" bson:"source"`
	Disabled  bool         `json:"disabled,omitempty" bson:"disabled,omitempty"`
	Children  []*Container `json:"children,omitempty" bson:"children,omitempty"`
}

// Walk 先序遍历，fn 返回 false 时不再进入该单元的子树。path 只在回调内有效。
func (c *Container) Walk(fn func(path []string, c *Container) bool) {
	var walk func(path []string, n *Container)
	walk = func(path []string, n *Container) {
		path = append(path, n.Name)
		if !fn(path, n) {
			return
		}
		for _, ch := range n.Children {
			walk(path, ch)
		}
	}
	walk(nil, c)
}

// Count 返回单元总数（含自身）。
func (c *Container) Count() int {
	n := 0
	c.Walk(func([]string, *Container) bool { n++; return true })
	return n
}

// SourceLength 是所有容器源码长度之和。
func (c *Container) SourceLength() int {
	n := 0
	c.Walk(func(_ []string, u *Container) bool { n += len(u.Source); return true })
	return n
}
