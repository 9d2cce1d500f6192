package app

// baselines 为每个类缓存一个新建的默认实例，作为属性差异的基准。
// 只在一次运行内有效；失败同样缓存，同一个类不会重复尝试创建。
type baselines struct {
	host  Host
	nodes map[string]Node
	errs  map[string]error
}

func newBaselines(host Host) *baselines {
	return &baselines{host: host, nodes: make(map[string]Node), errs: make(map[string]error)}
}

func (b *baselines) Of(className string) (Node, error) {
	if n, ok := b.nodes[className]; ok {
		return n, nil
	}
	if err, ok := b.errs[className]; ok {
		return nil, err
	}
	n, err := b.host.New(className)
	if err != nil || n == nil {
		e := ErrUninstantiable.WithData("class", className).WithCause(err)
		b.errs[className] = e
		return nil, e
	}
	b.nodes[className] = n
	return n, nil
}
