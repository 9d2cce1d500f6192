package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/logx"
)

// State 是一次运行所处的阶段；任何阶段失败都直接进入 StateFailed。
type State int

const (
	StateInit State = iota
	StateNamesAllocated
	StateRootSerialized
	StateDescendantsSerialized
	StateStrategyChosen
	StateFlatAssembled
	StateSplitAssembled
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateNamesAllocated:
		return "names_allocated"
	case StateRootSerialized:
		return "root_serialized"
	case StateDescendantsSerialized:
		return "descendants_serialized"
	case StateStrategyChosen:
		return "strategy_chosen"
	case StateFlatAssembled:
		return "flat_assembled"
	case StateSplitAssembled:
		return "split_assembled"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result 是一次成功运行的产物；失败时不返回任何部分产物。
type Result struct {
	Strategy    domain.Strategy
	Container   *domain.Container
	Names       *NameTable
	Stats       domain.Stats
	Diagnostics []domain.Diagnostic
}

// Serializer 是长生命周期的序列化服务，持有进程级属性缓存。
// 单次运行同步执行；多个运行可以并发（HTTP 多请求）。
type Serializer struct {
	props  *PropertyCache
	format Formatter
	log    Logger
}

func NewSerializer(props *PropertyCache, format Formatter, log Logger) *Serializer {
	if log == nil {
		log = logx.Nop()
	}
	return &Serializer{props: props, format: format, log: log}
}

func (s *Serializer) Properties() *PropertyCache { return s.props }

// run 是一次运行的全部状态：名字表、默认实例、诊断都只在本次有效。
type run struct {
	ctx    context.Context
	host   Host
	opts   domain.Options
	props  *PropertyCache
	format Formatter
	log    Logger

	state State
	names *NameTable
	base  *baselines
	diags *diagnostics

	root       *SerializedNode
	serialized map[Node]*SerializedNode
	order      []*SerializedNode
	skipped    map[Node]bool
	total      int
}

// Serialize 把 root 及其子树转成重建脚本。
func (s *Serializer) Serialize(ctx context.Context, host Host, root Node, opts domain.Options) (*Result, error) {
	r := s.newRun(ctx, host, opts)
	res, err := r.execute(root)
	if err != nil {
		r.log.Debug("serialize failed", zap.Stringer("state", r.state), zap.Error(err))
		r.state = StateFailed
		return nil, err
	}
	r.to(StateDone)
	return res, nil
}

func (s *Serializer) newRun(ctx context.Context, host Host, opts domain.Options) *run {
	return &run{
		ctx:        ctx,
		host:       host,
		opts:       opts,
		props:      s.props,
		format:     s.format,
		log:        s.log.WithContext(ctx),
		base:       newBaselines(host),
		diags:      &diagnostics{ctx: ctx, log: s.log},
		serialized: make(map[Node]*SerializedNode),
		skipped:    make(map[Node]bool),
	}
}

func (r *run) to(s State) {
	r.state = s
	r.log.Debug("serialize state", zap.Stringer("state", s))
}

func (r *run) execute(root Node) (*Result, error) {
	if err := r.collect(root); err != nil {
		return nil, err
	}

	strategy := domain.StrategyFlat
	if len(r.order)+1 > domain.MaxFlatNodes || r.total > domain.MaxSourceLength {
		strategy = domain.StrategySplit
	}
	r.to(StateStrategyChosen)

	var (
		container *domain.Container
		err       error
	)
	if strategy == domain.StrategyFlat {
		container, err = r.assembleFlat()
		if err != nil {
			return nil, err
		}
		r.to(StateFlatAssembled)
	} else {
		container, err = r.assembleSplit()
		if err != nil {
			return nil, err
		}
		r.to(StateSplitAssembled)
	}

	return &Result{
		Strategy:  strategy,
		Container: container,
		Names:     r.names,
		Stats: domain.Stats{
			Serialized: len(r.order) + 1,
			Skipped:    len(r.skipped),
			Length:     container.SourceLength(),
		},
		Diagnostics: r.diags.list,
	}, nil
}

// collect 走到 DescendantsSerialized：分配名字，序列化根与所有可达后代。
func (r *run) collect(root Node) error {
	r.to(StateInit)
	if !r.host.Readable(root) {
		return ErrAccessRestricted.WithData("node", root.Name())
	}

	descendants := r.host.Descendants(root)
	names, err := AllocateNames(root, descendants, r.opts.Verbose)
	if err != nil {
		return err
	}
	r.names = names
	r.to(StateNamesAllocated)

	rootSN, err := r.serializeObject(root)
	if err != nil {
		return err
	}
	if rootSN.Length > domain.MaxSourceLength {
		return ErrSizeExceeded.WithData("node", root.Name()).WithData("length", rootSN.Length)
	}
	r.root = rootSN
	r.serialized[root] = rootSN
	r.total = rootSN.Length
	r.to(StateRootSerialized)

	for _, d := range descendants {
		if err := r.serializeDescendant(d); err != nil {
			return err
		}
	}
	r.to(StateDescendantsSerialized)
	return nil
}

// serializeDescendant 跳过的节点连同整棵子树一起跳过，保证父链接不会指向缺失的标识符。
func (r *run) serializeDescendant(d Node) error {
	parent := r.host.Parent(d)
	parentSN, ok := r.serialized[parent]
	switch {
	case parent == nil || r.skipped[parent] || !ok:
		return r.skip(d, ReasonAncestorSkipped)
	case !r.host.Readable(d):
		return r.skip(d, ReasonAccessRestricted)
	case r.host.IsService(d.ClassName()):
		return r.skip(d, ReasonUnsupportedNode)
	}

	sn, err := r.serializeObject(d)
	switch {
	case err == nil:
	case errors.Is(err, ErrUninstantiable):
		return r.skip(d, ReasonUninstantiable)
	case errors.Is(err, errMetadata):
		return r.skip(d, ReasonMetadataUnavailable)
	default:
		return err
	}
	if sn.Length > domain.MaxSourceLength {
		return ErrSizeExceeded.WithData("node", d.Name()).WithData("length", sn.Length)
	}
	sn.parentLink = r.assign(sn.Ident, "Parent", parentSN.Ident)
	r.serialized[d] = sn
	r.order = append(r.order, sn)
	r.total += sn.Length + len(sn.parentLink) + 1
	return nil
}

func (r *run) skip(d Node, reason Reason) error {
	r.skipped[d] = true
	r.diags.report(reason, d, "")
	return nil
}
