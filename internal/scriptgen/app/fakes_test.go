package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/shared/lua"
)

type fakeNode struct {
	class      string
	name       string
	props      map[string]any
	unreadable map[string]bool
}

func (n *fakeNode) ClassName() string { return n.class }
func (n *fakeNode) Name() string      { return n.name }

func (n *fakeNode) Get(p string) (any, error) {
	if n.unreadable[p] {
		return nil, errors.New("restricted")
	}
	if p == "Name" {
		return n.name, nil
	}
	v, ok := n.props[p]
	if !ok {
		return nil, fmt.Errorf("no property %s", p)
	}
	return v, nil
}

// fakeHost 是一棵手工搭的树；默认值按类给出，Name 默认等于类名。
type fakeHost struct {
	defaults       map[string]map[string]any
	parent         map[*fakeNode]*fakeNode
	children       map[*fakeNode][]*fakeNode
	services       map[string]bool
	locked         map[*fakeNode]bool
	uninstantiable map[string]bool
	created        map[string]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		defaults: map[string]map[string]any{
			"Part":        {"Anchored": false, "Size": 1.0},
			"Model":       {"PrimaryPart": nil, "Scale": 1.0},
			"Folder":      {},
			"ObjectValue": {"Value": nil},
			"StringValue": {"Value": ""},
			"Workspace":   {},
			"DataModel":   {},
			"Blob":        {"Data": ""},
		},
		parent:         make(map[*fakeNode]*fakeNode),
		children:       make(map[*fakeNode][]*fakeNode),
		services:       map[string]bool{"Workspace": true, "ReplicatedStorage": true, "DataModel": true},
		locked:         make(map[*fakeNode]bool),
		uninstantiable: make(map[string]bool),
		created:        make(map[string]int),
	}
}

func (h *fakeHost) node(class, name string, props map[string]any) *fakeNode {
	n := &fakeNode{class: class, name: name, props: make(map[string]any)}
	for k, v := range h.defaults[class] {
		n.props[k] = v
	}
	for k, v := range props {
		n.props[k] = v
	}
	return n
}

func (h *fakeHost) add(parent *fakeNode, class, name string, props map[string]any) *fakeNode {
	n := h.node(class, name, props)
	if parent != nil {
		h.parent[n] = parent
		h.children[parent] = append(h.children[parent], n)
	}
	return n
}

func (h *fakeHost) New(class string) (Node, error) {
	h.created[class]++
	if h.uninstantiable[class] {
		return nil, errors.New("cannot create " + class)
	}
	if _, ok := h.defaults[class]; !ok {
		return nil, errors.New("unknown class " + class)
	}
	return h.node(class, class, nil), nil
}

func (h *fakeHost) Descendants(n Node) []Node {
	var out []Node
	var walk func(f *fakeNode)
	walk = func(f *fakeNode) {
		for _, c := range h.children[f] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n.(*fakeNode))
	return out
}

func (h *fakeHost) Parent(n Node) Node {
	if p, ok := h.parent[n.(*fakeNode)]; ok {
		return p
	}
	return nil
}

func (h *fakeHost) IsService(class string) bool { return h.services[class] }

func (h *fakeHost) Readable(n Node) bool {
	for cur := n.(*fakeNode); cur != nil; cur = h.parent[cur] {
		if h.locked[cur] {
			return false
		}
	}
	return true
}

type fakeMeta struct {
	props  map[string][]string
	supers map[string][]string
	ready  chan struct{}
	err    map[string]error

	calls        int
	lastSecurity []string
}

func newFakeMeta() *fakeMeta {
	ready := make(chan struct{})
	close(ready)
	return &fakeMeta{
		props: map[string][]string{
			"Part":        {"Anchored", "Name", "Parent", "Size"},
			"Model":       {"Name", "Parent", "PrimaryPart", "Scale"},
			"Folder":      {"Name", "Parent"},
			"ObjectValue": {"Name", "Parent", "Value"},
			"StringValue": {"Name", "Parent", "Value"},
			"Blob":        {"Data", "Name", "Parent"},
		},
		supers: map[string][]string{},
		ready:  ready,
		err:    map[string]error{},
	}
}

func (m *fakeMeta) Properties(class string, tags, security []string) ([]string, error) {
	m.calls++
	m.lastSecurity = security
	if err := m.err[class]; err != nil {
		return nil, err
	}
	return m.props[class], nil
}

func (m *fakeMeta) Superclasses(class string) ([]string, error) {
	if s, ok := m.supers[class]; ok {
		return s, nil
	}
	return []string{"Instance"}, nil
}

func (m *fakeMeta) Ready() <-chan struct{} { return m.ready }

type unformattable struct{}

type fakeFormatter struct{}

func (fakeFormatter) Literal(v any, verbose bool) (string, error) {
	switch v := v.(type) {
	case nil:
		return "nil", nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return lua.Quote(v), nil
	}
	return "", fmt.Errorf("unsupported %T", v)
}

func newTestSerializer(meta *fakeMeta) *Serializer {
	return NewSerializer(NewPropertyCache(meta, nil), fakeFormatter{}, nil)
}

type fakeLoader struct {
	host Host
	root Node
	err  error
}

func (l fakeLoader) Load(ctx context.Context, doc []byte, root string) (Host, Node, error) {
	return l.host, l.root, l.err
}

type fakeArtifactRepo struct {
	saved map[string]domain.Artifact
	err   error
}

func (r *fakeArtifactRepo) Save(ctx context.Context, a domain.Artifact) error {
	if r.err != nil {
		return r.err
	}
	if r.saved == nil {
		r.saved = make(map[string]domain.Artifact)
	}
	r.saved[a.ID] = a
	return nil
}

func (r *fakeArtifactRepo) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	a, ok := r.saved[id]
	if !ok {
		return nil, domain.ErrArtifactNotFound.WithData("id", id)
	}
	return &a, nil
}

type fakeHistoryRepo struct {
	records []domain.RunRecord
	err     error
}

func (r *fakeHistoryRepo) Save(ctx context.Context, rec domain.RunRecord) error {
	r.records = append(r.records, rec)
	return r.err
}

func (r *fakeHistoryRepo) Recent(ctx context.Context, n int) ([]domain.RunRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.RunRecord, 0, n)
	for i := len(r.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
