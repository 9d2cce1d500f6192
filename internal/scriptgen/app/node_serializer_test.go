package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SceneScript/internal/scriptgen/domain"
)

func serializeOne(t *testing.T, h *fakeHost, meta *fakeMeta, n *fakeNode, opts domain.Options) (*run, *SerializedNode, error) {
	t.Helper()
	r := newTestSerializer(meta).newRun(context.Background(), h, opts)
	names, err := AllocateNames(n, nil, opts.Verbose)
	require.NoError(t, err)
	r.names = names
	sn, err := r.serializeObject(n)
	return r, sn, err
}

func TestSerializeObject_全默认只生成构造语句(t *testing.T) {
	h := newFakeHost()
	part := h.add(nil, "Part", "Part", nil)

	_, sn, err := serializeOne(t, h, newFakeMeta(), part, domain.Options{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, []string{`local Part = Instance.new("Part")`}, sn.Statements)
	assert.Empty(t, sn.Refs)
	assert.Equal(t, len(sn.Statements[0])+1, sn.Length)
}

func TestSerializeObject_一个值加一个引用(t *testing.T) {
	h := newFakeHost()
	other := h.add(nil, "Part", "Other", nil)
	model := h.add(nil, "Model", "Model", map[string]any{"Scale": 2.0, "PrimaryPart": other})

	_, sn, err := serializeOne(t, h, newFakeMeta(), model, domain.Options{Verbose: true})
	require.NoError(t, err)
	require.Len(t, sn.Statements, 2)
	assert.Equal(t, "Model.Scale = 2", sn.Statements[1])
	require.Len(t, sn.Refs, 1)
	assert.Equal(t, DeferredRef{Property: "PrimaryPart", Target: other}, sn.Refs[0])
}

func TestSerializeObject_紧凑形式与非标识符属性(t *testing.T) {
	h := newFakeHost()
	h.defaults["Part"]["Spawn Rate"] = 1.0
	meta := newFakeMeta()
	meta.props["Part"] = append(meta.props["Part"], "Spawn Rate")
	part := h.add(nil, "Part", "Part", map[string]any{"Anchored": true, "Spawn Rate": 0.5})

	_, sn, err := serializeOne(t, h, meta, part, domain.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{`local a=Instance.new("Part")`, `a.Anchored=true`, `a["Spawn Rate"]=0.5`}, sn.Statements)
}

func TestSerializeObject_不可读与无法格式化的属性被跳过(t *testing.T) {
	h := newFakeHost()
	part := h.add(nil, "Part", "Part", map[string]any{"Anchored": true, "Size": unformattable{}})
	part.unreadable = map[string]bool{"Anchored": true}

	r, sn, err := serializeOne(t, h, newFakeMeta(), part, domain.Options{Verbose: true})
	require.NoError(t, err)
	assert.Len(t, sn.Statements, 1)
	require.Len(t, r.diags.list, 2)
	assert.Equal(t, ReasonPropertyUnreadable.Code, r.diags.list[0].Reason)
	assert.Equal(t, "Anchored", r.diags.list[0].Property)
	assert.Equal(t, ReasonValueUnformattable.Code, r.diags.list[1].Reason)
}

func TestSerializeObject_服务与无法实例化(t *testing.T) {
	h := newFakeHost()
	ws := h.add(nil, "Workspace", "Workspace", nil)
	_, _, err := serializeOne(t, h, newFakeMeta(), ws, domain.Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedRoot))

	h.uninstantiable["Part"] = true
	part := h.add(nil, "Part", "Part", nil)
	_, _, err = serializeOne(t, h, newFakeMeta(), part, domain.Options{})
	assert.True(t, errors.Is(err, ErrUninstantiable))
}

func TestBaselines_每个类只创建一次(t *testing.T) {
	h := newFakeHost()
	h.uninstantiable["Weird"] = true
	b := newBaselines(h)
	n1, err := b.Of("Part")
	require.NoError(t, err)
	n2, err := b.Of("Part")
	require.NoError(t, err)
	assert.Same(t, n1, n2)

	_, err = b.Of("Weird")
	assert.True(t, errors.Is(err, ErrUninstantiable))
	_, err = b.Of("Weird")
	assert.True(t, errors.Is(err, ErrUninstantiable))
	assert.Equal(t, 1, h.created["Part"])
	assert.Equal(t, 1, h.created["Weird"])
}

func TestSameValue(t *testing.T) {
	h := newFakeHost()
	a := h.add(nil, "Part", "A", nil)
	b := h.add(nil, "Part", "A", nil)
	assert.True(t, sameValue(a, a))
	assert.False(t, sameValue(a, b))
	assert.False(t, sameValue(a, nil))
	assert.True(t, sameValue(nil, nil))
	assert.True(t, sameValue([]float64{1, 2}, []float64{1, 2}))
	assert.False(t, sameValue(1.0, 2.0))
}
