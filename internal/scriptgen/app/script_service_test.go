package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/tracex"
)

func newTestService(loader SceneLoader, artifacts ArtifactRepo, history HistoryRepo) *ScriptService {
	s := NewScriptService(loader, newTestSerializer(newFakeMeta()), artifacts, history, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestScriptService_Generate_存档并记录历史(t *testing.T) {
	h, house := houseScene()
	artifacts := &fakeArtifactRepo{}
	history := &fakeHistoryRepo{}
	s := newTestService(fakeLoader{host: h, root: house}, artifacts, history)

	ctx := tracex.WithRunID(context.Background(), "run-1")
	resp, err := s.Generate(ctx, GenerateReq{Document: []byte(`{}`), Root: "Workspace.House", Options: domain.Options{Verbose: true}})
	require.NoError(t, err)

	assert.Equal(t, "run-1", resp.ArtifactID)
	assert.Equal(t, domain.StrategyFlat, resp.Strategy)
	assert.Equal(t, "House", resp.Names["House"])
	assert.Equal(t, "Door", resp.Names["Door"])

	saved, err := s.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Workspace.House", saved.Root)
	assert.Equal(t, resp.Container, saved.Container)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, domain.RunSuccess, rec.State)
	assert.Equal(t, 3, rec.Serialized)
	assert.Equal(t, "flat", rec.Strategy)
}

func TestScriptService_Generate_失败只记历史不存档(t *testing.T) {
	h := newFakeHost()
	ws := h.add(nil, "Workspace", "Workspace", nil)
	artifacts := &fakeArtifactRepo{}
	history := &fakeHistoryRepo{}
	s := newTestService(fakeLoader{host: h, root: ws}, artifacts, history)

	_, err := s.Generate(context.Background(), GenerateReq{Document: []byte(`{}`), Root: "Workspace"})
	assert.True(t, errors.Is(err, ErrUnsupportedRoot))
	assert.Empty(t, artifacts.saved)
	require.Len(t, history.records, 1)
	assert.Equal(t, domain.RunFailed, history.records[0].State)
	assert.Equal(t, string(CodeUnsupportedRoot), history.records[0].ErrCode)
	assert.NotEmpty(t, history.records[0].RunId)
}

func TestScriptService_Generate_参数与依赖错误(t *testing.T) {
	h, house := houseScene()

	s := newTestService(fakeLoader{host: h, root: house}, &fakeArtifactRepo{}, nil)
	_, err := s.Generate(context.Background(), GenerateReq{})
	assert.True(t, errors.Is(err, ErrBadRequest))

	s = newTestService(fakeLoader{err: errors.New("no such node")}, &fakeArtifactRepo{}, nil)
	_, err = s.Generate(context.Background(), GenerateReq{Document: []byte(`{}`), Root: "Nope"})
	assert.True(t, errors.Is(err, ErrBadRequest))

	s = newTestService(fakeLoader{host: h, root: house}, &fakeArtifactRepo{err: errors.New("mongo down")}, nil)
	_, err = s.Generate(context.Background(), GenerateReq{Document: []byte(`{}`)})
	assert.True(t, errors.Is(err, ErrUnavailable))

	// 历史写入失败不影响结果。
	s = newTestService(fakeLoader{host: h, root: house}, &fakeArtifactRepo{}, &fakeHistoryRepo{err: errors.New("mysql down")})
	_, err = s.Generate(context.Background(), GenerateReq{Document: []byte(`{}`)})
	assert.NoError(t, err)
}

func TestScriptService_Get_不存在(t *testing.T) {
	s := newTestService(fakeLoader{}, &fakeArtifactRepo{}, nil)
	_, err := s.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	_, err = s.Get(context.Background(), "")
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestScriptService_History(t *testing.T) {
	h, house := houseScene()
	history := &fakeHistoryRepo{}
	s := newTestService(fakeLoader{host: h, root: house}, &fakeArtifactRepo{}, history)

	for i := 0; i < 3; i++ {
		ctx := tracex.WithRunID(context.Background(), string(rune('a'+i)))
		_, err := s.Generate(ctx, GenerateReq{Document: []byte(`{}`)})
		require.NoError(t, err)
	}
	recs, err := s.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].RunId)

	// 非法上限按上限处理
	recs, err = s.History(context.Background(), -1)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	history.err = errors.New("mysql down")
	_, err = s.History(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrUnavailable))

	recs, err = newTestService(fakeLoader{}, &fakeArtifactRepo{}, nil).History(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}
