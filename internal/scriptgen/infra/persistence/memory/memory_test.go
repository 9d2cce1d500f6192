package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SceneScript/internal/scriptgen/domain"
)

func TestArtifactRepository_存取(t *testing.T) {
	r := NewArtifactRepository()
	ctx := context.Background()

	_, err := r.Get(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))

	a := domain.Artifact{ID: "run-1", Root: "Workspace.Tower", Strategy: domain.StrategyFlat}
	require.NoError(t, r.Save(ctx, a))
	got, err := r.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Workspace.Tower", got.Root)

	// 同 ID 覆盖
	a.Root = "Workspace.Other"
	require.NoError(t, r.Save(ctx, a))
	got, err = r.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Workspace.Other", got.Root)
}

func TestArtifactRepository_并发写(t *testing.T) {
	r := NewArtifactRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.Save(context.Background(), domain.Artifact{ID: fmt.Sprintf("run-%d", i)})
		}(i)
	}
	wg.Wait()
	for i := 0; i < 50; i++ {
		_, err := r.Get(context.Background(), fmt.Sprintf("run-%d", i))
		assert.NoError(t, err)
	}
}

func TestRunHistoryRepository_保留最近记录(t *testing.T) {
	r := NewRunHistoryRepository(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Save(context.Background(), domain.RunRecord{RunId: fmt.Sprintf("run-%d", i)}))
	}
	got, err := r.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "run-4", got[0].RunId)
	assert.Equal(t, 5, got[0].Id)
	assert.Equal(t, "run-2", got[2].RunId)
	one, err := r.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
