package memory

import (
	"context"
	"sync"

	"SceneScript/internal/scriptgen/domain"
)

// ArtifactRepository 进程内存档，CLI 与未配置 Mongo 的 server 使用。
type ArtifactRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Artifact
}

func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{items: make(map[string]domain.Artifact)}
}

func (r *ArtifactRepository) Save(ctx context.Context, a domain.Artifact) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
	return nil
}

func (r *ArtifactRepository) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrArtifactNotFound.WithData("id", id)
	}
	return &a, nil
}
