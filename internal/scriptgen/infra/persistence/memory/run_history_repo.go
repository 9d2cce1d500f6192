package memory

import (
	"context"
	"sync"

	"SceneScript/internal/scriptgen/domain"
)

// RunHistoryRepository 只保留最近 limit 条记录。
type RunHistoryRepository struct {
	mu      sync.Mutex
	limit   int
	records []domain.RunRecord
	nextID  int
}

func NewRunHistoryRepository(limit int) *RunHistoryRepository {
	if limit <= 0 {
		limit = 1024
	}
	return &RunHistoryRepository{limit: limit}
}

func (r *RunHistoryRepository) Save(ctx context.Context, rec domain.RunRecord) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.Id = r.nextID
	r.records = append(r.records, rec)
	if over := len(r.records) - r.limit; over > 0 {
		r.records = append([]domain.RunRecord(nil), r.records[over:]...)
	}
	return nil
}

// Recent 最新的在前；n<=0 返回全部。
func (r *RunHistoryRepository) Recent(ctx context.Context, n int) ([]domain.RunRecord, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || n > len(r.records) {
		n = len(r.records)
	}
	out := make([]domain.RunRecord, 0, n)
	for i := len(r.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
