package mysql

import (
	"context"

	"gorm.io/gorm"

	"SceneScript/internal/scriptgen/domain"
)

type RunHistoryRepository struct {
	db *gorm.DB
}

func NewRunHistoryRepository(db *gorm.DB) *RunHistoryRepository {
	return &RunHistoryRepository{
		db: db,
	}
}

// AutoMigrate 建表 script_run，server 启动时调用一次。
func (r *RunHistoryRepository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&domain.RunRecord{}); err != nil {
		return domain.ErrSystemUnavailable.WithData("table", domain.RunRecord{}.TableName()).WithCause(err)
	}
	return nil
}

func (r *RunHistoryRepository) Save(ctx context.Context, rec domain.RunRecord) error {
	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("run_id", rec.RunId).WithCause(err)
	}
	return nil
}

// Recent 按时间倒序取最近 n 条。
func (r *RunHistoryRepository) Recent(ctx context.Context, n int) ([]domain.RunRecord, error) {
	var out []domain.RunRecord
	err := r.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	return out, nil
}
