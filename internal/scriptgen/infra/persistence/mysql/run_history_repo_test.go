package mysql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/tracex"
)

// sqlRecorder 记下每条语句的 SQL。
type sqlRecorder struct {
	logger.Interface
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.sqls = append(r.sqls, sql)
}

// DryRun 加上 SkipDefaultTransaction 后只拼 SQL，不会连接数据库。
func TestRunHistoryRepository_生成的SQL(t *testing.T) {
	rec := &sqlRecorder{Interface: logger.Discard}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "u:p@tcp(127.0.0.1:3306)/x",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 rec,
	})
	require.NoError(t, err)

	r := NewRunHistoryRepository(db)
	ctx := context.Background()
	require.NoError(t, r.Save(ctx, domain.RunRecord{RunId: "r1", State: domain.RunSuccess}))
	_, err = r.Recent(ctx, 5)
	require.NoError(t, err)

	require.Len(t, rec.sqls, 2)
	assert.Contains(t, rec.sqls[0], "INSERT INTO `script_run`")
	assert.Contains(t, rec.sqls[0], "`run_id`")
	assert.Contains(t, rec.sqls[1], "FROM `script_run`")
	assert.Contains(t, rec.sqls[1], "ORDER BY id DESC LIMIT")
}

// 需要本地 MySQL：SCENESCRIPT_TEST_MYSQL_DSN=user:pw@tcp(127.0.0.1:3306)/scenescript_test?parseTime=True
func TestRunHistoryRepository_真实库(t *testing.T) {
	dsn := os.Getenv("SCENESCRIPT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("SCENESCRIPT_TEST_MYSQL_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	r := NewRunHistoryRepository(db)
	require.NoError(t, r.AutoMigrate())

	ctx := context.Background()
	id := tracex.NewRunID()
	require.NoError(t, r.Save(ctx, domain.RunRecord{RunId: id, Root: "Workspace.Tower", State: domain.RunSuccess, CTime: time.Now()}))

	// 重复 run_id 违反唯一索引
	err = r.Save(ctx, domain.RunRecord{RunId: id})
	assert.True(t, errors.Is(err, domain.ErrSystemUnavailable))

	got, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].RunId)
}
