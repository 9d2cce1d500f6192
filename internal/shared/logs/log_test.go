package logs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glogger "gorm.io/gorm/logger"

	"SceneScript/internal/shared/config"
)

func TestInit_写入文件(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scriptgen.log")
	require.NoError(t, Init("test", config.LogConfig{FileDir: file, Level: "debug"}))

	Info("hello")
	Debug("debug line")
	Sync()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"msg":"debug line"`)
	assert.Contains(t, string(b), `"logger":"test"`)
}

func TestSetLevel_过滤低级别(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scriptgen.log")
	require.NoError(t, Init("test", config.LogConfig{FileDir: file, Level: "debug"}))
	SetLevel("warn")
	Info("dropped")
	Warn("kept")
	Sync()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), "kept")
}

func TestGormLogger_慢查询与错误(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gorm.log")
	require.NoError(t, Init("test", config.LogConfig{FileDir: file, Level: "debug"}))

	gl := NewGormLogger(glogger.Warn, time.Millisecond)
	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 2", 0
	}, glogger.ErrRecordNotFound)
	// Silent 不输出
	gl.LogMode(glogger.Silent).Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT 3", 0
	}, nil)
	Sync()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "gorm slow query")
	assert.Contains(t, string(b), "SELECT 1")
	assert.NotContains(t, string(b), "SELECT 3")
}
