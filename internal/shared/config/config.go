package config

import (
	"os"
	"path/filepath"
	"sync"
)

const defaultConfigRelPath = "configs/conf.yml"

var (
	mu      sync.RWMutex
	current = Defaults()
)

// Current 返回当前生效配置的副本；热更新后下一次调用即可看到新值。
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func set(c Config) {
	mu.Lock()
	current = c
	mu.Unlock()
}

// Defaults 是没有配置文件时的取值。
func Defaults() Config {
	return Config{
		Log:        LogConfig{Level: "info", MaxSize: 100, MaxBackups: 3, MaxAge: 7},
		HTTPServer: HTTPServerConfig{Host: "127.0.0.1", Port: 8088, MaxBodyKB: 8192},
		Serializer: SerializerConfig{Verbose: true, Prewarm: true},
		MongoDB:    MongoDBConfig{Database: "scenescript", ConnectTimeoutS: 3},
		MySQL:      MySQLConfig{Port: 3306, Charset: "utf8mb4", MaxIdle: 5, MaxConn: 20},
		Auth:       AuthConfig{ExpireH: 24},
	}
}

// resolvePath 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`，找不到返回空串。
func resolvePath(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir), nil
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
