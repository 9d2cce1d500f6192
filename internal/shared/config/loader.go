package config

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options 控制一次加载。
type Options struct {
	// Path 显式指定配置文件；为空时向上查找 configs/conf.yml，找不到只用默认值。
	Path string
	// Flags 里与配置键同名的参数覆盖文件中的值，例如 serializer.verbose。
	Flags *pflag.FlagSet
	// FlagKeys 把短参数名映射到配置键，例如 "verbose" -> "serializer.verbose"。
	FlagKeys map[string]string
	// Watch 为 true 时监听文件变更并热更新 Current()。
	Watch bool
	// OnChange 在热更新成功后调用。
	OnChange func(Config)
}

// Load 读取配置并设置为当前配置。
func Load(opts Options) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	path, err := resolvePath(opts.Path)
	if err != nil {
		return Config{}, err
	}
	if opts.Path != "" && !fileExist(path) {
		return Config{}, fmt.Errorf("config file not exist, configPath=%v", path)
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("viper unmarshal config data: %w", err)
	}
	set(c)

	if opts.Watch && path != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			var next Config
			if err := v.Unmarshal(&next); err != nil {
				log.Printf("配置文件变更但解析失败, file=%s, err=%v", e.Name, err)
				return
			}
			set(next)
			log.Printf("配置文件变更, file=%s", e.Name)
			if opts.OnChange != nil {
				opts.OnChange(next)
			}
		})
		v.WatchConfig()
	}
	return c, nil
}

// setDefaults 把默认值逐个写进 viper，Unmarshal 与 BindPFlag 才能看到所有键。
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.file_dir", d.Log.FileDir)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dev", d.Log.Dev)

	v.SetDefault("httpserver.host", d.HTTPServer.Host)
	v.SetDefault("httpserver.port", d.HTTPServer.Port)
	v.SetDefault("httpserver.max_body_kb", d.HTTPServer.MaxBodyKB)

	v.SetDefault("serializer.verbose", d.Serializer.Verbose)
	v.SetDefault("serializer.parent", d.Serializer.Parent)
	v.SetDefault("serializer.module", d.Serializer.Module)
	v.SetDefault("serializer.context", d.Serializer.Context)
	v.SetDefault("serializer.prewarm", d.Serializer.Prewarm)

	v.SetDefault("classdb.path", d.ClassDB.Path)

	v.SetDefault("mongodb.uri", d.MongoDB.URI)
	v.SetDefault("mongodb.database", d.MongoDB.Database)
	v.SetDefault("mongodb.connect_timeout_s", d.MongoDB.ConnectTimeoutS)

	v.SetDefault("mysql.host", d.MySQL.Host)
	v.SetDefault("mysql.port", d.MySQL.Port)
	v.SetDefault("mysql.user", d.MySQL.User)
	v.SetDefault("mysql.password", d.MySQL.Password)
	v.SetDefault("mysql.dbname", d.MySQL.DBName)
	v.SetDefault("mysql.charset", d.MySQL.Charset)
	v.SetDefault("mysql.max_idle", d.MySQL.MaxIdle)
	v.SetDefault("mysql.max_conn", d.MySQL.MaxConn)

	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.expire_h", d.Auth.ExpireH)
}
