package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"SceneScript/internal/classdb"
	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/scriptgen/infra/hostadapter"
	"SceneScript/internal/scriptgen/infra/luafmt"
	"SceneScript/internal/scriptgen/infra/persistence/memory"
	"SceneScript/internal/scriptgen/infra/persistence/mongodb"
	"SceneScript/internal/scriptgen/infra/persistence/mysql"
	"SceneScript/internal/scriptgen/interfaces"
	"SceneScript/internal/shared/config"
	"SceneScript/internal/shared/infrastructure/db"
	"SceneScript/internal/shared/infrastructure/mongo"
	"SceneScript/internal/shared/logs"
	"SceneScript/internal/shared/security"
	"SceneScript/internal/shared/session"
	transporthttp "SceneScript/internal/shared/transport/http"
	"SceneScript/internal/shared/transport/http/middleware"
	"SceneScript/internal/shared/transport/ws"
	"SceneScript/modules/kit/logx"
)

func main() {
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "配置文件路径；默认向上查找 configs/conf.yml")
	issue := fs.String("issue-token", "", "为指定插件签发会话令牌并退出")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(config.Options{
		Path:  *cfgPath,
		Watch: true,
		OnChange: func(c config.Config) {
			logs.SetLevel(c.Log.Level)
		},
	})
	if err != nil {
		panic(err)
	}
	if err := logs.Init("server", cfg.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()

	issuer := security.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.ExpireH)*time.Hour)
	if *issue != "" {
		token, err := issuer.Award(*issue)
		if err != nil {
			logs.Fatal("issue token failed", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	baseLogger := logx.NewZapLogger(logs.Logger())

	// 类数据库异步加载，就绪前到达的请求会等待。
	classDB := classdb.New()
	go func() {
		var err error
		if cfg.ClassDB.Path != "" {
			err = classDB.LoadFile(cfg.ClassDB.Path)
		} else {
			err = classDB.LoadEmbedded()
		}
		if err != nil {
			logs.Error("load class database failed", zap.Error(err))
			return
		}
		logs.Info("class database ready", zap.Int("classes", len(classDB.Names())))
	}()

	props := app.NewPropertyCache(classDB, baseLogger)
	if cfg.Serializer.Prewarm {
		props.StartPrewarm(app.PrewarmClasses)
	}
	ser := app.NewSerializer(props, luafmt.New(), baseLogger)

	artifacts, history, closeRepos := openRepos(cfg, baseLogger)
	defer closeRepos()

	module := interfaces.New(interfaces.Deps{
		Loader:     hostadapter.NewLoader(classDB),
		Serializer: ser,
		Artifacts:  artifacts,
		History:    history,
		Defaults:   currentOptions,
		Log:        baseLogger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	gin.SetMode(gin.ReleaseMode)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	v1 := httpServer.Group().Group("/v1",
		middleware.Auth(issuer),
		middleware.BodyLimit(int64(cfg.HTTPServer.MaxBodyKB)<<10),
	)
	module.RegisterHTTP(v1)

	wsRouter := ws.NewRouter(baseLogger)
	module.RegisterWS(wsRouter)
	sessions := session.NewManager()
	wsServer := ws.NewServer(wsRouter, issuer, baseLogger)
	wsServer.OnConnect(sessions.Bind)
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))
	v1.GET("/sessions", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"code": 0, "data": gin.H{"online": sessions.Count()}})
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("server start", zap.String("addr", addr), zap.Bool("auth", issuer.Enabled()))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

// currentOptions 每次请求读一次，配置文件热更新后立即生效。
func currentOptions() domain.Options {
	s := config.Current().Serializer
	return domain.Options{Verbose: s.Verbose, Parent: s.Parent, Module: s.Module, Context: s.Context}
}

// openRepos 配置了 mongodb/mysql 就用，连不上或没配置退回内存实现。
func openRepos(cfg config.Config, log logx.Logger) (app.ArtifactRepo, app.HistoryRepo, func()) {
	var (
		artifacts app.ArtifactRepo = memory.NewArtifactRepository()
		history   app.HistoryRepo  = memory.NewRunHistoryRepository(0)
		closers   []func()
	)

	if cfg.MongoDB.URI != "" {
		client, err := mongo.Open(cfg.MongoDB, logs.Logger())
		if err != nil {
			log.Warn("mongodb unavailable, artifacts kept in memory", zap.Error(err))
		} else {
			artifacts = mongodb.NewArtifactRepository(client.Database(cfg.MongoDB.Database))
			closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		}
	}

	if cfg.MySQL.Host != "" {
		gdb, err := db.Open(cfg.MySQL)
		if err != nil {
			log.Warn("mysql unavailable, run history kept in memory", zap.Error(err))
		} else {
			repo := mysql.NewRunHistoryRepository(gdb)
			if err := repo.AutoMigrate(); err != nil {
				log.Warn("migrate script_run failed", zap.Error(err))
			}
			history = repo
			if sqlDB, err := gdb.DB(); err == nil {
				closers = append(closers, func() { _ = sqlDB.Close() })
			}
		}
	}

	return artifacts, history, func() {
		for _, c := range closers {
			c()
		}
	}
}
