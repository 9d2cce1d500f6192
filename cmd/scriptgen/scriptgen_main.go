package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"SceneScript/internal/classdb"
	"SceneScript/internal/scriptgen/app"
	"SceneScript/internal/scriptgen/domain"
	"SceneScript/internal/scriptgen/infra/export"
	"SceneScript/internal/scriptgen/infra/hostadapter"
	"SceneScript/internal/scriptgen/infra/luafmt"
	"SceneScript/internal/scriptgen/infra/persistence/memory"
	"SceneScript/internal/shared/config"
	"SceneScript/internal/shared/logs"
	"SceneScript/modules/kit/errx"
	"SceneScript/modules/kit/logx"
)

var flagKeys = map[string]string{
	"verbose": "serializer.verbose",
	"parent":  "serializer.parent",
	"module":  "serializer.module",
	"context": "serializer.context",
	"dump":    "classdb.path",
}

func main() {
	fs := pflag.NewFlagSet("scriptgen", pflag.ExitOnError)
	docPath := fs.String("doc", "", "场景文档（JSON）路径，必填")
	root := fs.String("root", "", "根节点路径，例如 Workspace.Model 或 #id")
	out := fs.String("out", "", "输出目录；为空时把脚本打印到标准输出")
	cfgPath := fs.String("config", "", "配置文件路径；默认向上查找 configs/conf.yml")
	fs.String("dump", "", "API dump 路径；为空使用内置数据")
	fs.Bool("verbose", true, "输出可读形式")
	fs.Bool("parent", false, "脚本末尾恢复原父节点")
	fs.Bool("module", false, "生成 ModuleScript 并 return 根节点")
	fs.Bool("context", false, "以插件权限过滤属性")
	_ = fs.Parse(os.Args[1:])

	if *docPath == "" {
		fmt.Fprintln(os.Stderr, "scriptgen: --doc is required")
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(config.Options{Path: *cfgPath, Flags: fs, FlagKeys: flagKeys})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scriptgen: load config: %v\n", err)
		os.Exit(2)
	}
	if err := logs.Init("scriptgen", cfg.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()

	if err := run(cfg, *docPath, *root, *out); err != nil {
		logs.Error("scriptgen failed", zap.String("code", string(errx.CodeOf(err))), zap.Error(err))
		fmt.Fprintf(os.Stderr, "scriptgen: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, docPath, root, out string) error {
	db := classdb.New()
	var err error
	if cfg.ClassDB.Path != "" {
		err = db.LoadFile(cfg.ClassDB.Path)
	} else {
		err = db.LoadEmbedded()
	}
	if err != nil {
		return fmt.Errorf("load class database: %w", err)
	}

	document, err := os.ReadFile(docPath)
	if err != nil {
		return err
	}

	log := logx.NewZapLogger(logs.Logger())
	ser := app.NewSerializer(app.NewPropertyCache(db, log), luafmt.New(), log)
	svc := app.NewScriptService(hostadapter.NewLoader(db), ser,
		memory.NewArtifactRepository(), memory.NewRunHistoryRepository(1), log)

	resp, err := svc.Generate(context.Background(), app.GenerateReq{
		Document: document,
		Root:     root,
		Options: domain.Options{
			Verbose: cfg.Serializer.Verbose,
			Parent:  cfg.Serializer.Parent,
			Module:  cfg.Serializer.Module,
			Context: cfg.Serializer.Context,
		},
	})
	if err != nil {
		return err
	}

	for _, d := range resp.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s %s %s: %s\n", d.Reason, d.Class, d.Node, d.Message)
	}

	if out == "" {
		if resp.Strategy != domain.StrategyFlat {
			return errors.New("split output needs --out")
		}
		_, err := os.Stdout.WriteString(resp.Container.Source)
		return err
	}

	files, err := export.Write(out, resp.Container)
	if err != nil {
		return err
	}
	logs.Info("scriptgen done",
		zap.String("strategy", string(resp.Strategy)),
		zap.Int("serialized", resp.Stats.Serialized),
		zap.Int("skipped", resp.Stats.Skipped),
		zap.Int("length", resp.Stats.Length),
		zap.Strings("files", files),
	)
	return nil
}
