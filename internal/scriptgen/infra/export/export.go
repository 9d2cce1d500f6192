// Package export 把容器树写成 Rojo 风格的目录：
// ModuleScript -> X.lua，Script -> X.server.lua，有子容器时改成 X/init(.server).lua。
package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/errx"
)

const CodeExportFailed errx.Code = "EXPORT_FAILED"

var ErrExportFailed = errx.NewSys(CodeExportFailed, "产物写盘失败")

type meta struct {
	Properties map[string]any `json:"properties"`
}

// Write 在 dir 下生成容器树，返回写出的文件（相对 dir）。
func Write(dir string, c *domain.Container) ([]string, error) {
	w := &writer{root: dir}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ErrExportFailed.WithData("dir", dir).WithCause(err)
	}
	if err := w.write(dir, c); err != nil {
		return nil, err
	}
	return w.files, nil
}

type writer struct {
	root  string
	files []string
}

func (w *writer) write(dir string, c *domain.Container) error {
	name := fileName(c.Name)
	suffix := ".lua"
	if c.ClassName == domain.ClassScript {
		suffix = ".server.lua"
	}

	base := filepath.Join(dir, name)
	if len(c.Children) > 0 {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return ErrExportFailed.WithData("dir", base).WithCause(err)
		}
		if err := w.file(filepath.Join(base, "init"+suffix), []byte(c.Source)); err != nil {
			return err
		}
		if err := w.meta(filepath.Join(base, "init.meta.json"), c); err != nil {
			return err
		}
		for _, ch := range c.Children {
			if err := w.write(base, ch); err != nil {
				return err
			}
		}
		return nil
	}
	if err := w.file(base+suffix, []byte(c.Source)); err != nil {
		return err
	}
	return w.meta(base+".meta.json", c)
}

// meta 只在需要时写：脚本被禁用时。
func (w *writer) meta(path string, c *domain.Container) error {
	if !c.Disabled {
		return nil
	}
	data, err := json.MarshalIndent(meta{Properties: map[string]any{"Disabled": true}}, "", "  ")
	if err != nil {
		return ErrExportFailed.WithData("file", path).WithCause(err)
	}
	return w.file(path, append(data, '\n'))
}

func (w *writer) file(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ErrExportFailed.WithData("file", path).WithCause(err)
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	w.files = append(w.files, filepath.ToSlash(rel))
	return nil
}

// fileName 替换文件系统不接受的字符；空名用 _。
func fileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, " .")
	if name == "" {
		return "_"
	}
	return name
}
