// Package classdb 是类元数据服务：从 API dump 载入类层级与属性表，载入完成后发出就绪信号。
package classdb

import (
	"bytes"
	"embed"
	"io"
	"os"
	"sync"

	"SceneScript/modules/kit/errx"

	"github.com/goccy/go-json"
)

//go:embed data/classes.json
var embedded embed.FS

// rootSuperclass 是 dump 里 Instance 的父类占位符。
const rootSuperclass = "<<<ROOT>>>"

const (
	TagReadOnly      = "ReadOnly"
	TagNotScriptable = "NotScriptable"
	TagNotCreatable  = "NotCreatable"
	TagService       = "Service"
	TagDeprecated    = "Deprecated"
)

const (
	CodeUnknownClass errx.Code = "CLASSDB_UNKNOWN_CLASS"
	CodeNotLoaded    errx.Code = "CLASSDB_NOT_LOADED"
)

var (
	ErrUnknownClass = errx.NewBiz(CodeUnknownClass, "未知类名")
	ErrNotLoaded    = errx.NewSys(CodeNotLoaded, "类数据库载入失败")
)

// Database 是载入后只读的类数据库，所有查询都会等待就绪信号。
type Database struct {
	ready   chan struct{}
	once    sync.Once
	err     error
	classes map[string]*Class
}

func New() *Database {
	return &Database{ready: make(chan struct{})}
}

// LoadEmbedded 载入内置的常用类 dump。
func LoadEmbedded() (*Database, error) {
	db := New()
	return db, db.LoadEmbedded()
}

func (d *Database) LoadEmbedded() error {
	data, err := embedded.ReadFile("data/classes.json")
	if err != nil {
		d.finish(nil, err)
		return d.err
	}
	return d.Load(bytes.NewReader(data))
}

func (d *Database) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		d.finish(nil, err)
		return d.err
	}
	defer f.Close()
	return d.Load(f)
}

// Load 解析 dump 并发出就绪信号；失败也会就绪，之后的查询返回该错误。
// 只有第一次调用生效。
func (d *Database) Load(r io.Reader) error {
	var dump Dump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		d.finish(nil, err)
		return d.err
	}
	classes := make(map[string]*Class, len(dump.Classes))
	for i := range dump.Classes {
		c := &dump.Classes[i]
		if c.Superclass == rootSuperclass {
			c.Superclass = ""
		}
		classes[c.Name] = c
	}
	d.finish(classes, nil)
	return d.err
}

func (d *Database) finish(classes map[string]*Class, err error) {
	d.once.Do(func() {
		if err != nil {
			d.err = ErrNotLoaded.WithCause(err)
		}
		d.classes = classes
		close(d.ready)
	})
}

// Ready 在载入结束（成功或失败）后关闭。
func (d *Database) Ready() <-chan struct{} {
	return d.ready
}

func (d *Database) wait() error {
	<-d.ready
	return d.err
}

func (d *Database) Class(name string) (*Class, error) {
	if err := d.wait(); err != nil {
		return nil, err
	}
	c, ok := d.classes[name]
	if !ok {
		return nil, ErrUnknownClass.WithData("class", name)
	}
	return c, nil
}

// Chain 返回 name 自身及其全部父类，自身在前。
func (d *Database) Chain(name string) ([]*Class, error) {
	c, err := d.Class(name)
	if err != nil {
		return nil, err
	}
	chain := []*Class{c}
	seen := map[string]bool{c.Name: true}
	for c.Superclass != "" {
		next, ok := d.classes[c.Superclass]
		if !ok || seen[next.Name] {
			break
		}
		seen[next.Name] = true
		chain = append(chain, next)
		c = next
	}
	return chain, nil
}

// Superclasses 返回父类名，直接父类在前，不含自身。
func (d *Database) Superclasses(name string) ([]string, error) {
	chain, err := d.Chain(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(chain)-1)
	for _, c := range chain[1:] {
		out = append(out, c.Name)
	}
	return out, nil
}

// Properties 返回 name（含继承）的可写属性名，按声明顺序去重。
// 任一标签命中 excludedTags、或读/写安全级别命中 excludedSecurity 的属性被排除。
func (d *Database) Properties(name string, excludedTags, excludedSecurity []string) ([]string, error) {
	chain, err := d.Chain(name)
	if err != nil {
		return nil, err
	}
	tags := toSet(excludedTags)
	security := toSet(excludedSecurity)
	seen := make(map[string]bool)
	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, m := range chain[i].Members {
			if m.MemberType != MemberProperty || seen[m.Name] {
				continue
			}
			if m.hasAnyTag(tags) || security[m.Security.Read] || security[m.Security.Write] {
				continue
			}
			seen[m.Name] = true
			out = append(out, m.Name)
		}
	}
	return out, nil
}

// IsService 判断类是否为单例服务。
func (d *Database) IsService(name string) bool {
	c, err := d.Class(name)
	if err != nil {
		return false
	}
	return c.HasTag(TagService)
}

// Names 返回全部类名（无序）。
func (d *Database) Names() []string {
	if d.wait() != nil {
		return nil
	}
	out := make([]string, 0, len(d.classes))
	for name := range d.classes {
		out = append(out, name)
	}
	return out
}

func toSet(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		out[s] = true
	}
	return out
}
