package app

import (
	"context"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/logx"
)

// Node 是宿主树上的一个对象。身份即接口值相等（指针接收者）。
type Node interface {
	ClassName() string
	Name() string
	Get(property string) (any, error)
}

// Host 是宿主对象模型。Parent 只是查找，序列化器从不持有父链接。
type Host interface {
	New(className string) (Node, error)
	// Descendants 先序，不含 n 自身。
	Descendants(n Node) []Node
	// Parent 没有父节点时返回 nil 接口。
	Parent(n Node) Node
	IsService(className string) bool
	// Readable 为 false 表示在当前上下文中无法索引该节点。
	Readable(n Node) bool
}

// Metadata 是类反射服务。
type Metadata interface {
	Properties(className string, excludedTags, excludedSecurity []string) ([]string, error)
	// Superclasses 直接父类在前。
	Superclasses(className string) ([]string, error)
	Ready() <-chan struct{}
}

// Formatter 把属性值转成 Lua 字面量。
type Formatter interface {
	Literal(v any, verbose bool) (string, error)
}

// SceneLoader 把场景文档载入一个宿主，并按路径找到根节点。
type SceneLoader interface {
	Load(ctx context.Context, document []byte, rootPath string) (Host, Node, error)
}

type ArtifactRepo interface {
	Save(ctx context.Context, a domain.Artifact) error
	Get(ctx context.Context, id string) (*domain.Artifact, error)
}

type HistoryRepo interface {
	Save(ctx context.Context, r domain.RunRecord) error
	// Recent 最新的在前。
	Recent(ctx context.Context, n int) ([]domain.RunRecord, error)
}

type Logger = logx.Logger
