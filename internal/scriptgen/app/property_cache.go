package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"SceneScript/modules/kit/logx"
)

var excludedTags = []string{"ReadOnly", "NotScriptable"}

// 插件（提升）上下文能读到 PluginSecurity，但仍排除本地用户级及以上。
var (
	elevatedSecurity = []string{"LocalUserSecurity", "RobloxScriptSecurity", "RobloxSecurity", "NotAccessibleSecurity", "RobloxEngineSecurity"}
	defaultSecurity  = []string{"RobloxScriptSecurity", "RobloxSecurity", "NotAccessibleSecurity"}
)

// forbidden 按父类列出重建时不能写回的属性（派生的变换字段等）。
var forbidden = map[string][]string{
	"BasePart":   {"Position", "Orientation", "Rotation"},
	"Attachment": {"Position", "Orientation", "Axis", "SecondaryAxis", "WorldPosition", "WorldOrientation", "WorldAxis", "WorldSecondaryAxis", "WorldCFrame"},
	"GuiObject":  {"Transparency"},
	"Instance":   {"Parent"},
}

// PrewarmClasses 是服务启动时预热的常用类。
var PrewarmClasses = []string{
	"Part", "MeshPart", "WedgePart", "Model", "Folder", "Attachment", "Weld", "WeldConstraint",
	"Motor6D", "Decal", "Texture", "SpecialMesh", "PointLight", "SpotLight", "Sound",
	"ParticleEmitter", "ScreenGui", "Frame", "TextLabel", "TextButton", "TextBox",
	"ImageLabel", "UICorner", "UIListLayout", "Script", "LocalScript", "ModuleScript",
	"StringValue", "IntValue", "NumberValue", "BoolValue", "ObjectValue", "Humanoid",
}

type propertyKey struct {
	class    string
	elevated bool
}

// PropertyCache 记住每个 (类, 上下文) 可序列化的属性名。进程级，不失效。
type PropertyCache struct {
	meta Metadata
	log  Logger

	mu    sync.RWMutex
	cache map[propertyKey][]string
}

func NewPropertyCache(meta Metadata, log Logger) *PropertyCache {
	if log == nil {
		log = logx.Nop()
	}
	return &PropertyCache{meta: meta, log: log, cache: make(map[propertyKey][]string)}
}

// Properties 返回升序属性名；返回的切片只读。
func (c *PropertyCache) Properties(className string, elevated bool) ([]string, error) {
	key := propertyKey{class: className, elevated: elevated}
	c.mu.RLock()
	props, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return props, nil
	}

	props, err := c.compute(className, elevated)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	// 并发首次访问时以先写入者为准，保证同一 key 始终返回同一切片。
	if existing, ok := c.cache[key]; ok {
		props = existing
	} else {
		c.cache[key] = props
	}
	c.mu.Unlock()
	return props, nil
}

func (c *PropertyCache) compute(className string, elevated bool) ([]string, error) {
	security := defaultSecurity
	if elevated {
		security = elevatedSecurity
	}
	raw, err := c.meta.Properties(className, excludedTags, security)
	if err != nil {
		return nil, err
	}
	supers, err := c.meta.Superclasses(className)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(raw))
	for _, p := range raw {
		present[p] = true
	}
	drop := make(map[string]bool)
	for _, p := range raw {
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "Color") && present[p+"3"] {
			drop[p] = true
		}
		if first := p[:1]; first != strings.ToUpper(first) && present[strings.ToUpper(first)+p[1:]] {
			drop[p] = true
		}
	}
	for _, class := range append([]string{className}, supers...) {
		for _, p := range forbidden[class] {
			drop[p] = true
		}
	}

	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if !drop[p] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// StartPrewarm 在后台等元数据就绪后，为 classes 计算两种上下文的属性集合。
// 只是延迟优化：运行若先于预热开始，按需计算即可。
func (c *PropertyCache) StartPrewarm(classes []string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-c.meta.Ready()
		for _, class := range classes {
			for _, elevated := range []bool{false, true} {
				if _, err := c.Properties(class, elevated); err != nil {
					logx.ReportDiagnosticWithLoggerContext(context.Background(), c.log,
						ReasonPrewarmFailed.Code, ReasonPrewarmFailed.Message,
						zap.String("class", class), zap.Bool("elevated", elevated), zap.Error(err))
				}
			}
		}
		c.log.Debug("property cache prewarmed", zap.Int("classes", len(classes)))
	}()
	return done
}
