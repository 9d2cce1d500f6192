package classdb

import (
	"github.com/goccy/go-json"
)

const MemberProperty = "Property"

// Dump 对应 API dump 的顶层结构；Defaults 是本仓库的扩展字段。
type Dump struct {
	Version int     `json:"Version"`
	Classes []Class `json:"Classes"`
}

type Class struct {
	Name       string         `json:"Name"`
	Superclass string         `json:"Superclass"`
	Tags       []string       `json:"Tags,omitempty"`
	Members    []Member       `json:"Members"`
	Defaults   map[string]any `json:"Defaults,omitempty"`
}

func (c *Class) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Member 只关心属性；函数/事件成员同样能解析，但会被跳过。
type Member struct {
	MemberType string    `json:"MemberType"`
	Name       string    `json:"Name"`
	Tags       []string  `json:"Tags,omitempty"`
	Security   Security  `json:"Security"`
	ValueType  ValueType `json:"ValueType"`
}

func (m Member) hasAnyTag(set map[string]bool) bool {
	for _, t := range m.Tags {
		if set[t] {
			return true
		}
	}
	return false
}

type ValueType struct {
	Category string `json:"Category"`
	Name     string `json:"Name"`
}

// Security 兼容两种写法：属性的 {"Read":..,"Write":..} 与函数的单个字符串。
type Security struct {
	Read  string `json:"Read"`
	Write string `json:"Write"`
}

func (s *Security) UnmarshalJSON(data []byte) error {
	var level string
	if err := json.Unmarshal(data, &level); err == nil {
		s.Read, s.Write = level, level
		return nil
	}
	type plain Security
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Security(p)
	return nil
}
