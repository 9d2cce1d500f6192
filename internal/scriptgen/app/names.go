package app

import (
	"strconv"
	"strings"

	"SceneScript/internal/shared/lua"
)

// maxSuffix 限制同名后缀的搜索次数，超出视为内部错误。
const maxSuffix = 1 << 20

const (
	firstAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tailAlphabet  = firstAlphabet + "0123456789"
)

// NameTable 是一次运行内节点到 Lua 标识符的映射。
type NameTable struct {
	byNode map[Node]string
	order  []Node
}

func (t *NameTable) Name(n Node) (string, bool) {
	s, ok := t.byNode[n]
	return s, ok
}

func (t *NameTable) Len() int { return len(t.order) }

// Nodes 按分配顺序（根在前）返回节点。
func (t *NameTable) Nodes() []Node {
	out := make([]Node, len(t.order))
	copy(out, t.order)
	return out
}

// Map 以 节点名 -> 标识符 的形式导出，供 CLI/接口展示；同名节点只保留第一个。
func (t *NameTable) Map() map[string]string {
	out := make(map[string]string, len(t.order))
	for _, n := range t.order {
		if _, ok := out[n.Name()]; !ok {
			out[n.Name()] = t.byNode[n]
		}
	}
	return out
}

// AllocateNames 为 root 与 descendants 分配唯一、非保留的标识符。
func AllocateNames(root Node, descendants []Node, verbose bool) (*NameTable, error) {
	t := &NameTable{byNode: make(map[Node]string, len(descendants)+1)}
	taken := make(map[string]bool, len(descendants)+1)

	nodes := make([]Node, 0, len(descendants)+1)
	nodes = append(nodes, root)
	nodes = append(nodes, descendants...)
	for i, n := range nodes {
		if _, dup := t.byNode[n]; dup {
			continue
		}
		var name string
		if verbose {
			var err error
			if name, err = readableName(n, taken); err != nil {
				return nil, err
			}
		} else {
			name = compactName(i)
			if lua.IsReserved(name) {
				name += "_"
			}
		}
		taken[name] = true
		t.byNode[n] = name
		t.order = append(t.order, n)
	}
	return t, nil
}

func readableName(n Node, taken map[string]bool) (string, error) {
	base := sanitize(n.Name())
	if base == "" {
		base = sanitize(n.ClassName())
	}
	if base == "" {
		base = "Instance_"
	}
	for i := 0; i < maxSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		if lua.IsReserved(candidate) {
			candidate += "_"
		}
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", ErrNameSpaceExhausted.WithData("base", base)
}

// sanitize 只保留 [A-Za-z0-9_]，并去掉开头连续的数字/下划线。
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
			b.WriteByte(c)
		}
	}
	return strings.TrimLeft(b.String(), "0123456789_")
}

// compactName 是双射编号：0->a ... 51->Z, 52->aa, 53->ab ...
// 首字符取自 firstAlphabet，其余取自 tailAlphabet。
func compactName(i int) string {
	n := i
	width := 1
	block := len(firstAlphabet)
	for n >= block {
		n -= block
		width++
		block *= len(tailAlphabet)
	}
	buf := make([]byte, width)
	for k := width - 1; k > 0; k-- {
		buf[k] = tailAlphabet[n%len(tailAlphabet)]
		n /= len(tailAlphabet)
	}
	buf[0] = firstAlphabet[n]
	return string(buf)
}
