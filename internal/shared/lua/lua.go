// Package lua 提供生成脚本时用到的词法工具：关键字、环境全局名、标识符判定与字符串字面量。
package lua

import (
	"strconv"
	"strings"
)

var keywords = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {}, "continue": {},
}

// 生成脚本会引用的环境全局名，以及拼接片段里用到的局部名。
// 节点标识符与这些名字重名会遮蔽它们，必须避开。
var environment = map[string]struct{}{
	"game": {}, "workspace": {}, "Workspace": {}, "script": {}, "plugin": {}, "shared": {},
	"Instance": {}, "Enum": {}, "Vector2": {}, "Vector3": {}, "CFrame": {}, "Color3": {},
	"UDim": {}, "UDim2": {}, "BrickColor": {}, "NumberRange": {}, "NumberSequence": {},
	"NumberSequenceKeypoint": {}, "ColorSequence": {}, "ColorSequenceKeypoint": {},
	"Rect": {}, "Ray": {}, "Region3": {}, "Faces": {}, "Axes": {}, "PhysicalProperties": {},
	"Font": {}, "TweenInfo": {}, "math": {}, "string": {}, "table": {}, "require": {},
	"ipairs": {}, "pairs": {}, "next": {}, "print": {}, "warn": {}, "error": {},
	"type": {}, "typeof": {}, "tostring": {}, "tonumber": {}, "select": {}, "unpack": {},
	"getfenv": {}, "setfenv": {}, "_G": {}, "_VERSION": {}, "_": {}, "child": {},
}

// IsKeyword 判断 s 是否为 Lua/Luau 保留字。
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsReserved 判断 s 是否不能用作生成脚本中的局部变量名。
func IsReserved(s string) bool {
	if IsKeyword(s) {
		return true
	}
	_, ok := environment[s]
	return ok
}

// IsIdentifier 判断 s 能否作为裸标识符出现（a.b 形式的成员访问）。
func IsIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Index 生成成员访问：合法标识符用 .Name，否则用 ["Name"]。
func Index(name string) string {
	if IsIdentifier(name) {
		return "." + name
	}
	return "[" + Quote(name) + "]"
}

// Quote 生成双引号字符串字面量，控制字符与非 ASCII 字节按 \ddd 转义。
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c >= 0x7f {
				b.WriteByte('\\')
				// 后面紧跟数字时必须补齐三位，避免被读成更长的转义。
				if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
					b.WriteString(leftPad3(int(c)))
				} else {
					b.WriteString(strconv.Itoa(int(c)))
				}
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func leftPad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
