// Package luafmt 把宿主属性值转成 Lua 字面量，分可读与紧凑两种密度。
package luafmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"SceneScript/internal/scene"
	"SceneScript/internal/shared/lua"
	"SceneScript/modules/kit/errx"
)

const CodeUnsupportedValue errx.Code = "LUAFMT_UNSUPPORTED_VALUE"

var ErrUnsupportedValue = errx.NewBiz(CodeUnsupportedValue, "值类型无法转成字面量")

// Formatter 无状态，可并发使用。
type Formatter struct{}

func New() Formatter { return Formatter{} }

func (Formatter) Literal(v any, verbose bool) (string, error) {
	p := printer{verbose: verbose}
	return p.literal(v)
}

type printer struct {
	verbose bool
}

func (p printer) sep() string {
	if p.verbose {
		return ", "
	}
	return ","
}

func (p printer) call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, p.sep()) + ")"
}

func (p printer) literal(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "nil", nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return lua.Quote(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return p.number(float64(v)), nil
	case float64:
		return p.number(v), nil
	case scene.Vector2:
		if !p.verbose && v == (scene.Vector2{}) {
			return "Vector2.new()", nil
		}
		return p.call("Vector2.new", p.number(v.X), p.number(v.Y)), nil
	case scene.Vector3:
		if !p.verbose && v == (scene.Vector3{}) {
			return "Vector3.new()", nil
		}
		return p.call("Vector3.new", p.number(v.X), p.number(v.Y), p.number(v.Z)), nil
	case scene.Color3:
		return p.color(v), nil
	case scene.UDim:
		return p.call("UDim.new", p.number(v.Scale), p.number(v.Offset)), nil
	case scene.UDim2:
		return p.udim2(v), nil
	case scene.CFrame:
		return p.cframe(v), nil
	case scene.BrickColor:
		if p.verbose && v.Name != "" {
			return p.call("BrickColor.new", lua.Quote(v.Name)), nil
		}
		return p.call("BrickColor.new", strconv.Itoa(v.Number)), nil
	case scene.EnumItem:
		return "Enum" + lua.Index(v.EnumType) + lua.Index(v.Name), nil
	case scene.NumberRange:
		if v.Min == v.Max {
			return p.call("NumberRange.new", p.number(v.Min)), nil
		}
		return p.call("NumberRange.new", p.number(v.Min), p.number(v.Max)), nil
	case scene.NumberSequence:
		return p.numberSequence(v)
	case scene.ColorSequence:
		return p.colorSequence(v)
	case scene.Rect:
		return p.call("Rect.new", p.number(v.Min.X), p.number(v.Min.Y), p.number(v.Max.X), p.number(v.Max.Y)), nil
	}
	return "", ErrUnsupportedValue.WithData("type", fmt.Sprintf("%T", v))
}

// number：NaN 写成 0/0，无穷写成 math.huge；紧凑模式去掉小数前的 0。
func (p printer) number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "0/0"
	case math.IsInf(f, 1):
		return "math.huge"
	case math.IsInf(f, -1):
		return "-math.huge"
	case f == 0:
		return "0"
	}
	var s string
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		s = strconv.FormatInt(int64(f), 10)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !p.verbose {
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		} else if strings.HasPrefix(s, "-0.") {
			s = "-" + s[2:]
		}
	}
	return s
}

func (p printer) color(c scene.Color3) string {
	r, rok := byteChannel(c.R)
	g, gok := byteChannel(c.G)
	b, bok := byteChannel(c.B)
	if rok && gok && bok {
		if !p.verbose && r == 0 && g == 0 && b == 0 {
			return "Color3.new()"
		}
		return p.call("Color3.fromRGB", strconv.Itoa(r), strconv.Itoa(g), strconv.Itoa(b))
	}
	return p.call("Color3.new", p.number(c.R), p.number(c.G), p.number(c.B))
}

// byteChannel 判断 0~1 通道是否恰好对应一个 0~255 的整数。
func byteChannel(v float64) (int, bool) {
	scaled := v * 255
	n := math.Round(scaled)
	if n < 0 || n > 255 || math.Abs(scaled-n) > 1e-9 {
		return 0, false
	}
	return int(n), true
}

func (p printer) udim2(u scene.UDim2) string {
	if !p.verbose {
		switch {
		case u == (scene.UDim2{}):
			return "UDim2.new()"
		case u.X.Offset == 0 && u.Y.Offset == 0:
			return p.call("UDim2.fromScale", p.number(u.X.Scale), p.number(u.Y.Scale))
		case u.X.Scale == 0 && u.Y.Scale == 0:
			return p.call("UDim2.fromOffset", p.number(u.X.Offset), p.number(u.Y.Offset))
		}
	}
	return p.call("UDim2.new", p.number(u.X.Scale), p.number(u.X.Offset), p.number(u.Y.Scale), p.number(u.Y.Offset))
}

func (p printer) cframe(c scene.CFrame) string {
	pos := []string{p.number(c.Position.X), p.number(c.Position.Y), p.number(c.Position.Z)}
	if c.IsIdentityRotation() {
		if !p.verbose && c.Position == (scene.Vector3{}) {
			return "CFrame.new()"
		}
		return p.call("CFrame.new", pos...)
	}
	args := pos
	for _, r := range c.R {
		args = append(args, p.number(r))
	}
	return p.call("CFrame.new", args...)
}

func (p printer) numberSequence(s scene.NumberSequence) (string, error) {
	kp := s.Keypoints
	if len(kp) == 0 {
		return "", ErrUnsupportedValue.WithData("type", "NumberSequence").WithData("reason", "no keypoints")
	}
	if len(kp) == 2 && kp[0].Time == 0 && kp[1].Time == 1 && kp[0].Value == kp[1].Value &&
		kp[0].Envelope == 0 && kp[1].Envelope == 0 {
		return p.call("NumberSequence.new", p.number(kp[0].Value)), nil
	}
	items := make([]string, len(kp))
	for i, k := range kp {
		args := []string{p.number(k.Time), p.number(k.Value)}
		if k.Envelope != 0 {
			args = append(args, p.number(k.Envelope))
		}
		items[i] = p.call("NumberSequenceKeypoint.new", args...)
	}
	return "NumberSequence.new({" + strings.Join(items, p.sep()) + "})", nil
}

func (p printer) colorSequence(s scene.ColorSequence) (string, error) {
	kp := s.Keypoints
	if len(kp) == 0 {
		return "", ErrUnsupportedValue.WithData("type", "ColorSequence").WithData("reason", "no keypoints")
	}
	if len(kp) == 2 && kp[0].Time == 0 && kp[1].Time == 1 && kp[0].Value == kp[1].Value {
		return p.call("ColorSequence.new", p.color(kp[0].Value)), nil
	}
	items := make([]string, len(kp))
	for i, k := range kp {
		items[i] = p.call("ColorSequenceKeypoint.new", p.number(k.Time), p.color(k.Value))
	}
	return "ColorSequence.new({" + strings.Join(items, p.sep()) + "})", nil
}
