package scene

import (
	"fmt"
	"math"
	"strings"
)

// DecodeValue 把文档/默认值里的 JSON 值转换成宿主值。
//
// 标量原样返回（数字一律 float64）；带类型的值是单键对象，例如
// {"Vector3":[1,2,3]}、{"Enum":"Material.Plastic"}。
// {"Ref":"id"} 返回 ref=id，由调用方在整棵树建好后解析。
func DecodeValue(raw any) (value any, ref string, err error) {
	switch v := raw.(type) {
	case nil, bool, string, float64:
		return v, "", nil
	case int:
		return float64(v), "", nil
	case int64:
		return float64(v), "", nil
	case uint64:
		return float64(v), "", nil
	case map[string]any:
		if len(v) != 1 {
			return nil, "", fmt.Errorf("typed value must have exactly one key, got %d", len(v))
		}
		for kind, body := range v {
			return decodeTyped(kind, body)
		}
	}
	return nil, "", fmt.Errorf("unsupported json value %T", raw)
}

func decodeTyped(kind string, body any) (any, string, error) {
	switch kind {
	case "Ref":
		s, ok := body.(string)
		if !ok || s == "" {
			return nil, "", fmt.Errorf("Ref expects a non-empty id")
		}
		return nil, s, nil
	case "Enum":
		s, _ := body.(string)
		s = strings.TrimPrefix(s, "Enum.")
		typ, name, ok := strings.Cut(s, ".")
		if !ok || typ == "" || name == "" {
			return nil, "", fmt.Errorf("Enum expects Type.Name, got %q", s)
		}
		return EnumItem{EnumType: typ, Name: name}, "", nil
	case "BrickColor":
		switch b := body.(type) {
		case string:
			bc, ok := BrickColorByName(b)
			if !ok {
				return nil, "", fmt.Errorf("unknown BrickColor %q", b)
			}
			return bc, "", nil
		default:
			n, err := floats(body, 1)
			if err != nil {
				return nil, "", err
			}
			return NewBrickColor(int(n[0])), "", nil
		}
	}

	switch kind {
	case "Vector2":
		n, err := floats(body, 2)
		if err != nil {
			return nil, "", err
		}
		return Vector2{X: n[0], Y: n[1]}, "", nil
	case "Vector3":
		n, err := floats(body, 3)
		if err != nil {
			return nil, "", err
		}
		return Vector3{X: n[0], Y: n[1], Z: n[2]}, "", nil
	case "Color3":
		n, err := floats(body, 3)
		if err != nil {
			return nil, "", err
		}
		return Color3{R: n[0], G: n[1], B: n[2]}, "", nil
	case "Color3uint8":
		n, err := floats(body, 3)
		if err != nil {
			return nil, "", err
		}
		return Color3FromRGB(byteOf(n[0]), byteOf(n[1]), byteOf(n[2])), "", nil
	case "UDim":
		n, err := floats(body, 2)
		if err != nil {
			return nil, "", err
		}
		return UDim{Scale: n[0], Offset: n[1]}, "", nil
	case "UDim2":
		n, err := floats(body, 4)
		if err != nil {
			return nil, "", err
		}
		return UDim2{X: UDim{Scale: n[0], Offset: n[1]}, Y: UDim{Scale: n[2], Offset: n[3]}}, "", nil
	case "CFrame":
		return decodeCFrame(body)
	case "NumberRange":
		n, err := floats(body, 2)
		if err != nil {
			return nil, "", err
		}
		return NumberRange{Min: n[0], Max: n[1]}, "", nil
	case "Rect":
		n, err := floats(body, 4)
		if err != nil {
			return nil, "", err
		}
		return Rect{Min: Vector2{X: n[0], Y: n[1]}, Max: Vector2{X: n[2], Y: n[3]}}, "", nil
	case "NumberSequence":
		rows, err := matrix(body, 3)
		if err != nil {
			return nil, "", err
		}
		seq := NumberSequence{Keypoints: make([]NumberSequenceKeypoint, len(rows))}
		for i, r := range rows {
			seq.Keypoints[i] = NumberSequenceKeypoint{Time: r[0], Value: r[1], Envelope: r[2]}
		}
		return seq, "", nil
	case "ColorSequence":
		rows, err := matrix(body, 4)
		if err != nil {
			return nil, "", err
		}
		seq := ColorSequence{Keypoints: make([]ColorSequenceKeypoint, len(rows))}
		for i, r := range rows {
			seq.Keypoints[i] = ColorSequenceKeypoint{Time: r[0], Value: Color3{R: r[1], G: r[2], B: r[3]}}
		}
		return seq, "", nil
	}
	return nil, "", fmt.Errorf("unknown value type %q", kind)
}

// decodeCFrame 接受 3 个数（纯位移）或 12 个数（位移 + 行主序旋转）。
func decodeCFrame(body any) (any, string, error) {
	list, ok := body.([]any)
	if !ok {
		return nil, "", fmt.Errorf("CFrame expects an array")
	}
	switch len(list) {
	case 3:
		n, err := floats(body, 3)
		if err != nil {
			return nil, "", err
		}
		return NewCFrame(n[0], n[1], n[2]), "", nil
	case 12:
		n, err := floats(body, 12)
		if err != nil {
			return nil, "", err
		}
		cf := CFrame{Position: Vector3{X: n[0], Y: n[1], Z: n[2]}}
		copy(cf.R[:], n[3:])
		return cf, "", nil
	}
	return nil, "", fmt.Errorf("CFrame expects 3 or 12 numbers, got %d", len(list))
}

func floats(body any, n int) ([]float64, error) {
	if n == 1 {
		if f, ok := number(body); ok {
			return []float64{f}, nil
		}
	}
	list, ok := body.([]any)
	if !ok || len(list) != n {
		return nil, fmt.Errorf("expected %d numbers", n)
	}
	out := make([]float64, n)
	for i, item := range list {
		f, ok := number(item)
		if !ok {
			return nil, fmt.Errorf("element %d is not a number", i)
		}
		out[i] = f
	}
	return out, nil
}

func matrix(body any, width int) ([][]float64, error) {
	list, ok := body.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("expected a non-empty list of keypoints")
	}
	out := make([][]float64, len(list))
	for i, row := range list {
		r, err := floats(row, width)
		if err != nil {
			return nil, fmt.Errorf("keypoint %d: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func byteOf(f float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(f))))
}
