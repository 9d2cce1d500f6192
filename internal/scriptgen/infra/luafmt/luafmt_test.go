package luafmt

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SceneScript/internal/scene"
)

func TestLiteral_两种密度(t *testing.T) {
	f := New()
	cases := []struct {
		name    string
		in      any
		verbose string
		compact string
	}{
		{"nil", nil, "nil", "nil"},
		{"bool", true, "true", "true"},
		{"int", 42, "42", "42"},
		{"整数浮点", 3.0, "3", "3"},
		{"小数", 0.25, "0.25", ".25"},
		{"负小数", -0.5, "-0.5", "-.5"},
		{"NaN", math.NaN(), "0/0", "0/0"},
		{"正无穷", math.Inf(1), "math.huge", "math.huge"},
		{"负无穷", math.Inf(-1), "-math.huge", "-math.huge"},
		{"字符串", "a\"b\n", `"a\"b\n"`, `"a\"b\n"`},
		{"Vector3", scene.Vector3{X: 1, Y: 2.5, Z: -3}, "Vector3.new(1, 2.5, -3)", "Vector3.new(1,2.5,-3)"},
		{"Vector3零", scene.Vector3{}, "Vector3.new(0, 0, 0)", "Vector3.new()"},
		{"Vector2", scene.Vector2{X: 0.5, Y: 1}, "Vector2.new(0.5, 1)", "Vector2.new(.5,1)"},
		{"Color3整字节", scene.Color3FromRGB(163, 162, 165), "Color3.fromRGB(163, 162, 165)", "Color3.fromRGB(163,162,165)"},
		{"Color3小数", scene.Color3{R: 0.1, G: 0.2, B: 0.3}, "Color3.new(0.1, 0.2, 0.3)", "Color3.new(.1,.2,.3)"},
		{"UDim", scene.UDim{Scale: 0, Offset: 8}, "UDim.new(0, 8)", "UDim.new(0,8)"},
		{"UDim2比例", scene.UDim2{X: scene.UDim{Scale: 1}, Y: scene.UDim{Scale: 0.5}}, "UDim2.new(1, 0, 0.5, 0)", "UDim2.fromScale(1,.5)"},
		{"UDim2偏移", scene.UDim2{X: scene.UDim{Offset: 100}, Y: scene.UDim{Offset: 50}}, "UDim2.new(0, 100, 0, 50)", "UDim2.fromOffset(100,50)"},
		{"UDim2混合", scene.UDim2{X: scene.UDim{Scale: 1, Offset: -4}, Y: scene.UDim{Offset: 20}}, "UDim2.new(1, -4, 0, 20)", "UDim2.new(1,-4,0,20)"},
		{"CFrame平移", scene.NewCFrame(1, 2, 3), "CFrame.new(1, 2, 3)", "CFrame.new(1,2,3)"},
		{"CFrame旋转", scene.CFrame{R: [9]float64{0, 0, 1, 0, 1, 0, -1, 0, 0}}, "CFrame.new(0, 0, 0, 0, 0, 1, 0, 1, 0, -1, 0, 0)", "CFrame.new(0,0,0,0,0,1,0,1,0,-1,0,0)"},
		{"BrickColor", scene.NewBrickColor(194), `BrickColor.new("Medium stone grey")`, "BrickColor.new(194)"},
		{"Enum", scene.EnumItem{EnumType: "Material", Name: "Plastic"}, "Enum.Material.Plastic", "Enum.Material.Plastic"},
		{"NumberRange", scene.NumberRange{Min: 1, Max: 2}, "NumberRange.new(1, 2)", "NumberRange.new(1,2)"},
		{"NumberRange单值", scene.NumberRange{Min: 3, Max: 3}, "NumberRange.new(3)", "NumberRange.new(3)"},
		{"NumberSequence常量", scene.NumberSequence{Keypoints: []scene.NumberSequenceKeypoint{{Time: 0, Value: 1}, {Time: 1, Value: 1}}}, "NumberSequence.new(1)", "NumberSequence.new(1)"},
		{"NumberSequence", scene.NumberSequence{Keypoints: []scene.NumberSequenceKeypoint{{Time: 0, Value: 0}, {Time: 1, Value: 1, Envelope: 0.5}}},
			"NumberSequence.new({NumberSequenceKeypoint.new(0, 0), NumberSequenceKeypoint.new(1, 1, 0.5)})",
			"NumberSequence.new({NumberSequenceKeypoint.new(0,0),NumberSequenceKeypoint.new(1,1,.5)})"},
		{"ColorSequence常量", scene.ColorSequence{Keypoints: []scene.ColorSequenceKeypoint{{Time: 0, Value: scene.Color3FromRGB(255, 255, 255)}, {Time: 1, Value: scene.Color3FromRGB(255, 255, 255)}}},
			"ColorSequence.new(Color3.fromRGB(255, 255, 255))", "ColorSequence.new(Color3.fromRGB(255,255,255))"},
		{"Rect", scene.Rect{Max: scene.Vector2{X: 10, Y: 20}}, "Rect.new(0, 0, 10, 20)", "Rect.new(0,0,10,20)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := f.Literal(c.in, true)
			require.NoError(t, err)
			assert.Equal(t, c.verbose, got)
			got, err = f.Literal(c.in, false)
			require.NoError(t, err)
			assert.Equal(t, c.compact, got)
		})
	}
}

func TestLiteral_不支持的类型(t *testing.T) {
	_, err := New().Literal(struct{ X int }{1}, true)
	assert.True(t, errors.Is(err, ErrUnsupportedValue))
	_, err = New().Literal(scene.NumberSequence{}, true)
	assert.True(t, errors.Is(err, ErrUnsupportedValue))
}
