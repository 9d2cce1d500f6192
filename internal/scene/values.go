package scene

// 宿主属性值类型。全部是值语义；序列类型内部的切片创建后不再修改。

type Vector2 struct {
	X, Y float64
}

type Vector3 struct {
	X, Y, Z float64
}

// Color3 的通道取值 0~1。
type Color3 struct {
	R, G, B float64
}

// Color3FromRGB 由 0~255 的字节通道构造。
func Color3FromRGB(r, g, b uint8) Color3 {
	return Color3{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

type UDim struct {
	Scale  float64
	Offset float64
}

type UDim2 struct {
	X, Y UDim
}

// CFrame 由位置与行主序 3x3 旋转矩阵组成。
type CFrame struct {
	Position Vector3
	R        [9]float64
}

var identityRotation = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

// NewCFrame 返回无旋转的 CFrame。
func NewCFrame(x, y, z float64) CFrame {
	return CFrame{Position: Vector3{X: x, Y: y, Z: z}, R: identityRotation}
}

func (c CFrame) IsIdentityRotation() bool {
	return c.R == identityRotation
}

type BrickColor struct {
	Number int
	Name   string
}

var brickColorNames = map[int]string{
	1:    "White",
	5:    "Brick yellow",
	21:   "Bright red",
	23:   "Bright blue",
	24:   "Bright yellow",
	26:   "Black",
	28:   "Dark green",
	37:   "Bright green",
	194:  "Medium stone grey",
	199:  "Dark stone grey",
	1001: "Institutional white",
	1003: "Really black",
	1004: "Really red",
	1010: "Really blue",
}

// NewBrickColor 按调色板编号构造，未知编号名称为空。
func NewBrickColor(number int) BrickColor {
	return BrickColor{Number: number, Name: brickColorNames[number]}
}

// BrickColorByName 按名称查编号。
func BrickColorByName(name string) (BrickColor, bool) {
	for n, s := range brickColorNames {
		if s == name {
			return BrickColor{Number: n, Name: s}, true
		}
	}
	return BrickColor{}, false
}

// EnumItem 例如 Enum.Material.Plastic -> {Material Plastic}。
type EnumItem struct {
	EnumType string
	Name     string
}

type NumberRange struct {
	Min, Max float64
}

type NumberSequenceKeypoint struct {
	Time     float64
	Value    float64
	Envelope float64
}

type NumberSequence struct {
	Keypoints []NumberSequenceKeypoint
}

type ColorSequenceKeypoint struct {
	Time  float64
	Value Color3
}

type ColorSequence struct {
	Keypoints []ColorSequenceKeypoint
}

type Rect struct {
	Min, Max Vector2
}
