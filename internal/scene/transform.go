package scene

import "math"

// 这些属性由 CFrame 派生：写入时改写 CFrame，读取时从 CFrame 计算，不单独存值。
// Position 改平移；Orientation 按 Y、X、Z 顺序、Rotation 按 X、Y、Z 顺序改旋转，单位为角度。
var derivedTransform = map[string]bool{
	"Position":    true,
	"Orientation": true,
	"Rotation":    true,
}

func (i *Instance) hasCFrame() bool {
	_, ok := i.props["CFrame"]
	return ok
}

func (i *Instance) cframe() CFrame {
	cf, _ := i.props["CFrame"].(CFrame)
	if cf.R == ([9]float64{}) {
		cf.R = identityRotation
	}
	return cf
}

func (i *Instance) setDerived(property string, value any) error {
	v, ok := value.(Vector3)
	if !ok {
		return ErrBadValue.WithData("property", property).WithData("node", i.FullName())
	}
	cf := i.cframe()
	switch property {
	case "Position":
		cf.Position = v
	case "Orientation":
		cf.R = snap(mul3(mul3(rotY(v.Y), rotX(v.X)), rotZ(v.Z)))
	case "Rotation":
		cf.R = snap(mul3(mul3(rotX(v.X), rotY(v.Y)), rotZ(v.Z)))
	}
	i.props["CFrame"] = cf
	return nil
}

func (i *Instance) getDerived(property string) Vector3 {
	cf := i.cframe()
	r := cf.R
	switch property {
	case "Orientation":
		// R = Ry·Rx·Rz
		return Vector3{
			X: deg(math.Asin(clamp(-r[5]))),
			Y: deg(math.Atan2(r[2], r[8])),
			Z: deg(math.Atan2(r[3], r[4])),
		}
	case "Rotation":
		// R = Rx·Ry·Rz
		return Vector3{
			X: deg(math.Atan2(-r[5], r[8])),
			Y: deg(math.Asin(clamp(r[2]))),
			Z: deg(math.Atan2(-r[1], r[0])),
		}
	}
	return cf.Position
}

func rotX(d float64) [9]float64 {
	s, c := math.Sincos(rad(d))
	return [9]float64{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotY(d float64) [9]float64 {
	s, c := math.Sincos(rad(d))
	return [9]float64{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotZ(d float64) [9]float64 {
	s, c := math.Sincos(rad(d))
	return [9]float64{c, -s, 0, s, c, 0, 0, 0, 1}
}

func mul3(a, b [9]float64) [9]float64 {
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = a[r*3]*b[c] + a[r*3+1]*b[3+c] + a[r*3+2]*b[6+c]
		}
	}
	return out
}

// snap 把 sin/cos 的舍入噪声（如 cos 90° = 6e-17）收回到整数。
func snap(m [9]float64) [9]float64 {
	for k, v := range m {
		if r := math.Round(v); math.Abs(v-r) < 1e-12 {
			m[k] = r
		}
		if m[k] == 0 {
			m[k] = 0 // 去掉 -0
		}
	}
	return m
}

func clamp(v float64) float64 { return math.Max(-1, math.Min(1, v)) }

func rad(d float64) float64 { return d * math.Pi / 180 }

func deg(r float64) float64 { return r * 180 / math.Pi }
