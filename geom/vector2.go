package geom

import "math"

type Element = float64

type Vector2 struct {
	X Element
	Y Element
}

func NewVector2(x, y Element) *Vector2 {
	return &Vector2{X: x, Y: y}
}

func (v *Vector2) Add(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X + v2.X, Y: v.Y + v2.Y}
}

func (v *Vector2) Sub(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X - v2.X, Y: v.Y - v2.Y}
}

// Min returns the component-wise minimum.
func (v *Vector2) Min(v2 *Vector2) *Vector2 {
	return &Vector2{X: math.Min(v.X, v2.X), Y: math.Min(v.Y, v2.Y)}
}

// Max returns the component-wise maximum.
func (v *Vector2) Max(v2 *Vector2) *Vector2 {
	return &Vector2{X: math.Max(v.X, v2.X), Y: math.Max(v.Y, v2.Y)}
}
