package geom

import "math"

// Vec2 is a point or vector on the horizontal plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) NormSq() float64      { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Norm() float64        { return math.Sqrt(v.NormSq()) }

// Normalize returns the unit vector, or the zero vector for a
// degenerate input.
func (v Vec2) Normalize() Vec2 {
	n := v.Norm()
	if n < 1e-20 {
		return Vec2{}
	}
	return v.Scale(1 / n)
}

// Vec3 is a point or vector in world space. Y is up; the simulation
// plane is XZ.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) NormSq() float64      { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Norm() float64        { return math.Sqrt(v.NormSq()) }

// XZ projects onto the horizontal plane.
func (v Vec3) XZ() Vec2 { return Vec2{v.X, v.Z} }

// FromXZ lifts a plane vector into world space at height zero.
func FromXZ(v Vec2) Vec3 { return Vec3{v.X, 0, v.Y} }

// DirVec2 converts a heading angle to a plane unit vector. Heading zero
// points along +Z; positive angles rotate counter-clockwise.
func DirVec2(dir float64) Vec2 {
	return Vec2{-math.Sin(dir), math.Cos(dir)}
}

// DirVec3 is DirVec2 lifted into world space.
func DirVec3(dir float64) Vec3 {
	return FromXZ(DirVec2(dir))
}

// Rotate turns v counterclockwise by angle radians.
func Rotate(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
