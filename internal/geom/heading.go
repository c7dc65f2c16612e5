package geom

import "math"

// TurnTowards computes the signed angular velocity that rotates a
// heading at origin towards target, capped at rotSpeed. The second
// return is false when already aligned within tolerance, in which case
// no turning is needed.
func TurnTowards(origin, target Vec2, curDir, rotSpeed, dt float64) (float64, bool) {
	diff := target.Sub(origin).Normalize()
	cur := DirVec2(curDir)

	angleDiff := math.Acos(Clamp(diff.Dot(cur), -1, 1))

	leftNormal := Vec2{-diff.Y, diff.X}
	cross := leftNormal.Dot(cur)

	if abs(cross) < 0.01 && abs(angleDiff) < 0.01 {
		return 0, false
	}
	if cross < 0 {
		return min(angleDiff/dt, rotSpeed), true
	}
	return -min(angleDiff/dt, rotSpeed), true
}
