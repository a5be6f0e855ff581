package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatToMat4Identity(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4Rotation(t *testing.T) {
	// 90 degrees around Z, applied to the X axis, should give the Y axis
	q := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	v := q.ToMat4().TransformVec3(Vec3{X: 1})

	if abs(v.X) > 0.001 || abs(v.Y-1) > 0.001 || abs(v.Z) > 0.001 {
		t.Errorf("Quat rotation: got %v, want (0, 1, 0)", v)
	}
}

func TestQuatMulComposes(t *testing.T) {
	// Two 45 degree rotations around Y should equal one 90 degree rotation
	half := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/4))
	full := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	composed := half.Mul(half)
	if math.Abs(float64(composed.W-full.W)) > 0.001 || math.Abs(float64(composed.Y-full.Y)) > 0.001 {
		t.Errorf("Quat Mul: got (%v,%v,%v,%v), want (%v,%v,%v,%v)",
			composed.X, composed.Y, composed.Z, composed.W, full.X, full.Y, full.Z, full.W)
	}
}
