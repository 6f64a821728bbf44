package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var quatToEulerTests = []struct {
	name  string
	quat  mgl32.Quat
	euler mgl32.Vec3
}{
	{"identity", mgl32.QuatIdent(), mgl32.Vec3{0, 0, 0}},
	{"pitch", mgl32.QuatRotate(0.5, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0.5, 0, 0}},
	{"yaw", mgl32.QuatRotate(-0.7, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{0, -0.7, 0}},
	{"roll", mgl32.QuatRotate(1.2, mgl32.Vec3{0, 0, 1}), mgl32.Vec3{0, 0, 1.2}},
}

func TestQuatToEuler(t *testing.T) {
	for _, test := range quatToEulerTests {
		e := QuatToEuler(test.quat)
		if !e.ApproxEqualThreshold(test.euler, 1e-5) {
			t.Errorf("%s: QuatToEuler() = %v; expected %v", test.name, e, test.euler)
		}
	}
}

func TestDegreeRadianRoundtrip(t *testing.T) {
	v := mgl32.Vec3{90, -45, 180}
	rad := DegreeToRadiansV3(v)
	if !rad.ApproxEqualThreshold(mgl32.Vec3{math.Pi / 2, -math.Pi / 4, math.Pi}, 1e-5) {
		t.Errorf("DegreeToRadiansV3(%v) = %v", v, rad)
	}
	if !RadiansToDegreeV3(rad).ApproxEqualThreshold(v, 1e-4) {
		t.Errorf("degree->radian->degree roundtrip drifted: %v", RadiansToDegreeV3(rad))
	}
}
