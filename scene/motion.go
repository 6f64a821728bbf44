package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Motion holds the physical properties of a Node: constant linear and
// rotational speeds, integrated by Node.Integrate once per frame.
type Motion struct {
	inMotion        bool
	linearSpeed     mgl32.Vec3
	rotationalSpeed mgl32.Vec3
}

// SetLinearSpeed sets the translational speed in parent-relative units per
// second.
func (m *Motion) SetLinearSpeed(speed mgl32.Vec3) {
	m.linearSpeed = speed
	m.updateInMotion()
}

// SetRotationalSpeed sets the pitch/yaw/roll rates in radians per second.
func (m *Motion) SetRotationalSpeed(speed mgl32.Vec3) {
	m.rotationalSpeed = speed
	m.updateInMotion()
}

func (m *Motion) LinearSpeed() mgl32.Vec3 { return m.linearSpeed }

func (m *Motion) RotationalSpeed() mgl32.Vec3 { return m.rotationalSpeed }

// InMotion reports whether any component of either speed vector is nonzero.
func (m *Motion) InMotion() bool { return m.inMotion }

func (m *Motion) updateInMotion() {
	var zero mgl32.Vec3
	m.inMotion = m.linearSpeed != zero || m.rotationalSpeed != zero
}
