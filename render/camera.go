package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scene_viewer/scene"
)

// Camera is a first person viewpoint: an orientation quaternion and a world
// position, turned into the view matrix that seeds the draw traversal.
type Camera struct {
	orientation mgl32.Quat
	translation mgl32.Vec3
}

func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{
		orientation: mgl32.QuatIdent(),
		translation: position,
	}
}

// Move translates the camera relative to where it currently faces.
func (c *Camera) Move(translation mgl32.Vec3) {
	c.translation = c.translation.Add(c.orientation.Rotate(translation))
}

// Yaw turns the camera around its own up axis.
func (c *Camera) Yaw(angle float32) {
	c.orientation = scene.RotateWorld(c.orientation, angle, scene.UnitUp)
}

// Pitch tilts the camera around its own right axis.
func (c *Camera) Pitch(angle float32) {
	c.orientation = scene.RotateWorld(c.orientation, angle, scene.UnitRight)
}

// Roll banks the camera around its own front axis.
func (c *Camera) Roll(angle float32) {
	c.orientation = scene.RotateWorld(c.orientation, angle, scene.UnitFront)
}

func (c *Camera) Translation() mgl32.Vec3 { return c.translation }

func (c *Camera) Orientation() mgl32.Quat { return c.orientation }

// ViewMatrix is the world-to-camera transform: the inverse of the camera
// pose, rotation applied after the negated translation.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	rotation := c.orientation.Inverse().Mat4()
	translation := mgl32.Translate3D(-c.translation[0], -c.translation[1], -c.translation[2])
	return rotation.Mul4(translation)
}
