package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/sectorcam/pkg/math3d"
)

// Pose is a camera position plus yaw in degrees. Pitch and roll are not
// modeled.
type Pose struct {
	Position math3d.Vec3
	Yaw      float64
}

// ToCameraView maps a world-space point into this pose's camera space.
func (p Pose) ToCameraView(v math3d.Vec3) math3d.Vec3 {
	return v.ToCameraView(p.Position, p.Yaw)
}

// Forward returns the world-space viewing direction.
func (p Pose) Forward() math3d.Vec3 {
	sin, cos := math.Sincos(p.Yaw * math.Pi / 180)
	return math3d.V3(-sin, 0, -cos)
}

// Right returns the world-space direction to the camera's right.
func (p Pose) Right() math3d.Vec3 {
	sin, cos := math.Sincos(p.Yaw * math.Pi / 180)
	return math3d.V3(cos, 0, -sin)
}

// axis tracks one velocity that a spring pulls back to zero.
type axis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity of Velocity itself
}

func newAxis(fps int) axis {
	// Frequency 4.0 with damping 1.0 is critically damped: no overshoot.
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// step returns the current velocity and decays it toward zero.
func (a *axis) step() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

// Camera is a first-person controller. Thrust adds velocity, Update applies
// it to the pose once per frame and lets springs bleed it off, so movement
// eases out after a key is released.
type Camera struct {
	pose Pose
	fps  int

	forward, strafe, turn axis
}

// NewCamera creates a camera at pose stepping at fps frames per second.
func NewCamera(pose Pose, fps int) *Camera {
	fps = max(fps, 1)
	pose.Yaw = wrapYaw(pose.Yaw)
	return &Camera{
		pose:    pose,
		fps:     fps,
		forward: newAxis(fps),
		strafe:  newAxis(fps),
		turn:    newAxis(fps),
	}
}

// Pose returns the current pose.
func (c *Camera) Pose() Pose {
	return c.pose
}

// SetPose teleports the camera and drops any remaining velocity.
func (c *Camera) SetPose(p Pose) {
	p.Yaw = wrapYaw(p.Yaw)
	c.pose = p
	c.Stop()
}

// Thrust adds velocity: forward and strafe in world units per frame along
// the heading and to the right, turn in degrees per frame (positive turns
// left).
func (c *Camera) Thrust(forward, strafe, turn float64) {
	c.forward.Velocity += forward
	c.strafe.Velocity += strafe
	c.turn.Velocity += turn
}

// Stop zeroes all velocities.
func (c *Camera) Stop() {
	c.forward = newAxis(c.fps)
	c.strafe = newAxis(c.fps)
	c.turn = newAxis(c.fps)
}

// Moving reports whether any velocity is still noticeable.
func (c *Camera) Moving() bool {
	const eps = 1e-4
	return math.Abs(c.forward.Velocity) > eps ||
		math.Abs(c.strafe.Velocity) > eps ||
		math.Abs(c.turn.Velocity) > eps
}

// Update advances the camera by one frame and returns the new pose.
func (c *Camera) Update() Pose {
	fwd := c.pose.Forward()
	right := c.pose.Right()

	move := fwd.Scale(c.forward.step()).Add(right.Scale(c.strafe.step()))
	c.pose.Position = c.pose.Position.Add(move)
	c.pose.Yaw = wrapYaw(c.pose.Yaw + c.turn.step())
	return c.pose
}

// wrapYaw maps any angle in degrees into [0, 360).
func wrapYaw(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
