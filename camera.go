package volr

import "math"

// upParallelEps rejects up vectors within ~0.06° of the view direction.
const upParallelEps = 1e-6

// Camera describes a pose and perspective projection. Rays fan out from
// Position through an image plane perpendicular to the view direction at
// unit distance, scaled by the vertical field of view and the pixel
// aspect ratio.
//
// A Camera is immutable during a render call but may be mutated between
// calls (animation loops); no renderer-held state depends on a prior
// call.
type Camera struct {
	Position   Vec3
	FocalPoint Vec3
	ViewUp     Vec3

	// FOV is the vertical field of view in degrees.
	FOV float64

	// cached orthonormal basis
	forward, right, up Vec3
	halfHeight         float64
}

// DefaultFOV is the vertical field of view used when none is given.
const DefaultFOV = 90.0

// NewCamera creates a camera at position looking at focalPoint with the
// given up vector and the default field of view. It fails with a
// *ConfigError on a zero-length view direction or an up vector parallel
// to it.
func NewCamera(position, focalPoint, viewUp Vec3) (*Camera, error) {
	return NewCameraFOV(position, focalPoint, viewUp, DefaultFOV)
}

// NewCameraFOV creates a camera with an explicit vertical field of view
// in degrees, which must lie in (0, 180).
func NewCameraFOV(position, focalPoint, viewUp Vec3, fov float64) (*Camera, error) {
	c := &Camera{
		Position:   position,
		FocalPoint: focalPoint,
		ViewUp:     viewUp,
		FOV:        fov,
	}
	if err := c.update(); err != nil {
		return nil, err
	}
	return c, nil
}

// update recomputes the cached basis, validating the pose. Call it after
// mutating the public fields between renders; the render entry points
// call it themselves.
func (c *Camera) update() error {
	view := c.FocalPoint.Sub(c.Position)
	if view.LengthSq() == 0 {
		return configErrf("focal_point", "coincides with camera position")
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return configErrf("fov", "must be in (0, 180) degrees, got %g", c.FOV)
	}
	forward := view.Normalize()
	right := forward.Cross(c.ViewUp)
	if right.LengthSq() < upParallelEps {
		return configErrf("view_up", "parallel to the view direction")
	}
	c.forward = forward
	c.right = right.Normalize()
	c.up = c.right.Cross(forward)
	c.halfHeight = math.Tan(c.FOV * math.Pi / 360)
	return nil
}

// RayThrough returns the world-space ray through pixel (x, y) of a
// width×height image. Pixel (0, 0) is the top-left corner; the mapping
// is bijective over pixels and identical across render modes.
func (c *Camera) RayThrough(x, y, width, height int) Ray {
	// Image plane sits at unit distance along the view direction.
	center := c.Position.Add(c.forward)

	aspect := float64(width) / float64(height)
	s := (float64(x) + 0.5 - float64(width)/2) / float64(width) * aspect * c.halfHeight
	// Flip so +y on the image is up in world space.
	t := -(float64(y) + 0.5 - float64(height)/2) / float64(height) * c.halfHeight

	onPlane := center.Add(c.right.Mul(s)).Add(c.up.Mul(t))
	return Ray{
		Origin:    c.Position,
		Direction: onPlane.Sub(c.Position).Normalize(),
	}
}

// Basis returns the cached orthonormal camera basis (forward, right, up).
func (c *Camera) Basis() (forward, right, up Vec3) {
	return c.forward, c.right, c.up
}
