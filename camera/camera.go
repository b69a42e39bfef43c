// Package camera provides a 2D camera system for viewport control.
package camera

import "math"

// Camera controls the viewport into the simulation world.
// Supports pan and zoom with toroidal world wrapping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (for toroidal wrapping)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   4.0,
	}
	c.MinZoom = minZoomFor(viewportW, viewportH, worldW, worldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	return c
}

// minZoomFor computes the smallest zoom at which the visible world area
// still fits inside the world, so the viewport never exceeds the world.
func minZoomFor(viewportW, viewportH, worldW, worldH float32) float32 {
	mz := viewportW / worldW
	if z := viewportH / worldH; z > mz {
		mz = z
	}
	return mz
}

// WorldToScreen converts world coordinates to screen coordinates,
// taking the toroidal shortest path to the camera center.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom
	return mod(c.X+dx, c.WorldW), mod(c.Y+dy, c.WorldH)
}

// IsVisible reports whether a circle at (wx, wy) with the given radius
// could appear on screen. Conservative, used for render culling.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Pan moves the camera by the given delta in screen pixels, wrapping
// around world boundaries.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mod(c.X+dx/c.Zoom, c.WorldW)
	c.Y = mod(c.Y+dy/c.Zoom, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	if zoom < c.MinZoom {
		zoom = c.MinZoom
	}
	if zoom > c.MaxZoom {
		zoom = c.MaxZoom
	}
	c.Zoom = zoom
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = minZoomFor(viewportW, viewportH, c.WorldW, c.WorldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// toroidalDelta returns the shortest wrapped delta from b to a.
func toroidalDelta(a, b, extent float32) float32 {
	d := a - b
	if d > extent/2 {
		d -= extent
	} else if d < -extent/2 {
		d += extent
	}
	return d
}

// mod returns the floored modulus, mapping a into [0, b).
func mod(a, b float32) float32 {
	m := float32(math.Mod(float64(a), float64(b)))
	if m < 0 {
		m += b
	}
	return m
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
