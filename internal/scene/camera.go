package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"baseball/internal/match"
)

// Camera maps projected field pixels to the framebuffer.
type Camera struct {
	X, Y float64 // projected-pixel space, camera centre
	Zoom float64 // screen pixels per projected pixel

	// Screen shake.
	ShakeX, ShakeY float64
	ShakeTimer     float64
	ShakeIntensity float64
}

// Fit centres the rectangle [min,max] and zooms so it fills the
// framebuffer with pad pixels to spare on every side.
func (c *Camera) Fit(min, max mgl64.Vec2, fbW, fbH int, pad float64) {
	w, h := max.X()-min.X(), max.Y()-min.Y()
	if w <= 0 || h <= 0 {
		return
	}
	zoomW := (float64(fbW) - 2*pad) / w
	zoomH := (float64(fbH) - 2*pad) / h
	c.Zoom = math.Max(0.05, math.Min(zoomW, zoomH))
	c.X = (min.X() + max.X()) / 2
	c.Y = (min.Y() + max.Y()) / 2
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := match.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = (2*rr.Float64() - 1) * mag
	c.ShakeY = (2*rr.Float64() - 1) * mag
}

// Shaken returns a copy of the camera with the shake offset applied.
func (c Camera) Shaken() Camera {
	c.X += c.ShakeX
	c.Y += c.ShakeY
	return c
}

// ToScreen converts a projected point to framebuffer pixels.
func (c Camera) ToScreen(p mgl64.Vec2, fbW, fbH int) mgl64.Vec2 {
	return mgl64.Vec2{
		(p.X()-c.X)*c.Zoom + float64(fbW)/2,
		(p.Y()-c.Y)*c.Zoom + float64(fbH)/2,
	}
}
