package effect

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA is a hue/saturation/lightness color with straight alpha.
// H is in degrees, S, L and A are in [0,1].
type HSLA struct {
	H, S, L, A float64
}

// NRGBA converts to a non-premultiplied 8-bit color
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(c.A)}
}

func alpha8(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	}
	return uint8(a*255 + 0.5)
}

// GradientStop is one color stop of a radial gradient, Offset in [0,1] from the center
type GradientStop struct {
	Offset float64
	Color  HSLA
}

// GlowStops returns the radial gradient of a trail glow: bright center, transparent edge.
func GlowStops(hue int) [3]GradientStop {
	h := float64(hue)
	return [3]GradientStop{
		{Offset: 0, Color: HSLA{H: h, S: 1, L: 0.6, A: 0.8}},
		{Offset: 0.5, Color: HSLA{H: h, S: 1, L: 0.5, A: 0.4}},
		{Offset: 1, Color: HSLA{H: h, S: 1, L: 0.4, A: 0}},
	}
}

// ParticleColor fades linearly with remaining life.
func ParticleColor(p Particle, maxLife int) HSLA {
	a := 0.0
	if maxLife > 0 {
		a = float64(p.Life) / float64(maxLife)
	}
	return HSLA{H: float64(p.Hue), S: 1, L: 0.6, A: a}
}
