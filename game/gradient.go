package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"glowtrail/effect"
)

// glowSegments is the number of slices around each glow disc
const glowSegments = 32

// verticesPerGlow: center plus one vertex per segment on each of the two rings
const verticesPerGlow = 1 + 2*glowSegments

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage avoids sampling the texture edge
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// vertexColor converts to straight-alpha float channels for ebiten.Vertex
func vertexColor(c color.NRGBA) (r, g, b, a float32) {
	return float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	r, g, b, a := vertexColor(c)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
}

// appendGlowMesh appends a radial gradient disc for one glow. The center takes the
// first stop, the inner ring the middle stop and the rim the last stop; colors are
// interpolated across the triangles.
func appendGlowMesh(vs []ebiten.Vertex, is []uint16, g effect.TrailGlow) ([]ebiten.Vertex, []uint16) {
	stops := effect.GlowStops(g.Hue)
	inner := stops[1].Color.NRGBA()
	outer := stops[2].Color.NRGBA()

	base := uint16(len(vs))
	vs = append(vs, vertex(g.Pos.X, g.Pos.Y, stops[0].Color.NRGBA()))

	innerR := g.Size * stops[1].Offset
	outerR := g.Size * stops[2].Offset
	for i := 0; i < glowSegments; i++ {
		angle := 2 * math.Pi * float64(i) / glowSegments
		cos, sin := math.Cos(angle), math.Sin(angle)
		vs = append(vs,
			vertex(g.Pos.X+cos*innerR, g.Pos.Y+sin*innerR, inner),
			vertex(g.Pos.X+cos*outerR, g.Pos.Y+sin*outerR, outer),
		)
	}

	for i := 0; i < glowSegments; i++ {
		next := (i + 1) % glowSegments
		in0 := base + 1 + uint16(2*i)
		out0 := in0 + 1
		in1 := base + 1 + uint16(2*next)
		out1 := in1 + 1

		// center fan
		is = append(is, base, in0, in1)
		// ring quad
		is = append(is, in0, out0, out1, in0, out1, in1)
	}
	return vs, is
}

// Background stops, a diagonal slate to purple to slate wash
var (
	colorBackgroundEdge = color.NRGBA{R: 15, G: 23, B: 42, A: 255}
	colorBackgroundMid  = color.NRGBA{R: 88, G: 28, B: 135, A: 255}
)

// backgroundMesh covers w x h with the mid color along the top-right to bottom-left diagonal.
func backgroundMesh(w, h float64) ([]ebiten.Vertex, []uint16) {
	vs := []ebiten.Vertex{
		vertex(0, 0, colorBackgroundEdge),
		vertex(w, 0, colorBackgroundMid),
		vertex(0, h, colorBackgroundMid),
		vertex(w, h, colorBackgroundEdge),
	}
	return vs, []uint16{0, 1, 2, 1, 3, 2}
}

// Overlay wash, blue top-left to pink bottom-right through transparent, pulsing
var (
	colorOverlayStart = color.NRGBA{R: 59, G: 130, B: 246, A: 26}
	colorOverlayEnd   = color.NRGBA{R: 236, G: 72, B: 153, A: 26}
)

// pulsePeriod is one full fade out and back in, in ticks
const pulsePeriod = 120

// pulseAlpha scales the overlay: full at the start of a period, half at its middle.
func pulseAlpha(frame uint64) float64 {
	phase := float64(frame%pulsePeriod) / pulsePeriod
	return 0.75 + 0.25*math.Cos(2*math.Pi*phase)
}

// overlayMesh covers w x h with the overlay wash, its alpha scaled by alpha.
func overlayMesh(w, h, alpha float64) ([]ebiten.Vertex, []uint16) {
	vs := []ebiten.Vertex{
		vertex(0, 0, colorOverlayStart),
		vertex(w, 0, color.NRGBA{}),
		vertex(0, h, color.NRGBA{}),
		vertex(w, h, colorOverlayEnd),
	}
	for i := range vs {
		vs[i].ColorA *= float32(alpha)
	}
	return vs, []uint16{0, 1, 2, 1, 3, 2}
}
