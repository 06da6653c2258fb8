package game

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"glowtrail/config"
	"glowtrail/effect"
)

const (
	cursorRadius      = 12.0
	cursorPressScale  = 0.8
	cursorStrokeWidth = 2.0
	titleSize         = 64.0
	subtitleSize      = 22.0
	subtitleGap       = 16.0

	// title halo: text redrawn around a few rings of offsets at low alpha
	haloRings          = 2
	haloSteps          = 8
	titleHaloSpread    = 10.0
	titleHaloAlpha     = 0.5
	subtitleHaloSpread = 7.0
	subtitleHaloAlpha  = 0.3

	headline = "Move & Click"
	tagline  = "Experience the magic"
)

var (
	colorCursor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorCursorHalo = color.NRGBA{R: 255, G: 255, B: 255, A: 60}
	colorTitle      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorSubtitle   = color.NRGBA{R: 255, G: 255, B: 255, A: 178}
)

// Renderer paints effect frames onto the trail surface and composes the screen
type Renderer struct {
	effect config.EffectConfig
	fade   color.NRGBA

	title    *text.GoTextFace
	subtitle *text.GoTextFace

	// reused per tick
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer loads the title fonts and prepares the fade color.
func NewRenderer(cfg config.EffectConfig) (*Renderer, error) {
	boldSrc, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	regularSrc, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load subtitle font: %w", err)
	}

	return &Renderer{
		effect:   cfg,
		fade:     fadeColor(cfg.Fade),
		title:    &text.GoTextFace{Source: boldSrc, Size: titleSize},
		subtitle: &text.GoTextFace{Source: regularSrc, Size: subtitleSize},
		vertices: make([]ebiten.Vertex, 0, verticesPerGlow*64),
		indices:  make([]uint16, 0, glowSegments*9*64),
	}, nil
}

func fadeColor(c config.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 0xff))}
}

// PaintFrame draws one tick onto the persistent surface: translucent overwrite,
// then glows, then particles, each oldest first.
func (r *Renderer) PaintFrame(surface *ebiten.Image, frame effect.Frame) {
	b := surface.Bounds()
	vector.DrawFilledRect(surface, 0, 0, float32(b.Dx()), float32(b.Dy()), r.fade, false)

	r.drawGlows(surface, frame.Glows)

	for _, p := range frame.Particles {
		clr := effect.ParticleColor(p, r.effect.ParticleLife).NRGBA()
		vector.DrawFilledCircle(surface, float32(p.Pos.X), float32(p.Pos.Y), float32(r.effect.ParticleRadius), clr, true)
	}
}

func (r *Renderer) drawGlows(surface *ebiten.Image, glows []effect.TrailGlow) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, g := range glows {
		// uint16 indices cap a batch
		if len(r.vertices)+verticesPerGlow > math.MaxUint16 {
			r.flush(surface)
		}
		r.vertices, r.indices = appendGlowMesh(r.vertices, r.indices, g)
	}
	r.flush(surface)
}

func (r *Renderer) flush(surface *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	surface.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// DrawBackground fills the screen with the gradient that shows through until the
// trail surface saturates.
func (r *Renderer) DrawBackground(screen *ebiten.Image) {
	b := screen.Bounds()
	vs, is := backgroundMesh(float64(b.Dx()), float64(b.Dy()))
	screen.DrawTriangles(vs, is, whiteSubImage, nil)
}

// DrawOverlay washes the screen with the pulsing blue to pink gradient
func (r *Renderer) DrawOverlay(screen *ebiten.Image, frame uint64) {
	b := screen.Bounds()
	vs, is := overlayMesh(float64(b.Dx()), float64(b.Dy()), pulseAlpha(frame))
	screen.DrawTriangles(vs, is, whiteSubImage, nil)
}

// DrawTitle centers the headline and subtitle on screen, each over a soft white halo
func (r *Renderer) DrawTitle(screen *ebiten.Image) {
	b := screen.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2

	_, titleH := text.Measure(headline, r.title, 0)
	_, subH := text.Measure(tagline, r.subtitle, 0)
	top := cy - (titleH+subtitleGap+subH)/2

	drawHalo(screen, headline, r.title, cx, top, titleHaloSpread, titleHaloAlpha)
	drawHalo(screen, tagline, r.subtitle, cx, top+titleH+subtitleGap, subtitleHaloSpread, subtitleHaloAlpha)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, top)
	op.ColorScale.ScaleWithColor(colorTitle)
	text.Draw(screen, headline, r.title, op)

	op = &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, top+titleH+subtitleGap)
	op.ColorScale.ScaleWithColor(colorSubtitle)
	text.Draw(screen, tagline, r.subtitle, op)
}

func drawHalo(screen *ebiten.Image, s string, face text.Face, x, y, spread, alpha float64) {
	passAlpha := float32(alpha / (haloRings * haloSteps))
	for ring := 1; ring <= haloRings; ring++ {
		d := spread * float64(ring) / haloRings
		for i := 0; i < haloSteps; i++ {
			angle := 2 * math.Pi * float64(i) / haloSteps
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(x+math.Cos(angle)*d, y+math.Sin(angle)*d)
			op.ColorScale.ScaleAlpha(passAlpha)
			text.Draw(screen, s, face, op)
		}
	}
}

// cursorRadiusFor is the ring radius, shrunk while pressed
func cursorRadiusFor(pressed bool) float64 {
	if pressed {
		return cursorRadius * cursorPressScale
	}
	return cursorRadius
}

// DrawCursor draws the ring cursor at the pointer
func (r *Renderer) DrawCursor(screen *ebiten.Image, p effect.PointerState) {
	radius := cursorRadiusFor(p.Pressed)
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	vector.StrokeCircle(screen, x, y, float32(radius)+cursorStrokeWidth, cursorStrokeWidth*2, colorCursorHalo, true)
	vector.StrokeCircle(screen, x, y, float32(radius), cursorStrokeWidth, colorCursor, true)
}
