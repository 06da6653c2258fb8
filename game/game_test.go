package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"glowtrail/config"
	"glowtrail/effect"
)

// fakePointer replays scripted samples, one per Update
type fakePointer struct {
	samples []fakeSample
	i       int
	cur     fakeSample
}

type fakeSample struct {
	x, y              int
	pressed, released bool
}

func (f *fakePointer) Update() {
	f.cur = f.samples[f.i]
	f.i++
}

func (f *fakePointer) Position() (int, int) { return f.cur.x, f.cur.y }
func (f *fakePointer) JustPressed() bool { return f.cur.pressed }
func (f *fakePointer) JustReleased() bool { return f.cur.released }

func newLoop() *effect.Loop {
	l := effect.New(config.DefaultEffect(), 1)
	l.Start()
	return l
}

func TestPointerInput_Dispatch(t *testing.T) {
	tests := []struct {
		name          string
		samples       []fakeSample
		wantGlows     int
		wantParticles int
		wantPressed   bool
	}{
		{"First sample only locates", []fakeSample{{x: 5, y: 5}}, 0, 0, false},
		{"Still pointer", []fakeSample{{x: 5, y: 5}, {x: 5, y: 5}, {x: 5, y: 5}}, 0, 0, false},
		{"Each change is one move", []fakeSample{{x: 0, y: 0}, {x: 1, y: 0}, {x: 2, y: 0}, {x: 2, y: 0}, {x: 3, y: 1}}, 3, 0, false},
		{"Press", []fakeSample{{x: 0, y: 0}, {x: 0, y: 0, pressed: true}}, 0, 20, true},
		{"Press and release", []fakeSample{{x: 0, y: 0, pressed: true}, {x: 4, y: 0, released: true}}, 1, 20, false},
		{"Two presses", []fakeSample{{pressed: true}, {released: true}, {pressed: true}}, 0, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := newLoop()
			in := NewPointerInput(&fakePointer{samples: tt.samples})
			for range tt.samples {
				in.Dispatch(loop)
			}
			glows, particles := loop.Counts()
			if glows != tt.wantGlows {
				t.Errorf("expected %d glows, got %d", tt.wantGlows, glows)
			}
			if particles != tt.wantParticles {
				t.Errorf("expected %d particles, got %d", tt.wantParticles, particles)
			}
			if loop.Pointer().Pressed != tt.wantPressed {
				t.Errorf("expected pressed %v, got %v", tt.wantPressed, loop.Pointer().Pressed)
			}
		})
	}
}

func TestPointerInput_PressAtPolledPosition(t *testing.T) {
	loop := newLoop()
	in := NewPointerInput(&fakePointer{samples: []fakeSample{{x: 0, y: 0}, {x: 100, y: 100, pressed: true}}})
	in.Dispatch(loop)
	in.Dispatch(loop)

	for _, p := range loop.Particles() {
		if p.Pos != (effect.Vec2{X: 100, Y: 100}) {
			t.Fatalf("expected burst at (100,100), got %v", p.Pos)
		}
	}
	// the move lands before the press, so the burst takes the advanced hue
	if loop.Particles()[0].Hue != 2 {
		t.Errorf("expected hue 2, got %d", loop.Particles()[0].Hue)
	}
}

func TestAppendGlowMesh(t *testing.T) {
	g := effect.TrailGlow{Pos: effect.Vec2{X: 50, Y: 40}, Size: 20, Hue: 200}
	vs, is := appendGlowMesh(nil, nil, g)

	if len(vs) != verticesPerGlow {
		t.Fatalf("expected %d vertices, got %d", verticesPerGlow, len(vs))
	}
	if len(is) != glowSegments*9 {
		t.Fatalf("expected %d indices, got %d", glowSegments*9, len(is))
	}

	center := vs[0]
	if center.DstX != 50 || center.DstY != 40 {
		t.Errorf("expected center at (50,40), got (%v,%v)", center.DstX, center.DstY)
	}
	if math.Abs(float64(center.ColorA)-0.8) > 0.01 {
		t.Errorf("expected center alpha 0.8, got %v", center.ColorA)
	}

	for i := 0; i < glowSegments; i++ {
		in := vs[1+2*i]
		out := vs[2+2*i]
		if d := math.Hypot(float64(in.DstX)-50, float64(in.DstY)-40); math.Abs(d-10) > 1e-3 {
			t.Errorf("segment %d: expected inner radius 10, got %v", i, d)
		}
		if d := math.Hypot(float64(out.DstX)-50, float64(out.DstY)-40); math.Abs(d-20) > 1e-3 {
			t.Errorf("segment %d: expected outer radius 20, got %v", i, d)
		}
		if math.Abs(float64(in.ColorA)-0.4) > 0.01 {
			t.Errorf("segment %d: expected inner alpha 0.4, got %v", i, in.ColorA)
		}
		if out.ColorA != 0 {
			t.Errorf("segment %d: expected transparent rim, got %v", i, out.ColorA)
		}
	}

	for _, idx := range is {
		if int(idx) >= len(vs) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestAppendGlowMesh_Batches(t *testing.T) {
	a := effect.TrailGlow{Size: 10}
	b := effect.TrailGlow{Pos: effect.Vec2{X: 30}, Size: 10}

	vs, is := appendGlowMesh(nil, nil, a)
	vs, is = appendGlowMesh(vs, is, b)

	if len(vs) != 2*verticesPerGlow {
		t.Fatalf("expected %d vertices, got %d", 2*verticesPerGlow, len(vs))
	}
	second := is[glowSegments*9:]
	for _, idx := range second {
		if int(idx) < verticesPerGlow {
			t.Fatalf("second glow index %d points into the first glow", idx)
		}
	}
}

func TestBackgroundMesh(t *testing.T) {
	vs, is := backgroundMesh(800, 600)
	if len(vs) != 4 || len(is) != 6 {
		t.Fatalf("expected a quad, got %d vertices %d indices", len(vs), len(is))
	}
	if vs[3].DstX != 800 || vs[3].DstY != 600 {
		t.Errorf("expected bottom-right corner at (800,600), got (%v,%v)", vs[3].DstX, vs[3].DstY)
	}
	if vs[0].ColorA != 1 {
		t.Errorf("expected opaque background, got alpha %v", vs[0].ColorA)
	}
}

func TestFadeColor(t *testing.T) {
	c := fadeColor(config.RGBA{R: 10, G: 10, B: 20, A: 0.15})
	if c.R != 10 || c.G != 10 || c.B != 20 || c.A != 38 {
		t.Errorf("expected (10,10,20,38), got %v", c)
	}
}

func TestProfiler_Observe(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		ticks     int
		warm      bool
		wantDrops int
		wantFPS   float64
	}{
		{"Healthy", 1.0 / 64, 32, true, 0, 64},
		{"Slow", 1.0 / 16, 8, true, 1, 16},
		{"Slow during warm-up", 1.0 / 16, 8, false, 0, 16},
		{"Window not elapsed", 1.0 / 16, 7, true, 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfiler("")
			if tt.warm {
				p.startTime = time.Now().Add(-time.Minute)
			}
			for i := 0; i < tt.ticks; i++ {
				p.Observe(tt.dt, 1, 2)
			}
			if p.Drops() != tt.wantDrops {
				t.Errorf("expected %d drops, got %d", tt.wantDrops, p.Drops())
			}
			if p.FPS() != tt.wantFPS {
				t.Errorf("expected fps %v, got %v", tt.wantFPS, p.FPS())
			}
		})
	}
}

func TestProfiler_CaptureBusy(t *testing.T) {
	p := NewProfiler(t.TempDir())
	p.isProfiling = true
	if !p.IsProfiling() {
		t.Error("expected IsProfiling to report a running capture")
	}
	if err := p.CaptureProfile("test"); !errors.Is(err, errCaptureBusy) {
		t.Errorf("expected busy error, got %v", err)
	}

	p.isProfiling = false
	p.lastCaptureTime = time.Now()
	if err := p.CaptureProfile("test"); !errors.Is(err, errCaptureBusy) {
		t.Errorf("expected cooldown error, got %v", err)
	}
}

func TestDebugState_Toggle(t *testing.T) {
	d := &DebugState{}
	d.Toggle()
	if !d.ShowStats {
		t.Error("expected stats shown after toggle")
	}
	d.Toggle()
	if d.ShowStats {
		t.Error("expected stats hidden after second toggle")
	}
}

func TestEnsureSurface(t *testing.T) {
	type size struct{ w, h int }
	tests := []struct {
		name       string
		layouts    []size
		wantCanvas bool
		wantSize   size
	}{
		{"Valid size allocates", []size{{200, 100}}, true, size{200, 100}},
		{"Zero size drops the surface", []size{{200, 100}, {0, 0}}, false, size{0, 0}},
		{"Repeated zero size", []size{{200, 100}, {0, 0}, {0, 0}}, false, size{0, 0}},
		{"Zero width only", []size{{200, 100}, {0, 100}}, false, size{0, 100}},
		{"Zero then valid", []size{{0, 0}, {300, 200}}, true, size{300, 200}},
		{"Zero between valid sizes", []size{{200, 100}, {0, 0}, {640, 480}}, true, size{640, 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{loop: newLoop()}
			for _, l := range tt.layouts {
				g.layoutWidth, g.layoutHeight = l.w, l.h
				g.ensureSurface()
			}

			if (g.canvas != nil) != tt.wantCanvas {
				t.Fatalf("expected surface allocated %v, got %v", tt.wantCanvas, g.canvas != nil)
			}
			if g.canvas != nil {
				b := g.canvas.Bounds()
				if b.Dx() != tt.wantSize.w || b.Dy() != tt.wantSize.h {
					t.Errorf("expected %dx%d surface, got %dx%d", tt.wantSize.w, tt.wantSize.h, b.Dx(), b.Dy())
				}
			}
			if w, h := g.loop.Size(); w != tt.wantSize.w || h != tt.wantSize.h {
				t.Errorf("expected loop size %dx%d, got %dx%d", tt.wantSize.w, tt.wantSize.h, w, h)
			}
		})
	}
}

func TestEnsureSurface_SameSizeKeepsSurface(t *testing.T) {
	g := &Game{loop: newLoop(), layoutWidth: 320, layoutHeight: 240}
	g.ensureSurface()
	first := g.canvas
	g.ensureSurface()
	if g.canvas != first {
		t.Error("expected surface reused when the size is unchanged")
	}
}

func TestEnsureSurface_TicksAgeWithoutSurface(t *testing.T) {
	loop := newLoop()
	g := &Game{loop: loop, layoutWidth: 200, layoutHeight: 100}
	g.ensureSurface()
	g.layoutWidth, g.layoutHeight = 0, 0
	g.ensureSurface()

	loop.Move(10, 0)
	loop.Press(10, 0)
	for i := 0; i < 2; i++ {
		g.ensureSurface()
		if _, ok := loop.Tick(); !ok {
			t.Fatal("expected loop to keep running without a surface")
		}
	}

	if g.canvas != nil {
		t.Fatal("expected no surface at zero size")
	}
	glows := loop.Trails()
	if len(glows) != 1 || math.Abs(glows[0].Size-25*0.92*0.92) > 1e-9 {
		t.Errorf("expected glow shrunk twice to %v, got %+v", 25*0.92*0.92, glows)
	}
	particles := loop.Particles()
	if len(particles) != 20 || particles[0].Life != 58 {
		t.Errorf("expected 20 particles at life 58, got %d", len(particles))
	}
}

func TestEbitenPointer_FollowCursor(t *testing.T) {
	type pos struct{ x, y int }
	tests := []struct {
		name    string
		touched bool
		cursors []pos
		want    pos
	}{
		{"Mouse follows cursor", false, []pos{{10, 10}, {12, 15}}, pos{12, 15}},
		{"Mouse still cursor", false, []pos{{10, 10}, {10, 10}}, pos{10, 10}},
		{"Touch kept while cursor idle", true, []pos{{10, 10}, {10, 10}}, pos{200, 300}},
		{"Cursor moving takes over", true, []pos{{10, 10}, {11, 10}}, pos{11, 10}},
		{"Cursor stays after taking over", true, []pos{{11, 10}, {11, 10}}, pos{11, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEbitenPointer()
			p.cursorX, p.cursorY = 10, 10
			if tt.touched {
				p.x, p.y = 200, 300
				p.fromTouch = true
			}
			for _, c := range tt.cursors {
				p.followCursor(c.x, c.y)
			}
			if x, y := p.Position(); x != tt.want.x || y != tt.want.y {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.want.x, tt.want.y, x, y)
			}
		})
	}
}

func TestPulseAlpha(t *testing.T) {
	tests := []struct {
		frame    uint64
		expected float64
	}{
		{0, 1},
		{pulsePeriod / 4, 0.75},
		{pulsePeriod / 2, 0.5},
		{3 * pulsePeriod / 4, 0.75},
		{pulsePeriod, 1},
		{5*pulsePeriod + pulsePeriod/2, 0.5},
	}

	for _, tt := range tests {
		if got := pulseAlpha(tt.frame); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("frame %d: expected %v, got %v", tt.frame, tt.expected, got)
		}
	}
}

func TestOverlayMesh(t *testing.T) {
	vs, is := overlayMesh(800, 600, 0.5)
	if len(vs) != 4 || len(is) != 6 {
		t.Fatalf("expected a quad, got %d vertices %d indices", len(vs), len(is))
	}
	want := float32(26) / 0xff * 0.5
	if math.Abs(float64(vs[0].ColorA-want)) > 1e-6 || math.Abs(float64(vs[3].ColorA-want)) > 1e-6 {
		t.Errorf("expected corner alpha %v, got %v and %v", want, vs[0].ColorA, vs[3].ColorA)
	}
	if vs[1].ColorA != 0 || vs[2].ColorA != 0 {
		t.Errorf("expected transparent diagonal, got %v and %v", vs[1].ColorA, vs[2].ColorA)
	}
	if vs[0].ColorB <= vs[0].ColorR || vs[3].ColorR <= vs[3].ColorB {
		t.Error("expected blue top-left and pink bottom-right")
	}
}

func TestCursorRadiusFor(t *testing.T) {
	tests := []struct {
		name     string
		pressed  bool
		expected float64
	}{
		{"Released", false, 12},
		{"Pressed", true, 9.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cursorRadiusFor(tt.pressed); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected radius %v, got %v", tt.expected, got)
			}
		})
	}
}
