package effect

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"glowtrail/config"
)

// Frame is what one tick produced for drawing. Slices are valid until the next Tick.
type Frame struct {
	Number    uint64
	Glows     []TrailGlow
	Particles []Particle
	Pointer   PointerState
	Hue       int
}

// Loop owns the trail and particle collections and the pointer state.
// Handlers and Tick may be called from different goroutines; all access is serialized.
type Loop struct {
	mu sync.Mutex

	cfg       config.EffectConfig
	trails    *Trails
	particles *Particles
	hue       *HueCursor
	pointer   PointerState
	rng       *rand.Rand

	running bool
	frame   uint64
	width   int
	height  int
}

// New creates a stopped loop. A zero seed picks a time-based one.
func New(cfg config.EffectConfig, seed int64) *Loop {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Loop{
		cfg:       cfg,
		trails:    NewTrails(cfg.ShrinkFactor, cfg.MinGlowSize),
		particles: NewParticles(cfg.Gravity),
		hue:       NewHueCursor(cfg.HueStep),
		rng:       rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Start marks the loop live. Handlers and ticks before Start do nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = true
}

// Stop tears the loop down. No later handler or Tick touches state.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// GlowSize maps pointer speed to a new glow's radius.
func (l *Loop) GlowSize(velocity float64) float64 {
	return math.Min(l.cfg.BaseGlowSize+velocity*l.cfg.VelocityGain, l.cfg.MaxGlowSize)
}

// Move handles one pointer move event and returns the glow it appended.
// A stopped loop ignores it and returns the zero glow.
func (l *Loop) Move(x, y float64) TrailGlow {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return TrailGlow{}
	}

	pos := Vec2{X: x, Y: y}
	velocity := pos.Sub(l.pointer.Last).Len()
	hue := l.hue.Advance()
	g := l.trails.Add(pos, l.GlowSize(velocity), hue)

	l.pointer.Pos = pos
	l.pointer.Last = pos
	return g
}

// Press handles pointer down and returns a copy of the burst it emitted,
// or nil on a stopped loop.
func (l *Loop) Press(x, y float64) []Particle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return nil
	}

	l.pointer.Pressed = true
	burst := l.particles.Burst(Vec2{X: x, Y: y}, l.cfg.BurstCount, l.cfg.ParticleLife, l.hue.Value(), l.burstSpeed)
	out := make([]Particle, len(burst))
	copy(out, burst)
	return out
}

func (l *Loop) burstSpeed() float64 {
	return l.cfg.BurstSpeedMin + l.rng.Float64()*(l.cfg.BurstSpeedMax-l.cfg.BurstSpeedMin)
}

// Release handles pointer up
func (l *Loop) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.pointer.Pressed = false
}

// Resize records the surface size. Collections are never touched.
func (l *Loop) Resize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.width = width
	l.height = height
}

func (l *Loop) Size() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.width, l.height
}

// Tick ages both collections by one frame. The bool reports whether the
// caller should schedule another tick; it is false once the loop is stopped.
func (l *Loop) Tick() (Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return Frame{}, false
	}
	l.frame++
	return Frame{
		Number:    l.frame,
		Glows:     l.trails.Step(),
		Particles: l.particles.Step(),
		Pointer:   l.pointer,
		Hue:       l.hue.Value(),
	}, true
}

// Config returns the effect settings the loop was built with
func (l *Loop) Config() config.EffectConfig {
	return l.cfg
}

func (l *Loop) Trails() []TrailGlow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trails.Snapshot()
}

func (l *Loop) Particles() []Particle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.particles.Snapshot()
}

func (l *Loop) Pointer() PointerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pointer
}

func (l *Loop) Hue() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hue.Value()
}

// Counts returns the live glow and particle counts
func (l *Loop) Counts() (glows, particles int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trails.Len(), l.particles.Len()
}
