package effect

import "math"

// Particles holds live burst particles in insertion order
type Particles struct {
	items  []Particle
	nextID int

	gravity float64
}

func NewParticles(gravity float64) *Particles {
	return &Particles{
		items:   make([]Particle, 0, 256),
		gravity: gravity,
	}
}

// Burst appends count particles at equal angular spacing around at.
// speed is called once per particle, in angle order.
func (ps *Particles) Burst(at Vec2, count, life, hue int, speed func() float64) []Particle {
	start := len(ps.items)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		s := speed()
		ps.items = append(ps.items, Particle{
			Pos:  at,
			Vel:  Vec2{X: math.Cos(angle) * s, Y: math.Sin(angle) * s},
			Life: life,
			Hue:  hue,
			ID:   ps.nextID,
		})
		ps.nextID++
	}
	return ps.items[start:]
}

// Step integrates one frame: position by the current velocity, then gravity, then life.
// Particles whose life reaches zero are dropped. The returned slice aliases internal storage.
func (ps *Particles) Step() []Particle {
	kept := ps.items[:0]
	for _, p := range ps.items {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Vel.Y += ps.gravity
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	clear(ps.items[len(kept):])
	ps.items = kept
	return ps.items
}

func (ps *Particles) Len() int {
	return len(ps.items)
}

// Snapshot returns a copy of the live particles, oldest first
func (ps *Particles) Snapshot() []Particle {
	out := make([]Particle, len(ps.items))
	copy(out, ps.items)
	return out
}
