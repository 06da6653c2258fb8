package effect

// Trails holds live glows in insertion order
type Trails struct {
	glows  []TrailGlow
	nextID int

	shrink  float64
	minSize float64
}

func NewTrails(shrink, minSize float64) *Trails {
	return &Trails{
		glows:   make([]TrailGlow, 0, 256),
		shrink:  shrink,
		minSize: minSize,
	}
}

// Add appends a glow with the next id
func (t *Trails) Add(pos Vec2, size float64, hue int) TrailGlow {
	g := TrailGlow{Pos: pos, ID: t.nextID, Size: size, Hue: hue}
	t.nextID++
	t.glows = append(t.glows, g)
	return g
}

// Step shrinks every glow once and drops those at or below the minimum size.
// The returned slice aliases internal storage and is valid until the next mutation.
func (t *Trails) Step() []TrailGlow {
	kept := t.glows[:0]
	for _, g := range t.glows {
		g.Size *= t.shrink
		if g.Size > t.minSize {
			kept = append(kept, g)
		}
	}
	// zero the tail so the backing array does not hold stale glows
	clear(t.glows[len(kept):])
	t.glows = kept
	return t.glows
}

func (t *Trails) Len() int {
	return len(t.glows)
}

// Snapshot returns a copy of the live glows, oldest first
func (t *Trails) Snapshot() []TrailGlow {
	out := make([]TrailGlow, len(t.glows))
	copy(out, t.glows)
	return out
}
