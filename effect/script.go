package effect

import "math"

// Script drives a loop without a window: the pointer circles Center and
// presses every PressEvery frames, holding for HoldFrames.
type Script struct {
	Center      Vec2
	Radius      float64
	AngularStep float64 // radians per frame
	PressEvery  int     // 0 disables presses
	HoldFrames  int
}

// Sample is the state after one scripted frame
type Sample struct {
	Frame     uint64
	Glows     int
	Particles int
	Hue       int
}

// Run plays frames ticks and returns one sample per tick. It stops early if the
// loop is stopped.
func (s Script) Run(l *Loop, frames int) []Sample {
	samples := make([]Sample, 0, frames)
	for i := 0; i < frames; i++ {
		angle := s.AngularStep * float64(i)
		x := s.Center.X + math.Cos(angle)*s.Radius
		y := s.Center.Y + math.Sin(angle)*s.Radius
		l.Move(x, y)

		if s.PressEvery > 0 {
			if i%s.PressEvery == 0 {
				l.Press(x, y)
			}
			if i%s.PressEvery == s.HoldFrames {
				l.Release()
			}
		}

		frame, ok := l.Tick()
		if !ok {
			break
		}
		samples = append(samples, Sample{
			Frame:     frame.Number,
			Glows:     len(frame.Glows),
			Particles: len(frame.Particles),
			Hue:       frame.Hue,
		})
	}
	return samples
}
