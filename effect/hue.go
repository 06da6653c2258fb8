package effect

const hueRange = 360

// HueCursor is the rotating color seed shared by new glows and bursts.
type HueCursor struct {
	value int
	step  int
}

func NewHueCursor(step int) *HueCursor {
	return &HueCursor{step: step}
}

// Advance moves the cursor by one step, wrapping at 360, and returns the new hue.
func (h *HueCursor) Advance() int {
	h.value = (h.value + h.step) % hueRange
	return h.value
}

func (h *HueCursor) Value() int {
	return h.value
}
