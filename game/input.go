package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"glowtrail/effect"
)

// PointerSource reports raw pointer state, polled once per update
type PointerSource interface {
	// Update samples the device for this tick
	Update()

	// Position returns the pointer position in surface pixels
	Position() (x, y int)

	// JustPressed reports a press edge during this tick
	JustPressed() bool

	// JustReleased reports a release edge during this tick
	JustReleased() bool
}

// EbitenPointer reads the left mouse button, with the first active touch taking over while held
type EbitenPointer struct {
	x, y         int
	justPressed  bool
	justReleased bool

	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool

	// Cursor position at the last poll. After a touch the position stays where
	// the touch left it until the cursor itself moves.
	cursorX, cursorY int
	fromTouch        bool
}

// NewEbitenPointer creates a pointer source backed by ebiten input state
func NewEbitenPointer() *EbitenPointer {
	return &EbitenPointer{
		touchIDs: make([]ebiten.TouchID, 0, 4),
	}
}

func (p *EbitenPointer) Update() {
	p.justPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.justReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	cx, cy := ebiten.CursorPosition()

	if p.touching {
		p.cursorX, p.cursorY = cx, cy
		if inpututil.IsTouchJustReleased(p.touch) {
			// keep the last touch position, the released id no longer has one
			p.touching = false
			p.justReleased = true
			return
		}
		p.x, p.y = ebiten.TouchPosition(p.touch)
		return
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		p.touch = p.touchIDs[0]
		p.touching = true
		p.fromTouch = true
		p.justPressed = true
		p.cursorX, p.cursorY = cx, cy
		p.x, p.y = ebiten.TouchPosition(p.touch)
		return
	}

	p.followCursor(cx, cy)
}

// followCursor takes the cursor position unless a touch placed the pointer and
// the cursor has not moved since.
func (p *EbitenPointer) followCursor(cx, cy int) {
	moved := cx != p.cursorX || cy != p.cursorY
	p.cursorX, p.cursorY = cx, cy
	if p.fromTouch && !moved {
		return
	}
	p.fromTouch = false
	p.x, p.y = cx, cy
}

func (p *EbitenPointer) Position() (int, int) {
	return p.x, p.y
}

func (p *EbitenPointer) JustPressed() bool {
	return p.justPressed
}

func (p *EbitenPointer) JustReleased() bool {
	return p.justReleased
}

// PointerInput turns polled pointer state into move, press and release events.
// A tick whose position differs from the previous tick produces exactly one move.
type PointerInput struct {
	src PointerSource

	lastX, lastY int
	seen         bool
}

func NewPointerInput(src PointerSource) *PointerInput {
	return &PointerInput{src: src}
}

// Dispatch polls the source and feeds events to the loop: move first, then press, then release.
func (in *PointerInput) Dispatch(loop *effect.Loop) {
	in.src.Update()
	x, y := in.src.Position()

	// the first sample only establishes where the pointer is
	if in.seen && (x != in.lastX || y != in.lastY) {
		loop.Move(float64(x), float64(y))
	}
	in.lastX, in.lastY = x, y
	in.seen = true

	if in.src.JustPressed() {
		loop.Press(float64(x), float64(y))
	}
	if in.src.JustReleased() {
		loop.Release()
	}
}
