package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.2

// Frame is one tick of raw device readings.
type Frame struct {
	// Stick is the primary analog axis, already deadzoned.
	Stick float64
	// DPad and Keys are raw -1/0/+1 axes.
	DPad float64
	Keys float64
	// Jump is the analog jump hold magnitude.
	Jump   float64
	Sprint bool
	Dash   bool
}

// Device samples keyboard and the first gamepad through ebiten. Call Update
// once per tick before the controller advances.
type Device struct {
	frame Frame
	axis  float64
	jump  Edge
	dash  Edge
}

func NewDevice() *Device {
	return &Device{}
}

// Update polls ebiten and latches this tick's signals.
func (d *Device) Update() {
	d.Apply(Poll())
}

// Apply latches a frame of readings. Update uses it with live device state.
func (d *Device) Apply(f Frame) {
	d.frame = f
	d.axis = AxisSources{
		func() float64 { return f.Stick },
		func() float64 { return f.DPad },
		func() float64 { return f.Keys },
	}.Value()
	d.jump.Update(f.Jump > 0)
	d.dash.Update(f.Dash)
}

func (d *Device) HorizontalAxis() float64 { return d.axis }
func (d *Device) JumpHeld() float64       { return d.frame.Jump }
func (d *Device) JumpPressed() bool       { return d.jump.Pressed() }
func (d *Device) JumpReleased() bool      { return d.jump.Released() }
func (d *Device) SprintHeld() bool        { return d.frame.Sprint }
func (d *Device) DashTriggered() bool     { return d.dash.Pressed() }

// Poll reads the keyboard and the first connected standard gamepad.
func Poll() Frame {
	var f Frame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.Keys -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.Keys += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		f.Jump = 1
	}
	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	f.Dash = ebiten.IsKeyPressed(ebiten.KeyX)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return f
		}
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			f.Stick = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			f.DPad -= 1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			f.DPad += 1
		}
		f.Jump = math.Max(f.Jump, ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonRightBottom))
		f.Sprint = f.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		f.Dash = f.Dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}
	return f
}
