package motion

// InputSampler exposes the logical input signals for one step. Missing
// sources read as zero / not held.
type InputSampler interface {
	// HorizontalAxis is in [-1,1].
	HorizontalAxis() float64
	// JumpHeld is the analog hold magnitude in [0,1].
	JumpHeld() float64
	// JumpPressed is true only on the step the button became held.
	JumpPressed() bool
	// JumpReleased is true only on the step the button was let go.
	JumpReleased() bool
	SprintHeld() bool
	// DashTriggered is true only on the step dash became pressed.
	DashTriggered() bool
}

// Signals is one step's snapshot of an InputSampler.
type Signals struct {
	Axis         float64
	JumpHeld     float64
	JumpPressed  bool
	JumpReleased bool
	Sprint       bool
	Dash         bool
}

// Sample reads every signal from s once. A nil sampler yields zero signals.
func Sample(s InputSampler) Signals {
	if s == nil {
		return Signals{}
	}
	axis := s.HorizontalAxis()
	if axis > 1 {
		axis = 1
	} else if axis < -1 {
		axis = -1
	}
	held := s.JumpHeld()
	if held < 0 {
		held = 0
	} else if held > 1 {
		held = 1
	}
	return Signals{
		Axis:         axis,
		JumpHeld:     held,
		JumpPressed:  s.JumpPressed(),
		JumpReleased: s.JumpReleased(),
		Sprint:       s.SprintHeld(),
		Dash:         s.DashTriggered(),
	}
}

// StaticInput is an InputSampler that returns fixed Signals.
type StaticInput struct {
	S Signals
}

func (i *StaticInput) HorizontalAxis() float64 { return i.S.Axis }
func (i *StaticInput) JumpHeld() float64       { return i.S.JumpHeld }
func (i *StaticInput) JumpPressed() bool       { return i.S.JumpPressed }
func (i *StaticInput) JumpReleased() bool      { return i.S.JumpReleased }
func (i *StaticInput) SprintHeld() bool        { return i.S.Sprint }
func (i *StaticInput) DashTriggered() bool     { return i.S.Dash }
