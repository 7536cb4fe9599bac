package core

import "math"

// Action is a semantic player intent, decoupled from the physical key that
// produced it.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionSoftDrop
	ActionRotate
	ActionRotateCCW
	ActionHardDrop
	ActionFastToggle // hold-to-fall mode
	ActionPause
	ActionRestart
	ActionBack
	ActionConfirm
	ActionQuit

	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHardDrop:
		return "HardDrop"
	case ActionFastToggle:
		return "FastToggle"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one simulation step.
// Repeated presses of one action within a step are counted. The zero value
// is an empty frame.
type InputFrame struct {
	counts [actionCount]uint8
}

// NewInputFrame returns a frame with the given actions set.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set records one press of a. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	if f.counts[a] < math.MaxUint8 {
		f.counts[a]++
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times a was pressed during the step.
func (f InputFrame) Count(a Action) int {
	if a <= ActionNone || a >= actionCount {
		return 0
	}
	return int(f.counts[a])
}

func (f InputFrame) Empty() bool {
	return f == InputFrame{}
}

func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
