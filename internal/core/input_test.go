package core

import (
	"reflect"
	"testing"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionRotate)
	f.Set(ActionHardDrop)
	f.Set(ActionNone)
	f.Set(Action(99))

	if !f.Has(ActionRotate) || !f.Has(ActionHardDrop) {
		t.Error("set actions should be reported")
	}
	if f.Has(ActionLeft) || f.Has(ActionNone) || f.Has(Action(99)) {
		t.Error("unset and invalid actions should not be reported")
	}

	want := []Action{ActionRotate, ActionHardDrop}
	if got := f.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, expected %v", got, want)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestInputFrameCountsRepeats(t *testing.T) {
	var f InputFrame
	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	tests := []struct {
		action Action
		want   int
	}{
		{ActionLeft, 2},
		{ActionRotate, 1},
		{ActionRight, 0},
		{ActionNone, 0},
		{Action(99), 0},
	}
	for _, tt := range tests {
		if got := f.Count(tt.action); got != tt.want {
			t.Errorf("Count(%v) = %d, expected %d", tt.action, got, tt.want)
		}
	}

	want := []Action{ActionLeft, ActionRotate}
	if got := f.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, expected %v", got, want)
	}

	for range 300 {
		f.Set(ActionHardDrop)
	}
	if got := f.Count(ActionHardDrop); got != 255 {
		t.Errorf("Count saturates at 255, got %d", got)
	}
}

func TestNewInputFrame(t *testing.T) {
	f := NewInputFrame(ActionLeft, ActionPause)
	if !f.Has(ActionLeft) || !f.Has(ActionPause) || f.Has(ActionRight) {
		t.Errorf("NewInputFrame = %v", f.Actions())
	}
}

func TestActionString(t *testing.T) {
	if ActionFastToggle.String() != "FastToggle" {
		t.Errorf("String() = %q", ActionFastToggle.String())
	}
	if Action(-3).String() != "Unknown" {
		t.Errorf("String() = %q", Action(-3).String())
	}
}

func TestStepMillis(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StepMillis() != 16 {
		t.Errorf("StepMillis() = %d, expected 16", cfg.StepMillis())
	}
	cfg.TickRate = 20
	if cfg.StepMillis() != 50 {
		t.Errorf("StepMillis() = %d, expected 50", cfg.StepMillis())
	}
	cfg.TickRate = 0
	if cfg.StepMillis() != 16 {
		t.Errorf("StepMillis() with zero rate = %d, expected 16", cfg.StepMillis())
	}
}
