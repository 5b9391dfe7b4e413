package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionNone)
	if !f.Has(ActionJump) || f.Has(ActionPause) || f.Has(ActionNone) {
		t.Errorf("unexpected frame contents: %+v", f)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}

	g := NewInputFrame(ActionPause, ActionQuit)
	if !g.Has(ActionPause) || !g.Has(ActionQuit) || g.Has(ActionJump) {
		t.Errorf("NewInputFrame: %+v", g)
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" || Action(200).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}

func TestRuntimeConfigTick(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickInterval() != time.Second/60 {
		t.Errorf("TickInterval() = %v", cfg.TickInterval())
	}
	cfg.TickRate = 0
	if cfg.TickSeconds() != 1.0/60.0 {
		t.Errorf("zero tick rate should fall back to 60, got %v", cfg.TickSeconds())
	}
}
