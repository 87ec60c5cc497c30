package core

import (
	"testing"
	"time"
)

func TestLatchHoldWindow(t *testing.T) {
	base := time.Unix(0, 0)
	l := NewLatch(250 * time.Millisecond)

	l.Press(ActionRight, base)

	tests := []struct {
		name     string
		at       time.Duration
		expected bool
	}{
		{"same instant", 0, true},
		{"inside window", 200 * time.Millisecond, true},
		{"after window", 300 * time.Millisecond, false},
	}

	for _, tc := range tests {
		f := l.Frame(base.Add(tc.at))
		if got := f.Has(ActionRight); got != tc.expected {
			t.Errorf("%s: Has(Right) = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestLatchOneShotConsumed(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewLatch(0)

	l.Press(ActionPause, now)
	if !l.Frame(now).Has(ActionPause) {
		t.Fatal("pause should appear in the first frame")
	}
	if l.Frame(now).Has(ActionPause) {
		t.Error("pause should be consumed after one frame")
	}
}

func TestLatchOppositeDirections(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewLatch(0)

	l.Press(ActionLeft, now)
	l.Press(ActionRight, now)

	f := l.Frame(now)
	if f.Has(ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.Has(ActionRight) {
		t.Error("right should be held")
	}

	l.Release(ActionRight)
	if l.Frame(now).Has(ActionRight) {
		t.Error("released action should not be held")
	}
}

func TestLatchJumpPressSurvivesWindow(t *testing.T) {
	base := time.Unix(0, 0)
	l := NewLatch(10 * time.Millisecond)

	l.Press(ActionJump, base)
	if !l.Frame(base.Add(time.Second)).Has(ActionJump) {
		t.Error("a jump press should be delivered once even after the hold window")
	}
	if l.Frame(base.Add(time.Second)).Has(ActionJump) {
		t.Error("stale jump should not repeat")
	}
}

func TestLatchClose(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewLatch(0)
	l.Press(ActionLeft, now)
	l.Close()
	l.Press(ActionRight, now)

	if f := l.Frame(now); len(f.Actions) != 0 {
		t.Errorf("closed latch produced %v, expected no actions", f.Actions)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		wantErr  bool
	}{
		{"left", ActionLeft, false},
		{" JUMP ", ActionJump, false},
		{"interact", ActionInteract, false},
		{"none", ActionNone, true},
		{"fly", ActionNone, true},
	}

	for _, tc := range tests {
		got, err := ParseAction(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAction(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseAction(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
