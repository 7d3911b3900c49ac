package clock

import (
	"testing"
	"time"
)

func TestFake(t *testing.T) {
	start := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	f := NewFake(start)

	if !f.Now().Equal(start) {
		t.Fatalf("Now() = %v, expected %v", f.Now(), start)
	}

	f.Advance(2 * time.Minute)
	if got := f.Now(); got.Day() != 11 || got.Minute() != 1 {
		t.Errorf("after Advance, Now() = %v", got)
	}

	f.Set(start)
	if !f.Now().Equal(start) {
		t.Errorf("after Set, Now() = %v", f.Now())
	}
}

func TestSystem(t *testing.T) {
	var c Clock = System{}
	before := time.Now()
	if c.Now().Before(before) {
		t.Error("System clock went backwards")
	}
}
