package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingApplier struct {
	calls  atomic.Int32
	amount atomic.Int32
}

func (c *countingApplier) TickHunger(_ context.Context, amount int) (int, error) {
	c.calls.Add(1)
	c.amount.Store(int32(amount))
	return 1, nil
}

func TestHungerTicker_Ticks(t *testing.T) {
	applier := &countingApplier{}
	w := NewHungerTicker(NewHungerTickerOptions{
		Applier:  applier,
		Interval: 5 * time.Millisecond,
		Amount:   3,
	})

	w.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for applier.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if applier.calls.Load() < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", applier.calls.Load())
	}
	if applier.amount.Load() != 3 {
		t.Errorf("amount = %d, expected 3", applier.amount.Load())
	}

	// No ticks after Stop
	calls := applier.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if applier.calls.Load() != calls {
		t.Error("ticker kept running after Stop")
	}
}

func TestHungerTicker_StopsWithContext(t *testing.T) {
	applier := &countingApplier{}
	w := NewHungerTicker(NewHungerTickerOptions{Applier: applier, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop when its context was cancelled")
	}
	if applier.calls.Load() != 0 {
		t.Errorf("expected no ticks, got %d", applier.calls.Load())
	}
}

func TestNewHungerTicker_Defaults(t *testing.T) {
	w := NewHungerTicker(NewHungerTickerOptions{Applier: &countingApplier{}})
	if w.interval != DefaultHungerInterval || w.amount != DefaultHungerAmount {
		t.Errorf("defaults = %s/%d, expected %s/%d", w.interval, w.amount, DefaultHungerInterval, DefaultHungerAmount)
	}

	// Stop without Start is a no-op
	w.Stop()
}
