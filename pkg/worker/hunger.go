package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultHungerInterval = 30 * time.Second
	DefaultHungerAmount   = 2
)

// HungerApplier raises the hunger of every player
type HungerApplier interface {
	TickHunger(ctx context.Context, amount int) (int, error)
}

// HungerTicker periodically makes every alien a little hungrier
type HungerTicker struct {
	applier  HungerApplier
	interval time.Duration
	amount   int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type NewHungerTickerOptions struct {
	Applier  HungerApplier
	Interval time.Duration
	Amount   int
}

func NewHungerTicker(opts NewHungerTickerOptions) *HungerTicker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultHungerInterval
	}
	if opts.Amount <= 0 {
		opts.Amount = DefaultHungerAmount
	}
	return &HungerTicker{
		applier:  opts.Applier,
		interval: opts.Interval,
		amount:   opts.Amount,
	}
}

// Start runs the ticker in the background until ctx is cancelled or Stop is called
func (w *HungerTicker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
	logrus.Infof("hunger ticker started: +%d every %s", w.amount, w.interval)
}

// Stop halts the ticker and waits for an in-flight tick to finish
func (w *HungerTicker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	logrus.Info("hunger ticker stopped")
}

func (w *HungerTicker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *HungerTicker) tick(ctx context.Context) {
	changed, err := w.applier.TickHunger(ctx, w.amount)
	if err != nil {
		logrus.Errorf("hunger tick failed: %v", err)
	}
	logrus.Debugf("hunger tick raised hunger of %d players", changed)
}
