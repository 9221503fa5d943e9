package outbox

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Drainer flushes the outbox in the background: whenever it is kicked,
// on every interval tick, and when connectivity comes back.
type Drainer struct {
	src      Source
	sender   Sender
	interval time.Duration
	logger   *slog.Logger

	kick chan struct{}

	mu     sync.Mutex
	online bool
}

func NewDrainer(src Source, sender Sender, interval time.Duration, logger *slog.Logger) *Drainer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Drainer{
		src:      src,
		sender:   sender,
		interval: interval,
		logger:   logger,
		kick:     make(chan struct{}, 1),
		online:   true,
	}
}

// Kick asks for a flush without blocking. Kicks coalesce.
func (d *Drainer) Kick() {
	select {
	case d.kick <- struct{}{}:
	default:
	}
}

// SetOnline records connectivity. Going from offline to online triggers a flush.
func (d *Drainer) SetOnline(online bool) {
	d.mu.Lock()
	was := d.online
	d.online = online
	d.mu.Unlock()

	if online && !was {
		d.Kick()
	}
}

func (d *Drainer) Online() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.online
}

// FlushNow runs one flush and logs the outcome.
func (d *Drainer) FlushNow(ctx context.Context) (int, error) {
	n, err := Flush(ctx, d.src, d.sender, d.Online())
	if err != nil {
		d.logger.Warn("sync flush failed, queue kept for retry", "err", err)
		return 0, err
	}
	if n > 0 {
		d.logger.Info("sync flushed", "events", n)
	}
	return n, nil
}

// Run drains until ctx is cancelled. Flushes never overlap.
func (d *Drainer) Run(ctx context.Context) {
	var tick <-chan time.Time
	if d.interval > 0 {
		t := time.NewTicker(d.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.kick:
		case <-tick:
		}
		d.FlushNow(ctx)
	}
}
