// ABOUTME: Cancellable periodic task driving cursor updates
// ABOUTME: Ticks at a fixed interval until stopped; stop waits for the loop to exit
package transport

import (
	"context"
	"time"
)

// poller runs tick every interval between start and stop.
// It is not safe for concurrent use; the controller serializes calls.
type poller struct {
	interval time.Duration
	tick     func()

	cancel context.CancelFunc
	done   chan struct{}
}

func newPoller(interval time.Duration, tick func()) *poller {
	return &poller{
		interval: interval,
		tick:     tick,
	}
}

// running reports whether the loop is active
func (p *poller) running() bool {
	return p.cancel != nil
}

// start launches the loop if it is not already running
func (p *poller) start() {
	if p.running() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

// stop cancels the loop and blocks until it has returned.
// No tick runs after stop returns.
func (p *poller) stop() {
	if !p.running() {
		return
	}

	p.cancel()
	<-p.done

	p.cancel = nil
	p.done = nil
}

func (p *poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both channels may be ready at once; cancellation wins
			if ctx.Err() != nil {
				return
			}
			p.tick()
		}
	}
}
