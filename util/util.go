package util

import "time"

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ImmediateTicker works like time.Ticker but fires once immediately.
type ImmediateTicker struct {
	C <-chan time.Time

	t    *time.Ticker
	done chan struct{}
}

func NewImmediateTicker(d time.Duration) *ImmediateTicker {
	t := time.NewTicker(d)
	nc := make(chan time.Time, 1)
	done := make(chan struct{})
	go func() {
		nc <- time.Now()
		for {
			select {
			case <-done:
				return
			case tm := <-t.C:
				select {
				case nc <- tm:
				case <-done:
					return
				}
			}
		}
	}()
	return &ImmediateTicker{C: nc, t: t, done: done}
}

// Stop stops the ticker and releases its forwarding goroutine. Like
// time.Ticker.Stop, it does not close C.
func (t *ImmediateTicker) Stop() {
	t.t.Stop()
	close(t.done)
}
