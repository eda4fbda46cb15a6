package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent pacing. Less
// precise than AdaptiveLimiter but simpler, and good enough outside
// latency-sensitive runs.
type TickerLimiter struct {
	ticker *time.Ticker
	ch     <-chan time.Time
	fps    float64
}

func NewTickerLimiter(fps float64) *TickerLimiter {
	ticker := time.NewTicker(FrameDuration(fps))
	return &TickerLimiter{ticker: ticker, ch: ticker.C, fps: fps}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(FrameDuration(t.fps))
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
