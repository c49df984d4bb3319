package slack

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// channelLimiter throttles chat.postMessage per channel, with idle channels aging out.
type channelLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newChannelLimiter(perSecond float64) *channelLimiter {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &channelLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			256,
			nil,
			10*time.Minute,
		),
		rate:  rate.Limit(perSecond),
		burst: burst,
	}
}

// Wait blocks until channel may receive another message. A non-positive rate disables limiting.
func (cl *channelLimiter) Wait(ctx context.Context, channel string) error {
	if cl == nil || cl.rate <= 0 {
		return nil
	}
	cl.mu.Lock()
	limiter, ok := cl.limiters.Get(channel)
	if !ok {
		limiter = rate.NewLimiter(cl.rate, cl.burst)
		cl.limiters.Add(channel, limiter)
	}
	cl.mu.Unlock()

	return limiter.Wait(ctx)
}
