package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// CommandLimiter throttles manual digest runs per key (a channel ID), so a
// burst of commands cannot hammer the generation backend.
type CommandLimiter struct {
	mu       sync.Mutex
	every    time.Duration
	limiters map[string]*rate.Limiter
}

// NewCommandLimiter allows one run per key every cooldown. A zero
// cooldown disables throttling.
func NewCommandLimiter(cooldown time.Duration) *CommandLimiter {
	return &CommandLimiter{
		every:    cooldown,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether key may run now and consumes its token if so.
func (l *CommandLimiter) Allow(key string) bool {
	return l.AllowAt(key, time.Now())
}

func (l *CommandLimiter) AllowAt(key string, now time.Time) bool {
	if l == nil || l.every <= 0 {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.every), 1)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}
