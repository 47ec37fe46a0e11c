package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-key request counter. Allow reports whether the caller
// identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

type entry struct {
	count   int
	resetAt time.Time
}

// fixedWindow allows up to limit requests per key per window. Counts reset
// when the window elapses. Single-instance only; a multi-instance deployment
// needs a shared counter behind the same interface.
type fixedWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*entry
	now    func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) Limiter {
	return &fixedWindow{
		limit:  limit,
		window: window,
		seen:   make(map[string]*entry),
		now:    time.Now,
	}
}

func (l *fixedWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.seen[key]
	if !ok || now.After(e.resetAt) {
		l.seen[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if e.count >= l.limit {
		return false
	}
	e.count++
	return true
}
