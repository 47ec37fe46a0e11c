package ratelimit

import (
	"testing"
	"time"
)

func TestAllowUpToLimit(t *testing.T) {
	l := NewFixedWindow(5, time.Minute)
	for i := 0; i < 5; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("6th request should be blocked")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewFixedWindow(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("first request for key a should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("first request for key b should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request for key a should be blocked")
	}
}

func TestWindowReset(t *testing.T) {
	l := NewFixedWindow(1, time.Minute).(*fixedWindow)
	current := time.Now()
	l.now = func() time.Time { return current }

	if !l.Allow("a") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request inside the window should be blocked")
	}

	current = current.Add(2 * time.Minute)
	if !l.Allow("a") {
		t.Fatal("request after the window elapsed should be allowed")
	}
}
