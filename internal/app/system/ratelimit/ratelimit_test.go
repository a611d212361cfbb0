// internal/app/system/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterAllowsWithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Fatal("attempt over the limit should be blocked")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("first attempt for a should pass")
	}
	if !l.Allow("b") {
		t.Fatal("first attempt for b should pass despite a being exhausted")
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)
	if !l.Allow("key") {
		t.Fatal("first attempt should pass")
	}
	if l.Allow("key") {
		t.Fatal("second attempt in the window should be blocked")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("key") {
		t.Fatal("attempt after the window expired should pass")
	}
}

func TestLimiterReset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("should be blocked before reset")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Fatal("should be allowed after reset")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("ClientIP from RemoteAddr = %q", got)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("ClientIP from X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	if got := ClientIP(r); got != "10.0.0.3" {
		t.Errorf("ClientIP should take the first X-Forwarded-For hop, got %q", got)
	}
}

func TestSigninLimiterByEmail(t *testing.T) {
	sl := NewSigninLimiter()

	// Vary the IP so only the email window is exercised.
	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/auth/signin", nil)
		r.RemoteAddr = "10.0.0.1:1000"
		r.Header.Set("X-Real-IP", string(rune('a'+i)))
		if ok, _ := sl.Check(r, "Dana@Example.edu"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	r := httptest.NewRequest("POST", "/auth/signin", nil)
	r.Header.Set("X-Real-IP", "z")
	ok, reason := sl.Check(r, "dana@example.edu")
	if ok {
		t.Fatal("sixth attempt for the same email should be blocked")
	}
	if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	sl.ResetEmail("DANA@example.edu")
	if ok, _ := sl.Check(r, "dana@example.edu"); !ok {
		t.Fatal("attempt after ResetEmail should be allowed")
	}
}
