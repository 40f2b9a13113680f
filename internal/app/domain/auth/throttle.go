package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// LoginThrottle counts failed login attempts per client IP over a sliding
// window. It only slows down credential guessing at this hop; the backend
// stays the real gatekeeper.
type LoginThrottle struct {
	attempts *gocache.Cache
	max      int
	window   time.Duration
}

func NewLoginThrottle(max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		attempts: gocache.New(window, 2*window),
		max:      max,
		window:   window,
	}
}

// Allow reports whether the client may attempt another login.
func (t *LoginThrottle) Allow(ip string) bool {
	n, found := t.attempts.Get(ip)
	if !found {
		return true
	}
	return n.(int) < t.max
}

// Failure records a rejected attempt.
func (t *LoginThrottle) Failure(ip string) {
	if err := t.attempts.Add(ip, 1, t.window); err != nil {
		// Counter exists, bump it. The original expiry is kept on purpose.
		_ = t.attempts.Increment(ip, 1)
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ip string) {
	t.attempts.Delete(ip)
}
