package server

import (
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"palette-bridge/internal/config"
)

func TestRateLimiterBurstAndRefill(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter(60)
	rl.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow("a"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients have separate buckets")

	now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("a"))
	}
}

func TestRateLimiterPrune(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter(60)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(10 * time.Minute)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.Prune(5*time.Minute))
	assert.Len(t, rl.buckets, 1)
}

func TestClientIPIgnoresHeadersFromUntrustedPeer(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req, nil))

	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "192.0.2.1", clientIP(req, nil))
	assert.Equal(t, "192.0.2.1", clientIP(req, mustNets(t, "10.0.0.0/8")))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req, nil))
}

func TestClientIPFromTrustedProxy(t *testing.T) {
	trusted := mustNets(t, "10.0.0.0/8")

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:40000"
	assert.Equal(t, "10.0.0.5", clientIP(req, trusted))

	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req, trusted))

	req.Header.Set("X-Forwarded-For", "1.2.3.4, 203.0.113.7, 10.0.0.9")
	assert.Equal(t, "203.0.113.7", clientIP(req, trusted), "spoofed left-most hop is ignored")
}

func mustNets(t *testing.T, entries ...string) []*net.IPNet {
	t.Helper()
	cfg := config.Default()
	cfg.TrustedProxies = entries
	nets, err := cfg.TrustedNets()
	if err != nil {
		t.Fatal(err)
	}
	return nets
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}
