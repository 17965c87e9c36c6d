package httpapi

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client. Each client may make rate requests
// per interval; tokens refill continuously.
type RateLimiter struct {
	rate     int
	interval time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh    chan struct{}
	closeOnce sync.Once
}

type clientLimiter struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewRateLimiter creates a limiter and starts its idle-client cleanup loop.
func NewRateLimiter(n int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		rate:     n,
		interval: interval,
		clients:  make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether client may make a request now and consumes a token if so.
func (rl *RateLimiter) Allow(client string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[client]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(rl.interval/time.Duration(rl.rate)), rl.rate),
		}
		rl.clients[client] = cl
	}
	cl.last = now
	return cl.limiter.AllowN(now, 1)
}

// Close stops the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		close(rl.stopCh)
	})
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(max(rl.interval, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for client, cl := range rl.clients {
				// A limiter idle for a full interval is full again; dropping it is equivalent.
				if now.Sub(cl.last) > rl.interval {
					delete(rl.clients, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// SecurityConfig configures the SecurityMiddleware
type SecurityConfig struct {
	// RateLimit is the number of requests per minute per client IP; 0 disables limiting
	RateLimit int

	// MaxBodySize caps request bodies in bytes; 0 means MaxBodyBytes
	MaxBodySize int64
}

// SecurityMiddleware applies per-IP rate limiting, a body size cap and
// conservative response headers in front of the API.
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	limiter *RateLimiter
}

// NewSecurityMiddleware wraps next. Call Close to stop the rate limiter.
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = MaxBodyBytes
	}
	sm := &SecurityMiddleware{
		next:   next,
		logger: logger,
		config: config,
	}
	if config.RateLimit > 0 {
		sm.limiter = NewRateLimiter(config.RateLimit, time.Minute)
	}
	return sm
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")

	if sm.limiter != nil {
		ip := clientIP(r)
		if !sm.limiter.Allow(ip) {
			sm.logger.Warn("Rate limit exceeded", "client_ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
	}

	if r.ContentLength > sm.config.MaxBodySize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large", Field: "body"})
		return
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, sm.config.MaxBodySize)
	}
	sm.next.ServeHTTP(w, r)
}

// Close releases the rate limiter.
func (sm *SecurityMiddleware) Close() {
	if sm.limiter != nil {
		sm.limiter.Close()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
