package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry hands out one token-bucket limiter per client IP.
type Registry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

func New(r rate.Limit, burst int) *Registry {
	return &Registry{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    burst,
	}
}

func (g *Registry) Visitor(ip string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, exists := g.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(g.rate, g.burst)
		g.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (g *Registry) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		g.mu.Lock()
		for ip, v := range g.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(g.visitors, ip)
			}
		}
		g.mu.Unlock()
	}
}

func (g *Registry) Reset() {
	g.mu.Lock()
	g.visitors = make(map[string]*visitor)
	g.mu.Unlock()
}
