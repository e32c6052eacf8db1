package middleware

import (
	"context"
	"emi-calculator/internal/config"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type limiterStore interface {
	allow(ctx context.Context, ip string) bool
}

type RateLimiterMiddleware struct {
	store  limiterStore
	cfg    config.RateLimitConfig
	logger *slog.Logger
	window time.Duration
}

// NewRateLimiterMiddleware picks the redis store when configured and a client
// is available, and falls back to in-process token buckets otherwise.
func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	logger = logger.With("component", "RateLimiter")
	rl := &RateLimiterMiddleware{
		cfg:    cfg,
		logger: logger,
		window: 1 * time.Second,
	}

	if !cfg.Enabled {
		logger.Info("Rate limiting is disabled via configuration.")
		return rl
	}

	switch {
	case cfg.Store == StoreRedis && redisClient != nil:
		rl.store = &redisStore{client: redisClient, limit: int64(cfg.RPS), window: rl.window, logger: logger}
	case cfg.Store == StoreRedis:
		logger.Warn("Redis rate limit store requested but no Redis client provided; using memory store.")
		rl.store = newMemoryStore(cfg)
	default:
		rl.store = newMemoryStore(cfg)
	}
	logger.Info("Rate limiter middleware configured", "store", cfg.Store, "rps", cfg.RPS, "burst", cfg.Burst)
	return rl
}

func (rl *RateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.store != nil
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		ip := strings.TrimSpace(ips[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return ip
	}
	return r.RemoteAddr
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		if !rl.store.allow(r.Context(), ip) {
			rl.logger.Warn("Rate limit exceeded", "ip", ip, "limit", rl.cfg.RPS)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

type memoryStore struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func newMemoryStore(cfg config.RateLimitConfig) *memoryStore {
	s := &memoryStore{rps: rate.Limit(cfg.RPS), burst: cfg.Burst}
	go s.cleanupLimiters(10 * time.Minute)
	return s
}

func (s *memoryStore) getLimiter(ip string) *rate.Limiter {
	limiter, _ := s.limiters.LoadOrStore(ip, rate.NewLimiter(s.rps, s.burst))
	return limiter.(*rate.Limiter)
}

func (s *memoryStore) allow(_ context.Context, ip string) bool {
	return s.getLimiter(ip).Allow()
}

func (s *memoryStore) cleanupLimiters(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		s.prune(time.Now())
	}
}

// prune drops limiters whose bucket has refilled completely.
func (s *memoryStore) prune(now time.Time) {
	s.limiters.Range(func(key, value interface{}) bool {
		limiter := value.(*rate.Limiter)
		if limiter.TokensAt(now) >= float64(s.burst) {
			s.limiters.Delete(key)
		}
		return true
	})
}

// redisStore is a fixed window counter shared by every instance. Redis errors
// let the request through.
type redisStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

func (s *redisStore) allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("emi:ratelimit:%s", ip)

	pipe := s.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Redis pipeline failed during rate limiting check", "error", err, "ip", ip, "key", key)
		return true
	}

	count, err := incrCmd.Result()
	if err != nil {
		s.logger.Error("Failed to get INCR result after pipeline exec", "error", err, "ip", ip, "key", key)
		return true
	}

	ttl, err := ttlCmd.Result()
	if err != nil {
		s.logger.Error("Failed to get TTL result after pipeline exec", "error", err, "ip", ip, "key", key)
	}
	if ttl < 0 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.Error("Failed to set Redis EXPIRE for rate limit key", "error", err, "ip", ip, "key", key)
		}
	}

	return count <= s.limit
}
