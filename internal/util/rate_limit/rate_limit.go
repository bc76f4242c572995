package rate_limit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"creativeflow/internal/cache"

	"github.com/valkey-io/valkey-go"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-key token bucket. With a valkey client the bucket is
// shared between instances, otherwise it lives in process memory.
type RateLimiter struct {
	client    valkey.Client
	keyPrefix string

	mu     sync.Mutex
	locals map[string]*rate.Limiter
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const defaultTimeout = 5 * time.Second

// refill rate is expressed in tokens per minute
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local per_minute = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * per_minute / 60000)
if tokens_to_add > 0 then
    tokens = math.min(burst_limit, tokens + tokens_to_add)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 60000 / per_minute)
end

return {allowed, tokens, time_to_full}
`

func NewRateLimiter(keyPrefix string) *RateLimiter {
	return newRateLimiter(cache.GetCache(), keyPrefix)
}

// NewLocalRateLimiter never touches valkey.
func NewLocalRateLimiter(keyPrefix string) *RateLimiter {
	return newRateLimiter(nil, keyPrefix)
}

func newRateLimiter(client valkey.Client, keyPrefix string) *RateLimiter {
	return &RateLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		locals:    map[string]*rate.Limiter{},
	}
}

// CheckRateLimit consumes one token from the bucket of key. perMinute is the
// refill rate and burstLimit the bucket size; burstLimit defaults to perMinute.
func (r *RateLimiter) CheckRateLimit(key string, perMinute, burstLimit int) (*RateLimitResult, error) {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burstLimit <= 0 {
		burstLimit = perMinute
	}

	if r.client == nil {
		return r.checkLocal(key, perMinute, burstLimit), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	fullKey := r.keyPrefix + key
	now := time.Now().UnixMilli()
	ttl := int64(600)

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(fullKey).
		Arg(fmt.Sprintf("%d", now)).
		Arg(fmt.Sprintf("%d", perMinute)).
		Arg(fmt.Sprintf("%d", burstLimit)).
		Arg(fmt.Sprintf("%d", ttl)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     time.Now().Add(time.Duration(values[2]) * time.Millisecond),
		RetryAfterSec: retryAfter(allowed, perMinute),
	}, nil
}

func (r *RateLimiter) ResetRateLimit(key string) error {
	if r.client == nil {
		r.mu.Lock()
		delete(r.locals, key)
		r.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(r.keyPrefix+key).Build()).Error()
}

func (r *RateLimiter) checkLocal(key string, perMinute, burstLimit int) *RateLimitResult {
	r.mu.Lock()
	limiter, ok := r.locals[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burstLimit)
		r.locals[key] = limiter
	}
	r.mu.Unlock()

	now := time.Now()
	allowed := limiter.AllowN(now, 1)
	tokens := limiter.TokensAt(now)

	missing := float64(burstLimit) - tokens
	timeToFull := time.Duration(math.Ceil(missing*60000/float64(perMinute))) * time.Millisecond

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     max(0, int(math.Floor(tokens))),
		ResetTime:     now.Add(timeToFull),
		RetryAfterSec: retryAfter(allowed, perMinute),
	}
}

func retryAfter(allowed bool, perMinute int) int {
	if allowed {
		return 0
	}

	return max(1, int(math.Ceil(60.0/float64(perMinute))))
}
