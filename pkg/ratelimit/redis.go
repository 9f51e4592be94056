package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// slidingWindow trims the sorted set to the window, then adds the request
// only when the remaining count is below the limit.
// Returns {allowed, count, oldest score in ms}.
var slidingWindow = redis.NewScript(`
local key    = KEYS[1]
local now    = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit  = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, member)
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local first = now
if oldest[2] then
  first = tonumber(oldest[2])
end
return {allowed, count, first}
`)

// Redis is a sliding-window limiter shared by every instance using the
// same Redis database.
type Redis struct {
	client redis.Scripter
	opts   *options
	cfg    Config
}

// NewRedis creates a Redis-backed limiter.
func NewRedis(client redis.Scripter, cfg Config, opts ...Option) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o, cfg: cfg}, nil
}

// Allow runs the window script atomically for key.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	now := r.opts.now()
	nowMs := now.UnixMilli()
	member := strconv.FormatInt(now.UnixNano(), 10)

	raw, err := slidingWindow.Run(ctx, r.client,
		[]string{r.key(key)},
		nowMs, r.cfg.Window.Milliseconds(), r.cfg.Limit, member,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: running window script: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("ratelimit: unexpected script reply of %d values", len(raw))
	}

	res := Result{
		Limit:   r.cfg.Limit,
		Allowed: raw[0] == 1,
		ResetAt: time.UnixMilli(raw[2]).Add(r.cfg.Window),
	}
	if res.Allowed {
		res.Remaining = max(r.cfg.Limit-int(raw[1]), 0)
	} else {
		res.RetryAfter = retryAfter(res.ResetAt.Sub(now))
	}
	return res, nil
}

func (r *Redis) key(key string) string {
	return r.opts.prefix + ":" + key
}

var _ Limiter = (*Redis)(nil)
