package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCodeTTL  = 5 * time.Minute
	ResetCodePrefix = "email:code:reset"
)

var ErrCodeMismatch = errors.New("code missing or mismatched")

// consumeScript deletes the key only when it holds the expected code, so a
// code can be used once.
var consumeScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val or val ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

// CodeRepository stores one-time password reset codes keyed by email.
type CodeRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func (r *CodeRepository) key(email string) string {
	return fmt.Sprintf("%s:%s", ResetCodePrefix, email)
}

func (r *CodeRepository) ttl() time.Duration {
	if r.TTL <= 0 {
		return DefaultCodeTTL
	}
	return r.TTL
}

// Save stores code for email, replacing any earlier one.
func (r *CodeRepository) Save(ctx context.Context, email, code string) error {
	if err := r.Client.Set(ctx, r.key(email), code, r.ttl()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Consume checks code against the stored one and deletes it on a match.
func (r *CodeRepository) Consume(ctx context.Context, email, code string) error {
	ok, err := consumeScript.Run(ctx, r.Client, []string{r.key(email)}, code).Int()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if ok != 1 {
		return ErrCodeMismatch
	}
	return nil
}

func (r *CodeRepository) CodeTTL() time.Duration { return r.ttl() }
