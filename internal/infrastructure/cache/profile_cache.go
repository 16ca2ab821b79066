package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/api/metrics"
	"github.com/tasktrack/webapp/internal/core/domain"
)

// ProfileCache memoises profile fetches per access token.
// Key format: profile:<sha256(access token)> — the raw token never
// appears in Redis. Entries expire after the configured TTL, well inside
// a token's lifetime; a stale entry costs at most one extra upstream 401.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewProfileCache wraps the given Redis client. A cache miss is also
// reported for any Redis error: the profile endpoint remains the source
// of truth and the cache is never load-bearing.
func NewProfileCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ProfileCache{client: client, ttl: ttl, log: log}
}

func (p *ProfileCache) Get(ctx context.Context, accessToken string) (*domain.User, bool) {
	raw, err := p.client.Get(ctx, p.key(accessToken)).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.log.Warn().Err(err).Msg("profile cache read failed")
		}
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &user, true
}

func (p *ProfileCache) Set(ctx context.Context, accessToken string, user *domain.User) {
	if accessToken == "" || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := p.client.Set(ctx, p.key(accessToken), raw, p.ttl).Err(); err != nil {
		p.log.Warn().Err(err).Msg("profile cache write failed")
	}
}

func (p *ProfileCache) Invalidate(ctx context.Context, accessToken string) {
	if err := p.client.Del(ctx, p.key(accessToken)).Err(); err != nil {
		p.log.Warn().Err(err).Msg("profile cache invalidate failed")
	}
}

func (p *ProfileCache) key(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "profile:" + hex.EncodeToString(sum[:])
}
