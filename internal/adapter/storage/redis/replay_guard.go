package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReplayGuard implements ports.CallbackReplayGuard. Fingerprints are stored
// only once a callback was fully processed, so a failed delivery can be retried.
type ReplayGuard struct {
	client goredis.UniversalClient
	prefix string
}

func NewReplayGuard(client goredis.UniversalClient) *ReplayGuard {
	return &ReplayGuard{client: client, prefix: "callback:"}
}

func (g *ReplayGuard) key(provider, fingerprint string) string {
	return g.prefix + provider + ":" + fingerprint
}

// Seen reports whether the exact delivery was already processed.
func (g *ReplayGuard) Seen(ctx context.Context, provider, fingerprint string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(provider, fingerprint)).Result()
	if err != nil {
		return false, fmt.Errorf("redis replay check: %w", err)
	}
	return n > 0, nil
}

// Remember records a processed delivery. An existing entry keeps its TTL.
func (g *ReplayGuard) Remember(ctx context.Context, provider, fingerprint string, ttl time.Duration) error {
	err := g.client.SetArgs(ctx, g.key(provider, fingerprint), time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("redis replay remember: %w", err)
	}
	return nil
}
