package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type RevocationStore interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	// Consume revokes id and reports whether this call was the one that did.
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
	// IsRevoked reports whether any of ids is revoked.
	IsRevoked(ctx context.Context, ids ...string) (bool, error)
}

type redisRevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore keeps revoked token ids in redis until the token would
// have expired anyway.
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	return &redisRevocationStore{rdb: rdb}
}

func revokedKey(id string) string {
	return fmt.Sprintf("auth:revoked:%s", id)
}

func (s *redisRevocationStore) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(id), "1", ttl).Err()
}

func (s *redisRevocationStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	return s.rdb.SetNX(ctx, revokedKey(id), "1", ttl).Result()
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = revokedKey(id)
	}
	n, err := s.rdb.Exists(ctx, keys...).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
