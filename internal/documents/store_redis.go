package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loanflow/pkg/platform/sentinel"
)

// RedisStore keeps proof blobs in Redis hashes keyed by the opaque reference.
// No TTL: proofs are audit material and live as long as their session.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed document store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, artifact ProofArtifact) (string, error) {
	ref := "doc_" + sessionID + "_" + uuid.NewString()
	err := s.client.HSet(ctx, key(ref),
		"content_type", artifact.ContentType,
		"data", artifact.Data,
	).Err()
	if err != nil {
		return "", fmt.Errorf("store document: %w", sentinel.ErrUnavailable)
	}
	return ref, nil
}

func (s *RedisStore) Get(ctx context.Context, ref string) (ProofArtifact, error) {
	values, err := s.client.HGetAll(ctx, key(ref)).Result()
	if err != nil {
		return ProofArtifact{}, fmt.Errorf("fetch document: %w", sentinel.ErrUnavailable)
	}
	// HGetAll answers a missing key with an empty map, not redis.Nil.
	if len(values) == 0 {
		return ProofArtifact{}, fmt.Errorf("document %s: %w", ref, sentinel.ErrNotFound)
	}
	return ProofArtifact{
		ContentType: values["content_type"],
		Data:        []byte(values["data"]),
	}, nil
}

func key(ref string) string {
	return "loanflow:proof:" + ref
}
