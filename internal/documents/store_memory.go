package documents

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"loanflow/pkg/platform/sentinel"
)

// InMemoryStore keeps proof blobs in a map for tests and dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]ProofArtifact
}

// NewInMemoryStore constructs an empty in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]ProofArtifact)}
}

func (s *InMemoryStore) Put(_ context.Context, sessionID string, artifact ProofArtifact) (string, error) {
	ref := "doc_" + sessionID + "_" + uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := ProofArtifact{ContentType: artifact.ContentType, Data: append([]byte(nil), artifact.Data...)}
	s.blobs[ref] = stored
	return ref, nil
}

func (s *InMemoryStore) Get(_ context.Context, ref string) (ProofArtifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if blob, ok := s.blobs[ref]; ok {
		return ProofArtifact{ContentType: blob.ContentType, Data: append([]byte(nil), blob.Data...)}, nil
	}
	return ProofArtifact{}, fmt.Errorf("document %s: %w", ref, sentinel.ErrNotFound)
}
