// Package documents stores uploaded income-proof artifacts as opaque blobs.
// The engine validates shape (non-empty, supported type) and otherwise treats
// content as a collaborator concern.
package documents

import (
	"context"

	dErrors "loanflow/pkg/domain-errors"
)

// ProofArtifact is an uploaded income proof.
type ProofArtifact struct {
	ContentType string
	Data        []byte
}

// supportedTypes is the accepted upload format whitelist.
var supportedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Validate rejects empty or unsupported artifacts before anything touches the
// state machine.
func (a ProofArtifact) Validate() error {
	if len(a.Data) == 0 {
		return dErrors.New(dErrors.CodeValidation, "proof artifact is empty")
	}
	if !supportedTypes[a.ContentType] {
		return dErrors.New(dErrors.CodeValidation, "unsupported proof format: "+a.ContentType)
	}
	return nil
}

// Store persists proof artifacts and returns an opaque reference.
type Store interface {
	Put(ctx context.Context, sessionID string, artifact ProofArtifact) (ref string, err error)
	Get(ctx context.Context, ref string) (ProofArtifact, error)
}
