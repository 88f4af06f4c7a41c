package state

import (
	"context"
	"strings"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/s3"
)

// Store saves and loads ledger documents.
type Store interface {
	// Save writes doc and returns its location.
	Save(ctx context.Context, doc *Document) (string, error)

	// Load reads the document at location. A missing document yields ErrNotFound.
	Load(ctx context.Context, location string) (*Document, error)
}

// IsRemote reports whether location names an object in S3 rather than a local path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, s3.Scheme+"://")
}

// Open returns the store for location: an S3Store for s3:// URIs, a FileStore
// rooted at location otherwise. s3cfg supplies object store credentials and
// may be nil.
func Open(location string, s3cfg *config.S3Config) (Store, error) {
	if IsRemote(location) {
		return NewS3StoreFromURI(location, s3cfg)
	}
	return NewFileStore(location), nil
}
