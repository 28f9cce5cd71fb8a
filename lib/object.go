package s3thumbnail

import "context"

// ListPageSize is the number of keys requested per listing call.
const ListPageSize = 10

// ObjectKey is the key of an object, shared by source and destination buckets.
type ObjectKey = string

// ObjectSummary is one entry of a listing page.
type ObjectSummary struct {
	Key  ObjectKey
	Size int64
}

// ObjectPage is the result of one listing call. Items are kept in the order
// the backend returned them.
type ObjectPage struct {
	Items             []ObjectSummary
	Truncated         bool
	ContinuationToken *string
}

// Storage is the object storage the pipeline runs against.
type Storage interface {
	// LocateBucket returns the bucket location, or an error if the bucket
	// does not exist or is not reachable.
	LocateBucket(ctx context.Context, bucket string) (string, error)
	// ListObjects returns one page of at most pageSize entries. A nil token
	// requests the first page.
	ListObjects(ctx context.Context, bucket string, pageSize int, token *string) (*ObjectPage, error)
	GetObject(ctx context.Context, bucket string, key ObjectKey) ([]byte, error)
	PutObject(ctx context.Context, bucket string, key ObjectKey, body []byte, contentType string) error
}

// NewStorage builds the storage backend named by config.Backend.
func NewStorage(config *Config, logger *Logger) (Storage, error) {
	switch config.Backend {
	case BackendMinio:
		return NewMinioStorage(config, logger)
	case BackendS3, "":
		return NewS3Storage(config, logger)
	}
	return nil, newErrorInvalidConfig("unknown backend " + config.Backend)
}
