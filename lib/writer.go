package s3thumbnail

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spaolacci/murmur3"
	"go.uber.org/zap"
)

type Writer struct {
	storage Storage
	logger  *Logger
	bucket  string
}

func NewWriter(storage Storage, logger *Logger, bucket string) *Writer {
	return &Writer{storage: storage, logger: logger, bucket: bucket}
}

// Write stores body in the output bucket under key, unchanged.
func (w *Writer) Write(ctx context.Context, key ObjectKey, body []byte) error {
	contentType := mimetype.Detect(body).String()
	err := w.storage.PutObject(ctx, w.bucket, key, body, contentType)
	if err != nil {
		return newErrorWriteFailed(err, key)
	}

	w.logger.ForKey(key).Info("Done",
		zap.Int("size", len(body)),
		zap.String("digest", Digest(body)))
	return nil
}

// Digest is the murmur3 hash of body in hex, reported with every written
// thumbnail.
func Digest(body []byte) string {
	return fmt.Sprintf("%016x", murmur3.Sum64(body))
}
