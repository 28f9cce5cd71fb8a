package s3thumbnail

import (
	"context"

	"go.uber.org/zap"
)

type BucketValidator struct {
	storage Storage
	logger  *Logger
}

func NewBucketValidator(storage Storage, logger *Logger) *BucketValidator {
	return &BucketValidator{storage: storage, logger: logger}
}

// Exists returns the bucket location, or a BucketNotFound error.
func (v *BucketValidator) Exists(ctx context.Context, bucket string) (string, error) {
	location, err := v.storage.LocateBucket(ctx, bucket)
	if err != nil {
		return "", newErrorBucketNotFound(err, bucket)
	}
	v.logger.Info("Bucket found", zap.String("bucket", bucket), zap.String("location", location))
	return location, nil
}

// Validate checks the input bucket, then the output bucket. The first
// failure stops the check.
func (v *BucketValidator) Validate(ctx context.Context, input, output string) error {
	if _, err := v.Exists(ctx, input); err != nil {
		return err
	}
	if _, err := v.Exists(ctx, output); err != nil {
		return err
	}
	return nil
}
