package s3thumbnail

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MinioStorage talks to S3-compatible services that are not AWS.
type MinioStorage struct {
	core   *minio.Core
	logger *Logger
}

func NewMinioStorage(config *Config, logger *Logger) (*MinioStorage, error) {
	return newMinioStorage(config.Endpoint, &minio.Options{
		Creds:  credentials.NewFileAWSCredentials("", config.Profile),
		Secure: config.UseSSL,
		Region: config.Region,
	}, logger)
}

func newMinioStorage(endpoint string, opts *minio.Options, logger *Logger) (*MinioStorage, error) {
	core, err := minio.NewCore(endpoint, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "minio client failed. endpoint = %s", endpoint)
	}
	return &MinioStorage{core: core, logger: logger}, nil
}

func (m *MinioStorage) LocateBucket(ctx context.Context, bucket string) (string, error) {
	m.logger.Debug("LocateBucket", zap.String("bucket", bucket))

	ok, err := m.core.BucketExists(ctx, bucket)
	if err != nil {
		return "", errors.Wrapf(err, "BucketExists failed. bucket = %s", bucket)
	}
	if !ok {
		return "", errors.Errorf("bucket does not exist. bucket = %s", bucket)
	}
	location, err := m.core.GetBucketLocation(ctx, bucket)
	if err != nil {
		return "", errors.Wrapf(err, "GetBucketLocation failed. bucket = %s", bucket)
	}
	return location, nil
}

func (m *MinioStorage) ListObjects(ctx context.Context, bucket string, pageSize int, token *string) (*ObjectPage, error) {
	m.logger.Debug("ListObjects", zap.String("bucket", bucket), zap.Stringp("token", token))

	var continuation string
	if token != nil {
		continuation = *token
	}
	result, err := m.core.ListObjectsV2(bucket, "", "", continuation, "", pageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "ListObjectsV2 failed. bucket = %s", bucket)
	}

	page := &ObjectPage{
		Items:     make([]ObjectSummary, 0, len(result.Contents)),
		Truncated: result.IsTruncated,
	}
	if result.NextContinuationToken != "" {
		next := result.NextContinuationToken
		page.ContinuationToken = &next
	}
	for _, obj := range result.Contents {
		page.Items = append(page.Items, ObjectSummary{Key: obj.Key, Size: obj.Size})
	}
	return page, nil
}

func (m *MinioStorage) GetObject(ctx context.Context, bucket string, key ObjectKey) ([]byte, error) {
	m.logger.Debug("GetObject", zap.String("key", key))

	reader, _, _, err := m.core.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "GetObject failed. key = %s", key)
	}
	defer reader.Close()

	body, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "GetObject failed. key = %s", key)
	}
	return body, nil
}

func (m *MinioStorage) PutObject(ctx context.Context, bucket string, key ObjectKey, body []byte, contentType string) error {
	m.logger.Debug("PutObject", zap.String("key", key), zap.Int("size", len(body)))

	_, err := m.core.Client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "PutObject failed. key = %s", key)
	}
	return nil
}

var _ Storage = (*MinioStorage)(nil)
