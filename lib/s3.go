package s3thumbnail

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type S3Storage struct {
	svc    s3iface.S3API
	logger *Logger
}

func NewS3Storage(config *Config, logger *Logger) (*S3Storage, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, errors.Wrap(err, "NewSession failed")
	}

	awsConfig := &aws.Config{
		Region:      aws.String(config.Region),
		Credentials: credentials.NewSharedCredentials("", config.Profile),
		Logger:      aws.Logger(logger),
		//LogLevel: aws.LogLevel(aws.LogDebugWithHTTPBody),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!config.UseSSL)
	}

	return NewS3StorageWithClient(s3.New(sess, awsConfig), logger), nil
}

func NewS3StorageWithClient(svc s3iface.S3API, logger *Logger) *S3Storage {
	return &S3Storage{svc: svc, logger: logger}
}

func (s *S3Storage) LocateBucket(ctx context.Context, bucket string) (string, error) {
	s.logger.Debug("LocateBucket", zap.String("bucket", bucket))

	out, cause := s.svc.GetBucketLocationWithContext(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if cause != nil {
		return "", errors.Wrapf(cause, "GetBucketLocation failed. bucket = %s", bucket)
	}
	return aws.StringValue(out.LocationConstraint), nil
}

func (s *S3Storage) ListObjects(ctx context.Context, bucket string, pageSize int, token *string) (*ObjectPage, error) {
	s.logger.Debug("ListObjects", zap.String("bucket", bucket), zap.Stringp("token", token))

	out, cause := s.svc.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:            aws.String(bucket),
		MaxKeys:           aws.Int64(int64(pageSize)),
		ContinuationToken: token,
	})
	if cause != nil {
		return nil, errors.Wrapf(cause, "ListObjectsV2 failed. bucket = %s", bucket)
	}

	page := &ObjectPage{
		Items:     make([]ObjectSummary, 0, len(out.Contents)),
		Truncated: aws.BoolValue(out.IsTruncated),
	}
	if out.NextContinuationToken != nil {
		page.ContinuationToken = aws.String(*out.NextContinuationToken)
	}
	for _, obj := range out.Contents {
		page.Items = append(page.Items, ObjectSummary{
			Key:  aws.StringValue(obj.Key),
			Size: aws.Int64Value(obj.Size),
		})
	}
	return page, nil
}

func (s *S3Storage) GetObject(ctx context.Context, bucket string, key ObjectKey) ([]byte, error) {
	s.logger.Debug("GetObject", zap.String("key", key))

	if key == "" {
		return nil, errors.New("Key shouldn't be empty")
	}

	obj, cause := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if cause != nil {
		return nil, errors.Wrapf(cause, "GetObject failed. key = %s", key)
	}
	defer obj.Body.Close()

	body, cause := ioutil.ReadAll(obj.Body)
	if cause != nil {
		return nil, errors.Wrapf(cause, "GetObject failed. key = %s", key)
	}

	s.logger.Debug("GetObject", zap.Int("size", len(body)))
	return body, nil
}

func (s *S3Storage) PutObject(ctx context.Context, bucket string, key ObjectKey, body []byte, contentType string) error {
	s.logger.Debug("PutObject", zap.String("key", key), zap.Int("size", len(body)))

	params := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		params.ContentType = aws.String(contentType)
	}
	_, cause := s.svc.PutObjectWithContext(ctx, params)
	if cause != nil {
		return errors.Wrapf(cause, "PutObject failed. key = %s", key)
	}
	return nil
}

var _ Storage = (*S3Storage)(nil)
