package s3thumbnail

import (
	"context"

	"go.uber.org/zap"
)

// Report summarizes one run.
type Report struct {
	Examined int
	Accepted int
	Written  int
	Failed   int
	Pages    int
}

// Pipeline generates thumbnails for a bucket, one item at a time, in
// listing order.
type Pipeline struct {
	storage     Storage
	logger      *Logger
	input       string
	output      string
	limit       int
	validator   *BucketValidator
	filter      *Filter
	transformer *Transformer
	writer      *Writer
}

func NewPipeline(config *Config, storage Storage, logger *Logger) (*Pipeline, error) {
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		storage:     storage,
		logger:      logger,
		input:       config.InputBucket,
		output:      config.OutputBucket,
		limit:       config.Cap(),
		validator:   NewBucketValidator(storage, logger),
		filter:      NewFilter(logger),
		transformer: NewTransformer(config.ThumbnailSpec(), config.JPEGQuality),
		writer:      NewWriter(storage, logger, config.OutputBucket),
	}, nil
}

// Run validates both buckets and processes the input listing. Only bucket
// validation and listing errors are returned; per-item failures are logged
// and counted in the report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	err := p.validator.Validate(ctx, p.input, p.output)
	if err != nil {
		p.logger.Error("Bucket check failed", zap.Error(err))
		return report, err
	}

	run := NewRunContext(p.limit)
	enumerator := NewEnumerator(p.storage, p.logger, p.input, ListPageSize, run)
	for enumerator.Next(ctx) {
		for _, item := range enumerator.Page().Items {
			if run.Exhausted() {
				break
			}
			if !p.filter.Accept(run, item) {
				continue
			}
			report.Accepted++

			err := p.processItem(ctx, item.Key)
			if err != nil {
				report.Failed++
				p.logger.ForKey(item.Key).Error("Item failed", zap.Error(err))
				continue
			}
			report.Written++
		}
	}
	report.Examined = run.Processed()
	report.Pages = enumerator.Pages()

	if err := enumerator.Err(); err != nil {
		p.logger.Error("Listing failed", zap.String("bucket", p.input), zap.Error(err))
		return report, err
	}

	p.logger.Info("Finished",
		zap.Int("examined", report.Examined),
		zap.Int("written", report.Written),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (p *Pipeline) processItem(ctx context.Context, key ObjectKey) error {
	body, err := p.storage.GetObject(ctx, p.input, key)
	if err != nil {
		return newErrorGetFailed(err, key)
	}

	thumb, err := p.transformer.Transform(key, body)
	if err != nil {
		return err
	}
	p.logger.ForKey(key).Debug("Resized",
		zap.String("format", thumb.Format.String()),
		zap.Int("width", thumb.Width),
		zap.Int("height", thumb.Height))

	return p.writer.Write(ctx, key, thumb.Body)
}
