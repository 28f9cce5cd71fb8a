package s3thumbnail

import (
	"context"

	"go.uber.org/zap"
)

type enumeratorState int

const (
	enumeratorIdle enumeratorState = iota
	enumeratorPaging
	enumeratorDone
)

// Enumerator pages through a bucket listing in backend order. Use it like a
// scanner:
//
//	for e.Next(ctx) {
//		page := e.Page()
//	}
//	if err := e.Err(); err != nil {
//	}
type Enumerator struct {
	storage  Storage
	logger   *Logger
	bucket   string
	pageSize int
	run      *RunContext

	state enumeratorState
	page  *ObjectPage
	pages int
	err   error
}

func NewEnumerator(storage Storage, logger *Logger, bucket string, pageSize int, run *RunContext) *Enumerator {
	return &Enumerator{
		storage:  storage,
		logger:   logger,
		bucket:   bucket,
		pageSize: pageSize,
		run:      run,
	}
}

// Next fetches the next page. It returns false once the listing is complete,
// the cap is reached, or a listing call failed.
func (e *Enumerator) Next(ctx context.Context) bool {
	if e.state == enumeratorDone {
		return false
	}
	if e.run.Exhausted() {
		e.logger.Info("Examination cap reached", zap.Int("processed", e.run.Processed()))
		e.finish()
		return false
	}

	var token *string
	if e.state == enumeratorPaging {
		if !e.page.Truncated {
			e.finish()
			return false
		}
		if e.page.ContinuationToken == nil || *e.page.ContinuationToken == "" {
			e.logger.Warn("Truncated page without continuation token", zap.String("bucket", e.bucket))
			e.finish()
			return false
		}
		token = e.page.ContinuationToken
	}

	page, err := e.storage.ListObjects(ctx, e.bucket, e.pageSize, token)
	if err != nil {
		e.err = newErrorListFailed(err, e.bucket)
		e.finish()
		return false
	}

	e.state = enumeratorPaging
	e.page = page
	e.pages++
	return true
}

func (e *Enumerator) finish() {
	e.state = enumeratorDone
	e.page = nil
}

// Page is the page fetched by the last successful Next.
func (e *Enumerator) Page() *ObjectPage { return e.page }

// Pages is the number of listing calls that succeeded.
func (e *Enumerator) Pages() int { return e.pages }

func (e *Enumerator) Err() error { return e.err }
