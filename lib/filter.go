package s3thumbnail

import (
	"strings"

	"go.uber.org/zap"
)

var thumbnailExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

type Filter struct {
	logger *Logger
}

func NewFilter(logger *Logger) *Filter {
	return &Filter{logger: logger}
}

// Accept counts item as examined, then reports whether its key has an image
// extension.
func (f *Filter) Accept(run *RunContext, item ObjectSummary) bool {
	run.Examine()

	if !thumbnailExtensions[Extension(item.Key)] {
		f.logger.Debug("Skip", zap.String("key", item.Key))
		return false
	}
	return true
}

// Extension returns the lowercased text after the last "." of key, or "" if
// key has no ".".
func Extension(key ObjectKey) string {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(key[i+1:])
}
