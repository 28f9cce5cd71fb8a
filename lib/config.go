package s3thumbnail

import (
	"fmt"
	"math"
)

const (
	BackendS3    = "s3"
	BackendMinio = "minio"

	OutputBucketSuffix = "-thumbnail"

	DefaultWidth       = 200
	DefaultHeight      = 200
	DefaultJPEGQuality = 90
	DefaultRegion      = "us-east-1"
)

type Config struct {
	Profile       string `yaml:"profile"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	Backend       string `yaml:"backend"`
	UseSSL        bool   `yaml:"use_ssl"`
	InputBucket   string `yaml:"input_bucket"`
	OutputBucket  string `yaml:"output_bucket"`
	MaxItems      int    `yaml:"max_items"` // 0 means no limit
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	JPEGQuality   int    `yaml:"jpeg_quality"`
	Logging       string `yaml:"logging"`
	LogOutputPath string `yaml:"log_output_path"`
}

// SetDefaults fills the zero fields. OutputBucket is derived from
// InputBucket, so call it after the input bucket is known.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendS3
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.OutputBucket == "" && c.InputBucket != "" {
		c.OutputBucket = c.InputBucket + OutputBucketSuffix
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.Logging == "" {
		c.Logging = "production"
	}
	if c.LogOutputPath == "" {
		c.LogOutputPath = "stderr"
	}
}

func (c *Config) Validate() error {
	if c.InputBucket == "" {
		return newErrorInvalidConfig("input bucket is required")
	}
	if c.OutputBucket == "" {
		return newErrorInvalidConfig("output bucket is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return newErrorInvalidConfig(fmt.Sprintf("thumbnail size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.MaxItems < 0 {
		return newErrorInvalidConfig(fmt.Sprintf("max items must not be negative, got %d", c.MaxItems))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return newErrorInvalidConfig(fmt.Sprintf("jpeg quality must be in 1..100, got %d", c.JPEGQuality))
	}
	switch c.Backend {
	case BackendS3:
	case BackendMinio:
		if c.Endpoint == "" {
			return newErrorInvalidConfig("minio backend needs an endpoint")
		}
	default:
		return newErrorInvalidConfig("unknown backend " + c.Backend)
	}
	switch c.Logging {
	case "production", "development":
	default:
		return newErrorInvalidConfig("unknown logging mode " + c.Logging)
	}
	return nil
}

// Cap is the examination cap for one run.
func (c *Config) Cap() int {
	if c.MaxItems == 0 {
		return math.MaxInt
	}
	return c.MaxItems
}

func (c *Config) ThumbnailSpec() ThumbnailSpec {
	return ThumbnailSpec{Width: c.Width, Height: c.Height}
}
