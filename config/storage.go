package config

import (
	"strings"
	"time"
)

// StorageConfig points at the S3-compatible store that holds uploaded media.
// Leaving Region empty disables uploads.
type StorageConfig struct {
	Region        string `env:"REGION"`
	Endpoint      string `env:"ENDPOINT"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	UsePathStyle  bool   `env:"USE_PATH_STYLE"  envDefault:"false"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	// SignedURLTTL is the lifetime of the presigned URLs returned when PublicBaseURL is empty.
	SignedURLTTL time.Duration `env:"SIGNED_URL_TTL" envDefault:"168h"`

	Buckets BucketConfig `envPrefix:"BUCKET_"`
}

// BucketConfig names the bucket per media kind.
type BucketConfig struct {
	ProfileImages string `env:"PROFILE_IMAGES" envDefault:"profile-images"`
	Resumes       string `env:"RESUMES"        envDefault:"resumes"`
	Logos         string `env:"LOGOS"          envDefault:"logos"`
}

// Sanitize trims values and drops a trailing slash from PublicBaseURL.
func (c *StorageConfig) Sanitize() {
	c.Region = strings.TrimSpace(c.Region)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.PublicBaseURL), "/")
	c.Buckets.ProfileImages = strings.TrimSpace(c.Buckets.ProfileImages)
	c.Buckets.Resumes = strings.TrimSpace(c.Buckets.Resumes)
	c.Buckets.Logos = strings.TrimSpace(c.Buckets.Logos)
}

// IsEnabled reports whether uploads can be stored.
func (c *StorageConfig) IsEnabled() bool {
	return c.Region != ""
}
