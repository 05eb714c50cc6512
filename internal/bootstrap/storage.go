package bootstrap

import (
	"context"
	"log/slog"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/adapters/s3blob"
	"github.com/workvortex/vortex-api/internal/service"
)

// BuildMedia wires the S3 blob store used for profile images, résumés and logos.
// Uploads are rejected at runtime when storage is not configured.
func BuildMedia(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) service.ResolverMedia {
	media := service.ResolverMedia{
		Buckets: service.MediaBuckets{
			ProfileImages: cfg.Buckets.ProfileImages,
			Resumes:       cfg.Buckets.Resumes,
			Logos:         cfg.Buckets.Logos,
		},
	}
	if !cfg.IsEnabled() {
		if logger != nil {
			logger.InfoContext(ctx, "media storage not configured; uploads disabled")
		}
		return media
	}

	store, err := s3blob.New(ctx, s3blob.Config{
		Region:        cfg.Region,
		Endpoint:      cfg.Endpoint,
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		UsePathStyle:  cfg.UsePathStyle,
		PublicBaseURL: cfg.PublicBaseURL,
		SignedURLTTL:  cfg.SignedURLTTL,
	})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to initialise media storage; uploads disabled", "error", err)
		}
		return media
	}
	media.Blobs = store
	return media
}
