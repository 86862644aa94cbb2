package faqcatalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// maxObjectSize bounds how much of a catalog object is read.
const maxObjectSize = 8 << 20

// ObjectConfig locates a catalog object in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
	Region    string
}

// ObjectSource reads the catalog from an S3-compatible bucket (R2, MinIO, S3).
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
	format Format
	logger *slog.Logger
}

// NewObjectSource constructs the source. Only client construction can fail;
// read failures surface later as an empty catalog.
func NewObjectSource(cfg ObjectConfig, logger *slog.Logger) (*ObjectSource, error) {
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		format: FormatFor(cfg.Key),
		logger: logger.With("component", "faqcatalog.object"),
	}, nil
}

// Entries implements faq.CatalogSource.
func (s *ObjectSource) Entries(ctx context.Context) []faq.Entry {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Warn("faq catalog object unreadable", "bucket", s.bucket, "key", s.key, "error", err)
		return nil
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxObjectSize))
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			s.logger.Warn("faq catalog not found", "bucket", s.bucket, "key", s.key)
		} else {
			s.logger.Warn("faq catalog object unreadable", "bucket", s.bucket, "key", s.key, "error", err)
		}
		return nil
	}
	entries, err := Decode(data, s.format)
	if err != nil {
		s.logger.Warn("invalid faq catalog", "bucket", s.bucket, "key", s.key, "error", err)
		return nil
	}
	return sanitize(entries, s.logger)
}

var _ faq.CatalogSource = (*ObjectSource)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
