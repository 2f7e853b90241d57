package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of *s3.Client used by the S3 loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for snapshot objects stored in AWS S3.
type s3Loader struct {
	client ObjectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based snapshot loader using the default AWS
// credential chain.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-snapshot-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 loader initialised")

	return NewS3LoaderWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3LoaderWithClient creates an S3 loader around an existing client.
func NewS3LoaderWithClient(client ObjectGetter, bucket string, logger zerolog.Logger) Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads the snapshot object at key. The key is the full S3 key, prefix
// included.
func (l *s3Loader) Load(ctx context.Context, key string) ([]byte, error) {
	log := l.logger.With().Str("bucket", l.bucket).Str("key", key).Logger()
	log.Debug().Msg("loading snapshot from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get snapshot object")
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	data, err := readAll(ctx, result.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read snapshot object")
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", l.bucket, key, err)
	}

	log.Debug().Int("bytes", len(data)).Msg("snapshot loaded from S3")
	return data, nil
}

// fallbackLoader tries S3 first, then the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	s3Enabled  bool
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to
// local file system. If s3Loader is nil only the file loader is used.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load prepends the S3 prefix for the S3 attempt and uses filePath as-is for the
// local attempt. When both fail the returned error carries both causes.
func (l *fallbackLoader) Load(ctx context.Context, filePath string) ([]byte, error) {
	if !l.s3Enabled || l.s3Loader == nil {
		return l.fileLoader.Load(ctx, filePath)
	}

	s3Key := l.s3Prefix + filePath
	data, s3Err := l.s3Loader.Load(ctx, s3Key)
	if s3Err == nil {
		return data, nil
	}

	l.logger.Warn().
		Err(s3Err).
		Str("s3_key", s3Key).
		Msg("snapshot not available from S3, reading local file")

	data, err := l.fileLoader.Load(ctx, filePath)
	if err != nil {
		return nil, errors.Join(s3Err, err)
	}
	return data, nil
}
