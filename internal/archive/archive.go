package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/AdamBeresnev/cue-stats/internal/chart"
	"github.com/AdamBeresnev/cue-stats/internal/config"
	"github.com/AdamBeresnev/cue-stats/internal/export"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

var ErrNoBucket = errors.New("archive bucket is not configured")

// Uploader is the subset of the S3 client used to store artifacts
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Exporter produces the artifacts that make up a snapshot
type Exporter interface {
	ExportMatchesCSV(ctx context.Context) ([]byte, error)
	ExportStatsCSV(ctx context.Context) ([]byte, error)
	RenderStatsChart(ctx context.Context) ([]byte, error)
}

type Archiver struct {
	client Uploader
	bucket string
	prefix string
	now    func() time.Time
}

func New(client Uploader, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// NewS3Client builds a client for the configured endpoint. Static credentials
// are used when given, otherwise the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg config.ArchiveConfig) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// SnapshotPrefix is the folder a snapshot is written to, e.g.
// "snapshots/spring-league/20240501T120000Z".
func (a *Archiver) SnapshotPrefix(label string) string {
	name := slug.Make(label)
	if name == "" {
		name = "default"
	}
	return path.Join(a.prefix, name, a.now().UTC().Format("20060102T150405Z"))
}

// Snapshot exports the matches CSV, the stats CSV and the chart and uploads them
// under a fresh prefix. It returns the uploaded object keys.
func (a *Archiver) Snapshot(ctx context.Context, exp Exporter, label string) ([]string, error) {
	matchesCSV, err := exp.ExportMatchesCSV(ctx)
	if err != nil {
		return nil, err
	}
	statsCSV, err := exp.ExportStatsCSV(ctx)
	if err != nil {
		return nil, err
	}
	chartPNG, err := exp.RenderStatsChart(ctx)
	if err != nil {
		return nil, err
	}

	prefix := a.SnapshotPrefix(label)
	artifacts := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{export.MatchesFilename, export.ContentType, matchesCSV},
		{export.StatsFilename, export.ContentType, statsCSV},
		{"stats.png", chart.ContentType, chartPNG},
	}

	keys := make([]string, 0, len(artifacts))
	for _, art := range artifacts {
		key := path.Join(prefix, art.name)
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(art.body),
			ContentType: aws.String(art.contentType),
		})
		if err != nil {
			return keys, fmt.Errorf("failed to upload %s: %w", key, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
