// Package s3archive exports audit events to S3 as JSON batches for
// long-term compliance retention. Events carry categories and locations,
// never PHI values, so the archive bucket needs no special handling beyond
// normal access control.
package s3archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mindwell-health/phiguard"
)

// s3Putter covers the S3 operation used here (allows mocking).
type s3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds settings for an Archiver.
type Config struct {
	// Bucket is the destination bucket (required).
	Bucket string

	// Prefix is prepended to every object key, e.g. "audit". Optional.
	Prefix string

	// Region is the AWS region. If empty, the AWS SDK's default resolution
	// applies (AWS_REGION, config file).
	Region string

	// AWSConfig is an optional pre-configured AWS config. If provided,
	// Region is ignored.
	AWSConfig *aws.Config
}

// Archiver writes batches of audit events to S3.
type Archiver struct {
	client s3Putter
	bucket string
	prefix string
}

// New creates an Archiver.
func New(ctx context.Context, cfg Config) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: archive bucket is required", phiguard.ErrInvalidConfiguration)
	}

	var awsConfig aws.Config
	var err error
	if cfg.AWSConfig != nil {
		awsConfig = *cfg.AWSConfig
	} else {
		opts := []func(*config.LoadOptions) error{}
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}
		awsConfig, err = config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
	}

	return &Archiver{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Export uploads events as one JSON object and returns the object key.
// Keys are date-partitioned so lifecycle rules and Athena-style queries can
// work per day: {prefix/}YYYY/MM/DD/{uuid}.json
func (a *Archiver) Export(ctx context.Context, events []phiguard.AuditEvent) (string, error) {
	if len(events) == 0 {
		return "", nil
	}

	body, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to encode audit batch: %w", err)
	}

	key := a.objectKey(time.Now().UTC())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audit batch to s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}

func (a *Archiver) objectKey(now time.Time) string {
	key := fmt.Sprintf("%s/%s.json", now.Format("2006/01/02"), uuid.New().String())
	if a.prefix != "" {
		key = a.prefix + "/" + key
	}
	return key
}
