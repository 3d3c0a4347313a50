// Package aws provides AWS Secrets Manager storage for the phiguard
// hash-redaction salt, so a fleet of services derives identical pseudonyms
// for the same PHI value.
package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/mindwell-health/phiguard"
)

// secretsManagerClient covers the Secrets Manager operations used here
// (allows mocking).
type secretsManagerClient interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// SaltStore keeps the hash-redaction salt in AWS Secrets Manager.
type SaltStore struct {
	client secretsManagerClient
	region string
}

// NewSaltStore creates a SaltStore.
//
//	// default AWS configuration
//	store, err := aws.NewSaltStore(ctx, aws.Config{})
//
//	// specific region
//	store, err := aws.NewSaltStore(ctx, aws.Config{Region: "us-east-1"})
func NewSaltStore(ctx context.Context, cfg Config) (*SaltStore, error) {
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
			return nil, fmt.Errorf("%w: failed to load AWS config: %w", phiguard.ErrSecretStorageUnavailable, err)
		}
	}

	return &SaltStore{
		client: secretsmanager.NewFromConfig(awsConfig),
		region: awsConfig.Region,
	}, nil
}

// StoragePath returns the Secrets Manager secret name for an alias, e.g.
// alias "intake-api" maps to "phiguard/intake-api/salt".
func (s *SaltStore) StoragePath(alias string) string {
	return fmt.Sprintf(phiguard.AWSSaltPathTemplate, alias)
}

// StoreSalt writes a salt for the alias, updating the secret if it already
// exists. The salt must be exactly phiguard.SaltLength bytes.
func (s *SaltStore) StoreSalt(ctx context.Context, alias string, salt []byte) error {
	if len(salt) != phiguard.SaltLength {
		return fmt.Errorf("%w: salt must be exactly %d bytes, got %d",
			phiguard.ErrInvalidConfiguration, phiguard.SaltLength, len(salt))
	}

	secretName := s.StoragePath(alias)
	encoded := base64.StdEncoding.EncodeToString(salt)

	exists, err := s.SaltExists(ctx, alias)
	if err != nil {
		return err
	}

	if exists {
		_, err = s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
			SecretId:     aws.String(secretName),
			SecretString: aws.String(encoded),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to update salt in Secrets Manager: %w",
				phiguard.ErrSecretStorageUnavailable, err)
		}
	} else {
		_, err = s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
			Name:         aws.String(secretName),
			Description:  aws.String(fmt.Sprintf("phiguard hash-redaction salt for %s", alias)),
			SecretString: aws.String(encoded),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create salt in Secrets Manager: %w",
				phiguard.ErrSecretStorageUnavailable, err)
		}
	}
	return nil
}

// GetSalt retrieves the salt for an alias. It returns an error if the salt
// is missing or has the wrong length.
func (s *SaltStore) GetSalt(ctx context.Context, alias string) ([]byte, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.StoragePath(alias)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get salt from Secrets Manager: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("%w: salt not found for alias: %s",
			phiguard.ErrUninitializedSalt, alias)
	}

	salt, err := base64.StdEncoding.DecodeString(*result.SecretString)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode salt: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	if len(salt) != phiguard.SaltLength {
		return nil, fmt.Errorf("%w: invalid salt length: expected %d bytes, got %d",
			phiguard.ErrSecretStorageUnavailable, phiguard.SaltLength, len(salt))
	}
	return salt, nil
}

// SaltExists reports whether a salt is stored for the alias. Errors are
// returned only for actual failures, not for "not found".
func (s *SaltStore) SaltExists(ctx context.Context, alias string) (bool, error) {
	_, err := s.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(s.StoragePath(alias)),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to check if salt exists: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	return true, nil
}

// Region returns the AWS region this store is configured for.
func (s *SaltStore) Region() string {
	return s.region
}
