package s3archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-health/phiguard"
)

// mockS3Client implements s3Putter for testing
type mockS3Client struct {
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	lastInput     *s3.PutObjectInput
	uploadedData  []byte
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putObjectFunc != nil {
		return m.putObjectFunc(ctx, params, optFns...)
	}

	m.lastInput = params
	if params.Body != nil {
		data, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		m.uploadedData = data
	}
	return &s3.PutObjectOutput{}, nil
}

func testArchiver(client s3Putter, prefix string) *Archiver {
	return &Archiver{client: client, bucket: "audit-archive", prefix: prefix}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket is required", func(t *testing.T) {
		_, err := New(ctx, Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, phiguard.ErrInvalidConfiguration)
	})

	t.Run("provided AWS config is used as-is", func(t *testing.T) {
		archiver, err := New(ctx, Config{Bucket: "audit-archive", AWSConfig: &aws.Config{Region: "us-east-1"}})
		require.NoError(t, err)
		assert.NotNil(t, archiver)
	})
}

func TestArchiverExport(t *testing.T) {
	ctx := context.Background()
	events := []phiguard.AuditEvent{
		{ID: "evt-1", Category: "SSN", Location: "patient.ssn", Line: 1},
		{ID: "evt-2", Category: "EMAIL", Location: "contact.email", Line: 3},
	}

	t.Run("uploads the batch as JSON and returns the key", func(t *testing.T) {
		client := &mockS3Client{}
		archiver := testArchiver(client, "")

		key, err := archiver.Export(ctx, events)
		require.NoError(t, err)
		assert.NotEmpty(t, key)

		require.NotNil(t, client.lastInput)
		assert.Equal(t, "audit-archive", *client.lastInput.Bucket)
		assert.Equal(t, key, *client.lastInput.Key)
		assert.Equal(t, "application/json", *client.lastInput.ContentType)

		var got []phiguard.AuditEvent
		require.NoError(t, json.Unmarshal(client.uploadedData, &got))
		assert.Equal(t, events, got)
	})

	t.Run("prefix is prepended to the key", func(t *testing.T) {
		client := &mockS3Client{}
		archiver := testArchiver(client, "audit")

		key, err := archiver.Export(ctx, events)
		require.NoError(t, err)
		assert.Regexp(t, `^audit/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.json$`, key)
	})

	t.Run("empty batch uploads nothing", func(t *testing.T) {
		client := &mockS3Client{}
		archiver := testArchiver(client, "")

		key, err := archiver.Export(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, key)
		assert.Nil(t, client.lastInput)
	})

	t.Run("upload errors are reported with the destination", func(t *testing.T) {
		client := &mockS3Client{
			putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				return nil, errors.New("access denied")
			},
		}
		archiver := testArchiver(client, "")

		_, err := archiver.Export(ctx, events)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3://audit-archive/")
	})
}

func TestObjectKeyDatePartitioning(t *testing.T) {
	archiver := testArchiver(&mockS3Client{}, "audit")

	now := time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)
	key := archiver.objectKey(now)
	assert.Regexp(t, regexp.MustCompile(`^audit/2026/03/09/[0-9a-f-]{36}\.json$`), key)
}
