package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/adapters/storage"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/test/helpers"
)

// fakeBucket keeps objects in memory and serves both client interfaces
type fakeBucket struct {
	objects map[string][]byte
	meta    map[string]map[string]string
	getErr  error
	putErr  error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		objects: make(map[string][]byte),
		meta:    make(map[string]map[string]string),
	}
}

func (f *fakeBucket) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeBucket) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeBucket) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeBucket) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(input.Key)
	f.objects[key] = data
	f.meta[key] = input.Metadata
	return &manager.UploadOutput{Location: "https://bucket.example/" + key}, nil
}

func newStore(bucket *fakeBucket) *storage.S3Snapshots {
	return storage.NewS3SnapshotsWithClient(bucket, bucket, &storage.S3Config{
		Region: "us-east-1",
		Bucket: "stock-test",
		Prefix: "snapshots",
	}, helpers.TestLogger())
}

func TestS3Snapshots_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	store := newStore(bucket)

	require.NoError(t, store.Save(ctx, "inventory.json", helpers.DefaultTestStock()))

	data, ok := bucket.objects["snapshots/inventory.json"]
	require.True(t, ok)
	assert.Equal(t, "{\n    \"apple\": 7,\n    \"banana\": 15\n}\n", string(data))
	assert.Equal(t, "2", bucket.meta["snapshots/inventory.json"]["item-count"])
	assert.NotEmpty(t, bucket.meta["snapshots/inventory.json"]["upload-id"])

	loaded, err := store.Load(ctx, "inventory.json")
	require.NoError(t, err)
	assert.True(t, helpers.DefaultTestStock().Equal(loaded))
}

func TestS3Snapshots_Key(t *testing.T) {
	bucket := newFakeBucket()
	assert.Equal(t, "snapshots/inv.json", newStore(bucket).Key("inv.json"))

	bare := storage.NewS3SnapshotsWithClient(bucket, bucket, &storage.S3Config{Bucket: "b"}, helpers.TestLogger())
	assert.Equal(t, "inv.json", bare.Key("inv.json"))
}

func TestS3Snapshots_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeBucket)
		wantErr error
	}{
		{
			name:    "missing_object",
			setup:   func(f *fakeBucket) {},
			wantErr: domain.ErrSnapshotNotFound,
		},
		{
			name: "malformed_object",
			setup: func(f *fakeBucket) {
				f.objects["snapshots/inv.json"] = []byte(`{"apple": "lots"}`)
			},
			wantErr: domain.ErrMalformedSnapshot,
		},
		{
			name: "transport_failure",
			setup: func(f *fakeBucket) {
				f.getErr = errors.New("connection reset")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := newFakeBucket()
			tt.setup(bucket)

			_, err := newStore(bucket).Load(context.Background(), "inv.json")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
				assert.NotErrorIs(t, err, domain.ErrMalformedSnapshot)
			}
		})
	}
}

func TestS3Snapshots_SaveFailure(t *testing.T) {
	bucket := newFakeBucket()
	bucket.putErr = errors.New("access denied")

	err := newStore(bucket).Save(context.Background(), "inv.json", helpers.DefaultTestStock())
	assert.ErrorContains(t, err, "access denied")
	assert.Empty(t, bucket.objects)
}
