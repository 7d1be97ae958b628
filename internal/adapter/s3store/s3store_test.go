package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthhub/internal/domain"
)

type mockS3 struct {
	putFn    func(in *s3.PutObjectInput) error
	getFn    func(in *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	headErr  error
	created  bool
	createFn func(in *s3.CreateBucketInput) error
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putFn != nil {
		return &s3.PutObjectOutput{}, m.putFn(in)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getFn != nil {
		return m.getFn(in)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func (m *mockS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, m.headErr
}

func (m *mockS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	m.created = true
	if m.createFn != nil {
		return &s3.CreateBucketOutput{}, m.createFn(in)
	}
	return &s3.CreateBucketOutput{}, nil
}

func TestPutSendsBucketKeyAndType(t *testing.T) {
	var got *s3.PutObjectInput
	var body []byte
	m := &mockS3{putFn: func(in *s3.PutObjectInput) error {
		got = in
		body, _ = io.ReadAll(in.Body)
		return nil
	}}
	s := NewWithClient(m, "exports")

	require.NoError(t, s.Put(context.Background(), "exports/1/a.csv", "text/csv", []byte("x,y")))
	assert.Equal(t, "exports", aws.ToString(got.Bucket))
	assert.Equal(t, "exports/1/a.csv", aws.ToString(got.Key))
	assert.Equal(t, "text/csv", aws.ToString(got.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(got.ContentLength))
	assert.Equal(t, "x,y", string(body))
}

func TestGetReadsBody(t *testing.T) {
	m := &mockS3{getFn: func(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		assert.Equal(t, "k", aws.ToString(in.Key))
		return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("data")))}, nil
	}}
	b, err := NewWithClient(m, "b").Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))
}

func TestGetMissingKey(t *testing.T) {
	m := &mockS3{getFn: func(*s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return nil, &types.NoSuchKey{}
	}}
	_, err := NewWithClient(m, "b").Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestEnsureBucket(t *testing.T) {
	m := &mockS3{}
	require.NoError(t, NewWithClient(m, "b").ensureBucket(context.Background()))
	assert.False(t, m.created)

	m = &mockS3{headErr: errors.New("not found")}
	require.NoError(t, NewWithClient(m, "b").ensureBucket(context.Background()))
	assert.True(t, m.created)

	m = &mockS3{headErr: errors.New("not found"), createFn: func(*s3.CreateBucketInput) error { return errors.New("denied") }}
	assert.Error(t, NewWithClient(m, "b").ensureBucket(context.Background()))
}
