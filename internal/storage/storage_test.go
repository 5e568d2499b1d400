package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tienda/internal/config"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Store_Put(t *testing.T) {
	putter := new(MockObjectPutter)
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "imagenes" &&
			*in.Key == "productos/1/a.png" &&
			*in.ContentType == "image/png" &&
			*in.ContentLength == 3 &&
			string(body) == "png"
	})).Return(&s3.PutObjectOutput{}, nil)

	store := newS3Store(putter, config.S3Config{Bucket: "imagenes", Endpoint: "http://minio:9000/"})

	url, err := store.Put(context.Background(), "productos/1/a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/imagenes/productos/1/a.png", url)
	putter.AssertExpectations(t)
}

func TestS3Store_PutError(t *testing.T) {
	putter := new(MockObjectPutter)
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	store := newS3Store(putter, config.S3Config{Bucket: "imagenes", Region: "us-east-1"})

	url, err := store.Put(context.Background(), "k", "image/png", []byte("x"))
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.S3Config
		expected string
	}{
		{
			name:     "explicit public url",
			cfg:      config.S3Config{Bucket: "b", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.tienda.bo/"},
			expected: "https://cdn.tienda.bo",
		},
		{
			name:     "custom endpoint is path style",
			cfg:      config.S3Config{Bucket: "b", Endpoint: "http://minio:9000"},
			expected: "http://minio:9000/b",
		},
		{
			name:     "aws virtual host",
			cfg:      config.S3Config{Bucket: "b", Region: "sa-east-1"},
			expected: "https://b.s3.sa-east-1.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, publicBaseURL(tt.cfg))
		})
	}
}

func TestNewS3Store_StaticCredentials(t *testing.T) {
	store, err := NewS3Store(context.Background(), config.S3Config{
		Bucket:    "imagenes",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/imagenes", store.baseURL)
}
