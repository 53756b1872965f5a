package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/erp/sellerops/internal/infrastructure/config"
	"github.com/erp/sellerops/internal/infrastructure/printing"
)

func TestNewS3LabelStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3LabelStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3LabelStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3LabelStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3LabelStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("defaults applied", func(t *testing.T) {
		s, err := NewS3LabelStorage(&config.StorageConfig{
			Bucket:    "labels",
			AccessKey: "k",
			SecretKey: "s",
			Endpoint:  "localhost:9000",
		})
		require.NoError(t, err)
		assert.Equal(t, "labels", s.GetBucket())
		assert.Equal(t, defaultPresignExpiry, s.presignExpiration)
		assert.Equal(t, defaultLabelKeyPrefix, s.keyPrefix)
	})
}

func TestS3LabelStorageOptions(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s, err := NewS3LabelStorage(&config.StorageConfig{
		Bucket:        "labels",
		AccessKey:     "k",
		SecretKey:     "s",
		Endpoint:      "http://localhost:9000",
		PresignExpiry: 10 * time.Minute,
	}, WithLogger(logger), WithPresignExpiration(5*time.Minute), WithKeyPrefix("prod/"))
	require.NoError(t, err)

	assert.Equal(t, logger, s.logger)
	assert.Equal(t, 5*time.Minute, s.presignExpiration)
	assert.Equal(t, "prod/", s.keyPrefix)
}

func TestS3LabelStorage_DownloadURL(t *testing.T) {
	s, err := NewS3LabelStorage(&config.StorageConfig{
		Bucket:       "labels",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	u, err := s.DownloadURL(context.Background(), "labels/2026/05/r.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/labels/labels/2026/05/r.pdf?"), u)
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=3600")

	_, err = s.DownloadURL(context.Background(), "")
	assert.Error(t, err)
}

func TestS3LabelStorage_KeyValidation(t *testing.T) {
	s, err := NewS3LabelStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s", Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, ""))

	_, err = s.Store(ctx, &printing.StoreRequest{RouteID: uuid.New()})
	var renderErr *printing.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, printing.ErrCodeStorageFailed, renderErr.Code)
}

// fakeS3 serves path-style PUT/GET/DELETE object requests from memory
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.URL.Path
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3LabelStorage_RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	s, err := NewS3LabelStorage(&config.StorageConfig{
		Bucket:       "labels",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     server.URL,
		UsePathStyle: true,
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	routeID := uuid.New()
	pdf := []byte("%PDF-1.4 label")

	result, err := s.Store(ctx, &printing.StoreRequest{RouteID: routeID, PDFData: pdf})
	require.NoError(t, err)
	assert.Equal(t, "labels/2026/05/"+routeID.String()+".pdf", result.Key)
	assert.Equal(t, int64(len(pdf)), result.Size)
	assert.True(t, strings.HasPrefix(result.URL, server.URL+"/labels/"+result.Key))

	objectPath := "/labels/" + result.Key
	fake.mu.Lock()
	_, stored := fake.objects[objectPath]
	contentType := fake.types[objectPath]
	fake.mu.Unlock()
	require.True(t, stored)
	assert.Equal(t, "application/pdf", contentType)

	fake.mu.Lock()
	fake.objects[objectPath] = pdf
	fake.mu.Unlock()

	rc, err := s.Get(ctx, result.Key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, pdf, got)

	require.NoError(t, s.Delete(ctx, result.Key))
	_, err = s.Get(ctx, result.Key)
	assert.Error(t, err)
}
