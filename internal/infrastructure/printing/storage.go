package printing

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LabelStorage keeps rendered label PDFs
type LabelStorage interface {
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Get opens a stored PDF; the caller closes it
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type StoreRequest struct {
	RouteID uuid.UUID
	PDFData []byte
}

type StoreResult struct {
	// Key is relative to the storage root
	Key  string
	URL  string
	Size int64
}

// LabelKey is {year}/{month}/{route_id}.pdf
func LabelKey(routeID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%04d/%02d/%s.pdf", at.Year(), int(at.Month()), routeID)
}

// ValidateStoreRequest rejects requests without a route or content
func ValidateStoreRequest(req *StoreRequest) error {
	var msg string
	switch {
	case req == nil:
		msg = "store request is nil"
	case req.RouteID == uuid.Nil:
		msg = "route ID is required"
	case len(req.PDFData) == 0:
		msg = "PDF data is empty"
	default:
		return nil
	}
	return NewRenderError(ErrCodeStorageFailed, msg, nil)
}

const (
	defaultLabelDir     = "./data/labels"
	defaultLabelBaseURL = "/api/v1/labels"
)

type FileSystemStorageConfig struct {
	// BasePath defaults to ./data/labels
	BasePath string
	// BaseURL defaults to /api/v1/labels
	BaseURL string
	Logger  *zap.Logger
}

// FileSystemStorage writes labels below a directory opened as an os.Root,
// so keys can never reach outside it.
type FileSystemStorage struct {
	root    *os.Root
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

func NewFileSystemStorage(cfg *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if cfg == nil {
		cfg = &FileSystemStorageConfig{}
	}
	dir := cmp.Or(cfg.BasePath, defaultLabelDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "cannot create label directory "+dir, err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "cannot open label directory "+dir, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemStorage{
		root:    root,
		baseURL: strings.TrimRight(cmp.Or(cfg.BaseURL, defaultLabelBaseURL), "/"),
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if err := ValidateStoreRequest(req); err != nil {
		return nil, err
	}

	key := LabelKey(req.RouteID, s.now())
	if err := s.root.MkdirAll(path.Dir(key), 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "cannot create label directory", err)
	}
	if err := s.root.WriteFile(key, req.PDFData, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "cannot write label PDF", err)
	}

	res := &StoreResult{Key: key, URL: s.GetURL(key), Size: int64(len(req.PDFData))}
	s.logger.Info("Label PDF stored", zap.String("key", key), zap.Int64("bytes", res.Size))
	return res, nil
}

func (s *FileSystemStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.checkKey(ctx, key); err != nil {
		return nil, err
	}
	f, err := s.root.Open(key)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF not found", err)
	case err != nil:
		return nil, s.pathError(key, "cannot open label PDF", err)
	}
	return f, nil
}

// Delete removes a stored PDF; a missing file is not an error
func (s *FileSystemStorage) Delete(ctx context.Context, key string) error {
	if err := s.checkKey(ctx, key); err != nil {
		return err
	}
	err := s.root.Remove(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return s.pathError(key, "cannot delete label PDF", err)
	}
	s.logger.Info("Label PDF deleted", zap.String("key", key))
	return nil
}

// GetURL is the HTTP path the labels endpoint serves key under
func (s *FileSystemStorage) GetURL(key string) string {
	return s.baseURL + "/" + path.Clean(key)
}

// Close releases the storage root
func (s *FileSystemStorage) Close() error {
	return s.root.Close()
}

func (s *FileSystemStorage) checkKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if key == "" {
		return NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	return nil
}

// pathError logs keys that os.Root refused, which is how traversal shows up.
func (s *FileSystemStorage) pathError(key, msg string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) && strings.Contains(pe.Err.Error(), "escapes") {
		s.logger.Warn("Blocked label key outside storage root", zap.String("key", key))
		return NewRenderError(ErrCodeStorageFailed, "invalid path", err)
	}
	return NewRenderError(ErrCodeStorageFailed, msg, err)
}

var _ LabelStorage = (*FileSystemStorage)(nil)
