package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localStore writes resumes to local disk. Development fallback when no
// S3 bucket is configured; files are served from /uploads by the caller.
type localStore struct {
	dir string
}

// NewLocalStore creates a disk-backed resume store rooted at dir
func NewLocalStore(dir string) (ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStore{dir: dir}, nil
}

func (l *localStore) Upload(_ context.Context, upload ResumeUpload) (string, error) {
	key := objectKey(upload)
	filename := filepath.Base(key)
	path := filepath.Join(l.dir, filename)

	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save resume locally: %w", err)
	}

	return "/uploads/resumes/" + filename, nil
}

func (l *localStore) Delete(_ context.Context, url string) error {
	const prefix = "/uploads/resumes/"
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("not a managed resume URL: %s", url)
	}
	filename := filepath.Base(strings.TrimPrefix(url, prefix))
	return os.Remove(filepath.Join(l.dir, filename))
}
