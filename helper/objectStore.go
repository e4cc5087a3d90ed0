package helper

import (
	"os"
	"path/filepath"
)

// ObjectStore is the boundary for restaurant image and QR assets. Put returns
// the public URL of the stored object.
type ObjectStore interface {
	Put(key string, data []byte) (string, error)
	Delete(key string) error
}

// DiskObjectStore keeps objects under a local directory served by the
// /uploads/ file route.
type DiskObjectStore struct {
	Dir     string
	BaseURL string
}

func NewDiskObjectStore() *DiskObjectStore {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &DiskObjectStore{Dir: dir, BaseURL: baseURL}
}

func (s *DiskObjectStore) Put(key string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, key), data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/uploads/" + key, nil
}

func (s *DiskObjectStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.Dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
