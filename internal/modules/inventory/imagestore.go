package inventory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore persists item images. Failures are isolated from item
// mutations: callers log and continue.
type ImageStore interface {
	// Save writes the image and returns the URL path it is served under.
	Save(itemID string, filename string, data io.Reader) (string, error)
	// Delete removes the image behind a previously returned URL. Deleting a
	// missing image is not an error.
	Delete(url string) error
}

type diskImageStore struct{ dir string }

// NewDiskImageStore stores images as flat files under dir.
func NewDiskImageStore(dir string) ImageStore { return &diskImageStore{dir: dir} }

func (s *diskImageStore) Save(itemID string, filename string, data io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s%s", itemID, uuid.New().String()[:8], filepath.Ext(filename))
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return "/uploads/" + name, nil
}

func (s *diskImageStore) Delete(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
