package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// MaxFileSize - a single uploaded image cannot exceed 10 MiB
const MaxFileSize = 10 << 20

// PublicPathPrefix - stored files are exposed at /uploads/<name>
const PublicPathPrefix = "uploads"

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrInvalidName  = errors.New("invalid file name")
)

// DiskStore persists uploaded note images on the local filesystem.
// Uniqueness of stored names comes from the timestamp + random suffix
// naming scheme, so concurrent saves need no coordination.
type DiskStore struct {
	rootPath string
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root [%s]: %w", rootPath, err)
	}
	return &DiskStore{
		rootPath: rootPath,
	}, nil
}

type SaveFileParams struct {
	Filename string
	Size     int64
	File     io.Reader
}

// Save stores the file content under a newly generated name and returns
// the relative storage path, e.g. uploads/image-1693600000000-123456789.jpg
func (ds *DiskStore) Save(_ context.Context, params SaveFileParams) (string, error) {
	if params.Size > MaxFileSize {
		return "", fmt.Errorf("%w: %s [%d bytes]", ErrFileTooLarge, params.Filename, params.Size)
	}

	newName := newFileName(params.Filename)
	newFilePath := filepath.Join(ds.rootPath, newName)

	log.Debugf("disk store: saving new file: %s -> %s", params.Filename, newName)

	dst, err := os.Create(newFilePath)
	if err != nil {
		return "", fmt.Errorf("create file [%s]: %w", newName, err)
	}
	defer dst.Close()

	// the declared size is not trusted, cap the copy too
	written, err := io.Copy(dst, io.LimitReader(params.File, MaxFileSize+1))
	if err != nil {
		_ = os.Remove(newFilePath)
		return "", fmt.Errorf("write file [%s]: %w", newName, err)
	}
	if written > MaxFileSize {
		_ = os.Remove(newFilePath)
		return "", fmt.Errorf("%w: %s", ErrFileTooLarge, params.Filename)
	}

	return path.Join(PublicPathPrefix, newName), nil
}

// Remove deletes a previously stored file. Removing an already
// absent file is not an error.
func (ds *DiskStore) Remove(_ context.Context, relPath string) error {
	filePath, err := ds.FilePath(strings.TrimPrefix(path.Base(relPath), "/"))
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("disk store: remove [%s]: already gone", relPath)
			return nil
		}
		return fmt.Errorf("remove file [%s]: %w", relPath, err)
	}

	log.Debugf("disk store: file [%s] removed", relPath)
	return nil
}

// FilePath resolves a stored file name to its absolute path,
// rejecting names that would escape the storage root
func (ds *DiskStore) FilePath(name string) (string, error) {
	if name == "" || name == "." ||
		name != filepath.Base(name) ||
		strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	return filepath.Join(ds.rootPath, name), nil
}

func newFileName(original string) string {
	ext := path.Ext(original)
	return fmt.Sprintf(
		"image-%d-%09d%s",
		time.Now().UnixMilli(), rand.Int64N(1_000_000_000), ext,
	)
}
