// Package storage is the file-storage collaborator: audio and cover
// blobs go in, opaque path references come out. The API only ever stores
// the references; serving the bytes back is someone else's job.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type FileStore interface {
	// Save writes the blob under key and returns the reference to store
	// on the resource row.
	Save(key string, r io.Reader) (string, error)
}

// DiskStore keeps blobs under a media root on the local filesystem.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (d *DiskStore) Save(key string, r io.Reader) (string, error) {
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "creating media directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating media file")
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "writing media file")
	}
	return key, nil
}

// Keys are generated before the row id exists, so a uuid segment stands
// in for the id-keyed directories the reference layout calls for.

func SongKey(filename string) string {
	return fmt.Sprintf("songs/%s/%s", uuid.NewString(), filepath.Base(filename))
}

func CoverKey(filename string) string {
	return fmt.Sprintf("covers/%s/%s", uuid.NewString(), filepath.Base(filename))
}

func PlaylistCoverKey(filename string) string {
	return fmt.Sprintf("playlist_covers/%s/%s", uuid.NewString(), filepath.Base(filename))
}
