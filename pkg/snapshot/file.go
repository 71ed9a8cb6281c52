package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/hyperoop/internal/errors"
)

const fileExt = ".html"

// FileStore keeps snapshots as .html files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E021").WithDetailf("creating %s", dir).Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Save writes markup atomically: a reader never sees a partial snapshot.
func (s *FileStore) Save(ctx context.Context, name string, markup []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return errors.New("E021").Wrap(err)
	}
	tmp := f.Name()

	if _, err := f.Write(markup); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.New("E021").Wrap(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.New("E021").Wrap(err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		os.Remove(tmp)
		return errors.New("E021").Wrap(err)
	}
	return nil
}

// Load reads a snapshot.
func (s *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E020").WithDetailf("%s in %s", name, s.dir)
		}
		return nil, errors.New("E021").Wrap(err)
	}
	return data, nil
}

// Delete removes a snapshot.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return errors.New("E021").Wrap(err)
	}
	return nil
}

// List returns the snapshot names in the directory.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || !strings.HasSuffix(n, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(n, fileExt))
	}
	sort.Strings(names)
	return names, nil
}
