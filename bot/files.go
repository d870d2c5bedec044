package bot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempStore hands out per-upload working directories under the configured
// temp dir. Every job gets its own directory named by a fresh UUID, so
// concurrent uploads of identically named files never collide.
type tempStore struct {
	root string
}

func newTempStore(dir string) (*tempStore, error) {
	root := filepath.Join(dir, "gostdoc")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	return &tempStore{root: root}, nil
}

func (s *tempStore) newJob() (*job, error) {
	dir := filepath.Join(s.root, uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating job directory: %w", err)
	}
	return &job{dir: dir}, nil
}

// job is one upload's working directory.
type job struct {
	dir string
}

func (j *job) path(name string) string {
	return filepath.Join(j.dir, filepath.Base(name))
}

func (j *job) cleanup() {
	os.RemoveAll(j.dir)
}

func writeFile(dest string, data []byte) error {
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
