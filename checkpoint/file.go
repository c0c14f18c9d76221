package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// File stores the checkpoint in a local file, for local runs without a bucket.
type File struct {
	fs   afero.Fs
	path string
}

func NewFile(filesystem afero.Fs, path string) *File {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}

	return &File{
		fs:   filesystem,
		path: path,
	}
}

func (f *File) Load(ctx context.Context) (time.Time, error) {
	b, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Epoch, ErrNotFound
	} else if err != nil {
		return Epoch, fmt.Errorf("error reading %s (%w)", f.path, err)
	}

	return Parse(string(b))
}

// Save writes the checkpoint to a temporary file and renames it over the existing checkpoint.
func (f *File) Save(ctx context.Context, checkpoint time.Time) error {
	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := afero.TempFile(f.fs, dir, ".checkpoint")
	if err != nil {
		return err
	}

	name := tmp.Name()
	renamed := false

	defer func() {
		tmp.Close()
		if !renamed {
			f.fs.Remove(name)
		}
	}()

	if _, err := tmp.WriteString(Format(checkpoint)); err != nil {
		return fmt.Errorf("error writing %s (%w)", f.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s (%w)", f.path, err)
	}

	if err := f.fs.Rename(name, f.path); err != nil {
		return fmt.Errorf("error writing %s (%w)", f.path, err)
	}

	renamed = true

	return nil
}

func (f *File) String() string {
	return f.path
}
