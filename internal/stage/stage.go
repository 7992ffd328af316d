// Package stage writes destination files atomically: content goes to a
// temporary file in the destination's directory and is renamed into place.
package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is a pending replacement for Dest.
type File struct {
	Dest string
	f    *os.File
	done bool
}

// New creates the destination directory if needed and opens a temporary file
// beside dest.
func New(dest string) (*File, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".drt-*")
	if err != nil {
		return nil, fmt.Errorf("creating stage file: %w", err)
	}
	return &File{Dest: dest, f: f}, nil
}

// Write implements io.Writer.
func (s *File) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// CopyFrom fills the stage file with the contents of src.
func (s *File) CopyFrom(src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(s.f, in)
	return err
}

// Commit flushes the stage file and renames it over Dest. An existing
// destination keeps its permission bits; new files get 0644.
func (s *File) Commit() error {
	if s.done {
		return fmt.Errorf("stage for %s already finished", s.Dest)
	}
	s.done = true
	tmp := s.f.Name()

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.Dest); err == nil {
		mode = info.Mode().Perm()
	}

	if err := s.f.Sync(); err != nil {
		s.f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err := s.f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.Dest, err)
	}
	return nil
}

// Discard removes the stage file, leaving Dest untouched. Safe to call after
// Commit.
func (s *File) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	s.f.Close()
	return os.Remove(s.f.Name())
}
