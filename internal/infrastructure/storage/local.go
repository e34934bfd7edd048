// Package storage keeps uploaded files on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge   = errors.New("file exceeds size limit")
	ErrOutsideDir = errors.New("path is outside the upload directory")
)

type Local struct {
	dir      string
	maxBytes int64
}

func NewLocal(dir string, maxBytes int64) *Local {
	return &Local{dir: dir, maxBytes: maxBytes}
}

// Save writes r under dir/<owner>/<random><ext> and returns the path. Writes
// that exceed the size limit are removed and reported as ErrTooLarge.
func (l *Local) Save(owner uuid.UUID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	dir := filepath.Join(l.dir, owner.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	src := r
	if l.maxBytes > 0 {
		src = io.LimitReader(r, l.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && l.maxBytes > 0 && n > l.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}

// Remove deletes a file previously returned by Save. Missing files are not
// an error; paths outside the upload directory are refused.
func (l *Local) Remove(path string) error {
	rel, err := filepath.Rel(l.dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ErrOutsideDir
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}
