package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Save(t *testing.T) {
	dir := t.TempDir()
	owner := uuid.New()
	l := NewLocal(dir, 1024)

	path, err := l.Save(owner, "CV.PDF", strings.NewReader("resume"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, owner.String()), filepath.Dir(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "resume", string(b))
}

func TestLocal_SaveTooLarge(t *testing.T) {
	dir := t.TempDir()
	owner := uuid.New()
	l := NewLocal(dir, 4)

	_, err := l.Save(owner, "cv.txt", strings.NewReader("12345"))
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, owner.String()))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocal_Remove(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, 1024)

	path, err := l.Save(uuid.New(), "cv.txt", strings.NewReader("resume"))
	require.NoError(t, err)

	require.NoError(t, l.Remove(path))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, l.Remove(path), "removing twice is a no-op")

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	assert.ErrorIs(t, l.Remove(outside), ErrOutsideDir)
	assert.ErrorIs(t, l.Remove(filepath.Join(dir, "..", "keep.txt")), ErrOutsideDir)
	assert.FileExists(t, outside)
}
