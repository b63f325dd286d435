package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	base := t.TempDir()
	store := NewDiskStore(base)
	userID := uuid.New()

	ref, err := store.Save(userID, "resume.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userID.String(), "resume.pdf"), ref)

	data, err := os.ReadFile(filepath.Join(base, ref))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestDiskStore_StripsDirectoryComponents(t *testing.T) {
	base := t.TempDir()
	store := NewDiskStore(base)
	userID := uuid.New()

	ref, err := store.Save(userID, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userID.String(), "passwd"), ref)

	_, err = os.Stat(filepath.Join(base, userID.String(), "passwd"))
	assert.NoError(t, err)
}

func TestDiskStore_RejectsEmptyFilename(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Save(uuid.New(), "", []byte("x"))
	assert.Error(t, err)
}

func TestDiskStore_Remove(t *testing.T) {
	base := t.TempDir()
	store := NewDiskStore(base)
	userID := uuid.New()

	ref, err := store.Save(userID, "resume.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ref))
	_, err = os.Stat(filepath.Join(base, ref))
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op.
	assert.NoError(t, store.Remove(ref))
}

func TestDiskStore_RemoveRejectsEscapingReference(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	assert.Error(t, store.Remove("../outside"))
}
