package intro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/smartlife/recommender/internal/errors"
)

func TestLocate_Found(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "introofapp.mp4"), []byte("fake mp4"), 0o644))

	v, err := Locate(dir, "introofapp.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "introofapp.mp4"), v.Path)
	assert.Equal(t, "introofapp.mp4", v.Name)
	assert.Equal(t, int64(8), v.Size)
	assert.Equal(t, "video/mp4", v.ContentType)
	assert.True(t, Available(dir, "introofapp.mp4"))
}

func TestLocate_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir, "introofapp.mp4")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.False(t, Available(dir, "introofapp.mp4"))
}

func TestLocate_EmptyFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "introofapp.mp4"), nil, 0o644))

	_, err := Locate(dir, "introofapp.mp4")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLocate_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "introofapp.mp4"), 0o755))

	_, err := Locate(dir, "introofapp.mp4")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLocate_RejectsEscapingPaths(t *testing.T) {
	for _, name := range []string{"", "../intro.mp4", "/etc/intro.mp4"} {
		_, err := Locate(t.TempDir(), name)
		assert.ErrorIs(t, err, domainerrors.ErrValidation, name)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", contentType("intro.MP4"))
	assert.Equal(t, "video/webm", contentType("intro.webm"))
	assert.Equal(t, "application/octet-stream", contentType("intro.unknownext"))
}
