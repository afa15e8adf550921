package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUpload(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "http://localhost:8080/files/")
	require.NoError(t, err)

	u, err := l.Upload(context.Background(), "avatars", "space/contact 1.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/avatars/space/contact%201.png", u)

	b, err := os.ReadFile(filepath.Join(root, "avatars", "space", "contact 1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))
}

func TestLocalRemove(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "/files")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Upload(ctx, "avatars", "space/a.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, l.Remove(ctx, "avatars", "space/a.png"))
	assert.NoFileExists(t, filepath.Join(root, "avatars", "space", "a.png"))

	assert.NoError(t, l.Remove(ctx, "avatars", "space/a.png"))
	assert.ErrorIs(t, l.Remove(ctx, "avatars", "../a.png"), ErrInvalidPath)
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/files")
	require.NoError(t, err)

	for _, name := range []string{"../etc/passwd", "a/../../b", ""} {
		_, err := l.Upload(context.Background(), "avatars", name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
	_, err = l.Upload(context.Background(), "a/b", "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Empty(t, l.PublicURL("avatars", ""))
}

func TestLocalHonorsCancellation(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/files")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Upload(ctx, "avatars", "x.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
