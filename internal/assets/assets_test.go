package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	userDir := filepath.Join(t.TempDir(), "assets")
	bundledDir := t.TempDir()
	s, err := NewStore(userDir, bundledDir)
	require.NoError(t, err)
	return s, userDir, bundledDir
}

func TestStoreAndResolve(t *testing.T) {
	s, userDir, _ := newTestStore(t)

	ref, err := s.StoreBytes([]byte("jpeg bytes"), ".jpg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(ref))

	path, err := s.Resolve(ref)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, ref), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestResolvePrefersUserUpload(t *testing.T) {
	s, userDir, bundledDir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(bundledDir, "logo.png"), []byte("bundled"), 0o644))
	path, err := s.Resolve("logo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bundledDir, "logo.png"), path)

	require.NoError(t, os.WriteFile(filepath.Join(userDir, "logo.png"), []byte("custom"), 0o644))
	path, err = s.Resolve("logo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "logo.png"), path)
}

func TestResolveStripsPathComponents(t *testing.T) {
	s, _, bundledDir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(bundledDir, "logo.png"), []byte("bundled"), 0o644))

	path, err := s.Resolve("../../etc/logo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bundledDir, "logo.png"), path)

	_, err = s.Resolve("../../etc/passwd")
	assert.Error(t, err)
}

func TestDeleteOnlyTouchesUserAssets(t *testing.T) {
	s, _, bundledDir := newTestStore(t)

	bundled := filepath.Join(bundledDir, "logo.png")
	require.NoError(t, os.WriteFile(bundled, []byte("bundled"), 0o644))

	ref, err := s.StoreBytes([]byte("upload"), ".png")
	require.NoError(t, err)
	assert.True(t, s.IsUserAsset(ref))
	assert.False(t, s.IsUserAsset("logo.png"))

	require.NoError(t, s.Delete(ref))
	assert.False(t, s.IsUserAsset(ref))

	// Bundled files survive a delete by reference name.
	require.NoError(t, s.Delete("logo.png"))
	_, err = os.Stat(bundled)
	assert.NoError(t, err)

	// Absent refs are a no-op.
	require.NoError(t, s.Delete("missing.png"))
	require.NoError(t, s.Delete(""))
}
