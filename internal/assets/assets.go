package assets

import (
	"os"
	"path/filepath"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
)

// Store resolves and owns image assets referenced by the catalog.
// User-uploaded assets live in a private directory under the workdir;
// bundled assets ship with the till and are never written or deleted.
type Store struct {
	userDir    string
	bundledDir string
}

func NewStore(userDir, bundledDir string) (*Store, error) {
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create asset dir")
	}
	return &Store{userDir: userDir, bundledDir: bundledDir}, nil
}

// StoreBytes writes an uploaded image and returns its reference.
func (s *Store) StoreBytes(data []byte, ext string) (string, error) {
	ref := random.String(16) + ext
	if err := os.WriteFile(filepath.Join(s.userDir, ref), data, 0o644); err != nil {
		return "", errors.Wrap(err, "write asset")
	}
	return ref, nil
}

// Resolve returns the path of an asset, preferring a user upload over a
// bundled default of the same name.
func (s *Store) Resolve(ref string) (string, error) {
	ref = filepath.Base(ref)
	userPath := filepath.Join(s.userDir, ref)
	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	}
	bundledPath := filepath.Join(s.bundledDir, ref)
	if _, err := os.Stat(bundledPath); err == nil {
		return bundledPath, nil
	}
	return "", errors.Errorf("asset %s not found", ref)
}

// IsUserAsset reports whether ref names an uploaded (deletable) asset.
func (s *Store) IsUserAsset(ref string) bool {
	_, err := os.Stat(filepath.Join(s.userDir, filepath.Base(ref)))
	return err == nil
}

// Delete removes a user-uploaded asset. Bundled assets are left alone;
// deleting an absent or bundled-only ref is a no-op.
func (s *Store) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	path := filepath.Join(s.userDir, filepath.Base(ref))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete asset")
	}
	return nil
}
