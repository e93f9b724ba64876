// Package assets stores and resolves catalog images and icons on local disk,
// mirroring the images/favicons/news_images bucket split of the hosted
// storage it replaces. Resolution returns public URLs built from the
// configured URL prefix; the raw bytes are only read for the image
// passthrough endpoint.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeai-tech/catalog-api/internal/models"
)

// Asset kinds, doubling as subdirectory names.
const (
	KindImage     = "images"      // tool screenshots, <id>.webp
	KindIcon      = "favicons"    // tool favicons, <id>.png
	KindNewsImage = "news_images" // news images, <id>.png
)

func kindExt(kind string) string {
	if kind == KindImage {
		return ".webp"
	}
	return ".png"
}

// Store is a disk-backed asset store.
type Store struct {
	dir       string
	publicURL string
}

func NewStore(dir, publicURL string) (*Store, error) {
	for _, kind := range []string{KindImage, KindIcon, KindNewsImage} {
		if err := os.MkdirAll(filepath.Join(dir, kind), 0o750); err != nil {
			return nil, fmt.Errorf("create asset dir %s: %w", kind, err)
		}
	}
	return &Store{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save writes the asset bytes under the id's canonical name for the kind.
// The write goes through a temp file and rename so a crashed write never
// leaves a half-written public asset.
func (s *Store) Save(kind, id string, data []byte) error {
	path := s.path(kind, id)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp asset: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store asset: %w", err)
	}
	return nil
}

// Resolve returns the public URL for an asset, or ErrAssetNotFound when the
// file does not exist. Other stat failures surface as-is and callers treat
// them as dependency failures.
func (s *Store) Resolve(kind, id string) (string, error) {
	if _, err := os.Stat(s.path(kind, id)); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s/%s: %w", kind, id, models.ErrAssetNotFound)
		}
		return "", fmt.Errorf("stat asset: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s%s", s.publicURL, kind, id, kindExt(kind)), nil
}

// Open returns the asset bytes and a content type for passthrough serving.
func (s *Store) Open(kind, id string) ([]byte, string, error) {
	data, err := os.ReadFile(s.path(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%s/%s: %w", kind, id, models.ErrAssetNotFound)
		}
		return nil, "", fmt.Errorf("read asset: %w", err)
	}

	contentType := "image/png"
	if kind == KindImage {
		contentType = "image/webp"
	}
	return data, contentType, nil
}

func (s *Store) path(kind, id string) string {
	// The id is always a UUID or store-assigned id; Base strips anything
	// path-like that arrives via URL parameters.
	return filepath.Join(s.dir, kind, filepath.Base(id)+kindExt(kind))
}
