// Package intro locates the optional intro video played once on the home page.
package intro

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/validation"
)

// Video describes an intro video found on disk.
type Video struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// Locate looks for name under assetsDir. A missing or unreadable file is
// reported as NotFound, which callers treat as "skip the intro".
func Locate(assetsDir, name string) (Video, error) {
	if name == "" || !validation.IsAssetPath(name) {
		return Video{}, domainerrors.Validationf("invalid intro video path %q", name)
	}

	path := filepath.Join(assetsDir, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return Video{}, domainerrors.NotFoundf("intro video %s not found", name)
	}

	return Video{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType(path),
	}, nil
}

// Available reports whether Locate would succeed.
func Available(assetsDir, name string) bool {
	_, err := Locate(assetsDir, name)
	return err == nil
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".ogv":
		return "video/ogg"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
