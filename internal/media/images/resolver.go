// Package images locates card artwork under the assets directory and
// derives thumbnails, BlurHash strings and SVG placeholders from it.
package images

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	domainerrors "github.com/smartlife/recommender/internal/errors"
	"github.com/smartlife/recommender/internal/validation"
)

// fallbackExtensions are tried in order when the referenced file is missing.
var fallbackExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// Extensions lists the image file suffixes the resolver will serve.
func Extensions() []string {
	return slices.Clone(fallbackExtensions)
}

// Resolver maps catalog image refs ("images/movies/action/john_wick.jpg") to
// files under the assets root. Lookups, including misses, are cached until
// Invalidate is called.
type Resolver struct {
	root string

	mu    sync.RWMutex
	cache map[string]string // ref -> absolute path, "" for a miss
}

// NewResolver creates a resolver rooted at dir.
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		return nil, fmt.Errorf("assets dir cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}
	return &Resolver{root: abs, cache: make(map[string]string)}, nil
}

// Root returns the absolute assets directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the absolute path of the file for ref. When the exact file
// is missing the same base name is tried with each fallback extension.
// Refs that would escape the root are rejected as validation errors; a
// missing file is a not-found error.
func (r *Resolver) Resolve(ref string) (string, error) {
	if !validation.IsAssetPath(ref) {
		return "", domainerrors.Validationf("invalid image path %q", ref)
	}
	ref = path.Clean(ref)

	r.mu.RLock()
	cached, ok := r.cache[ref]
	r.mu.RUnlock()
	if ok {
		if cached == "" {
			return "", domainerrors.NotFoundf("image %s not found", ref)
		}
		return cached, nil
	}

	found := r.lookup(ref)

	r.mu.Lock()
	r.cache[ref] = found
	r.mu.Unlock()

	if found == "" {
		return "", domainerrors.NotFoundf("image %s not found", ref)
	}
	return found, nil
}

func (r *Resolver) lookup(ref string) string {
	candidate := filepath.Join(r.root, filepath.FromSlash(ref))
	if isFile(candidate) {
		return candidate
	}

	base := strings.TrimSuffix(candidate, filepath.Ext(candidate))
	for _, ext := range fallbackExtensions {
		if alt := base + ext; isFile(alt) {
			return alt
		}
	}
	return ""
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether ref resolves to a file.
func (r *Resolver) Exists(ref string) bool {
	_, err := r.Resolve(ref)
	return err == nil
}

// Invalidate forgets every cached lookup.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

// Rel converts an absolute path under the root back to a slash-separated
// ref. ok is false for paths outside the root.
func (r *Resolver) Rel(abs string) (string, bool) {
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !validation.IsAssetPath(rel) {
		return "", false
	}
	return rel, true
}

// Hash returns the hex SHA-256 of a resolved file, used as an ETag.
func Hash(absPath string) (string, error) {
	f, err := os.Open(absPath) //#nosec G304 -- path comes from Resolver
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", absPath, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
