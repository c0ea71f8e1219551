package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"sync"

	"golang.org/x/image/draw"
)

// Thumbnail widths the HTTP layer accepts.
const (
	MinThumbnailWidth = 32
	MaxThumbnailWidth = 1024
)

type thumbKey struct {
	path  string
	width int
}

// Processor derives thumbnails and BlurHash strings from resolved artwork and
// caches them in memory until Invalidate.
type Processor struct {
	resolver *Resolver
	logger   *slog.Logger

	mu     sync.Mutex
	hashes map[string]string
	thumbs map[thumbKey][]byte
}

// NewProcessor creates a processor reading files through resolver.
func NewProcessor(resolver *Resolver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{
		resolver: resolver,
		logger:   logger,
		hashes:   make(map[string]string),
		thumbs:   make(map[thumbKey][]byte),
	}
}

// BlurHash returns the BlurHash of the artwork behind ref. Missing or
// undecodable files yield "" without an error; the card then falls back to
// its placeholder.
func (p *Processor) BlurHash(ref string) string {
	abs, err := p.resolver.Resolve(ref)
	if err != nil {
		return ""
	}

	p.mu.Lock()
	hash, ok := p.hashes[abs]
	p.mu.Unlock()
	if ok {
		return hash
	}

	hash, err = ComputeBlurHash(abs)
	if err != nil {
		p.logger.Debug("blurhash failed", "path", abs, "error", err)
		hash = ""
	}

	p.mu.Lock()
	p.hashes[abs] = hash
	p.mu.Unlock()
	return hash
}

// Thumbnail returns a JPEG of the artwork behind ref scaled to width pixels
// (clamped to [MinThumbnailWidth, MaxThumbnailWidth]) using Catmull-Rom
// resampling. Smaller originals are re-encoded without upscaling.
func (p *Processor) Thumbnail(ref string, width int) ([]byte, error) {
	width = min(max(width, MinThumbnailWidth), MaxThumbnailWidth)

	abs, err := p.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}

	key := thumbKey{path: abs, width: width}
	p.mu.Lock()
	cached, ok := p.thumbs[key]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	img, err := decodeFile(abs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaleToWidth(img, width, draw.CatmullRom), &jpeg.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	p.mu.Lock()
	p.thumbs[key] = buf.Bytes()
	p.mu.Unlock()

	p.logger.Debug("thumbnail generated", "path", abs, "width", width, "size", buf.Len())
	return buf.Bytes(), nil
}

// Invalidate drops every cached lookup, thumbnail and hash.
func (p *Processor) Invalidate() {
	p.resolver.Invalidate()

	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.hashes)
	clear(p.thumbs)
}

// scaleToWidth shrinks img to width pixels wide, keeping the aspect ratio.
func scaleToWidth(img image.Image, width int, scaler draw.Scaler) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}
	height := max(1, bounds.Dy()*width/bounds.Dx())

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
