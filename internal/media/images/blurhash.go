package images

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize bounds the longest side of the image fed to the encoder. The
// hash is a handful of DCT components, so a tiny image gives the same result.
const blurHashSize = 64

// ComputeBlurHash generates a BlurHash string from an image file using 4x3
// components.
func ComputeBlurHash(imagePath string) (string, error) {
	img, err := decodeFile(imagePath)
	if err != nil {
		return "", err
	}

	hash, err := blurhash.Encode(4, 3, scaleToFit(img, blurHashSize, draw.ApproxBiLinear))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

func decodeFile(imagePath string) (image.Image, error) {
	file, err := os.Open(imagePath) //#nosec G304 -- path comes from Resolver
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// scaleToFit shrinks img so its longest side is at most maxSide, keeping the
// aspect ratio. Images already small enough are returned as is.
func scaleToFit(img image.Image, maxSide int, scaler draw.Scaler) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= maxSide && srcH <= maxSide {
		return img
	}

	var dstW, dstH int
	if srcW >= srcH {
		dstW = maxSide
		dstH = max(1, srcH*maxSide/srcW)
	} else {
		dstH = maxSide
		dstW = max(1, srcW*maxSide/srcH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	scaler.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
