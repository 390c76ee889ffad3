package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrBackgroundMissing  = errors.New("background image missing")
	ErrBackgroundTooSmall = errors.New("background image smaller than the field")
)

// LoadBackground decodes the image at path and checks it covers a field of
// width x height pixels.
func LoadBackground(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if nil != err {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrBackgroundMissing, path)
		}
		return nil, fmt.Errorf("unable to open background: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if nil != err {
		return nil, fmt.Errorf("unable to decode background %v: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() < width || b.Dy() < height {
		return nil, fmt.Errorf("%w: %v is %vx%v (%v), need %vx%v",
			ErrBackgroundTooSmall, path, b.Dx(), b.Dy(), format, width, height)
	}
	return img, nil
}
