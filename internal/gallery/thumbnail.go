package gallery

import (
	"bytes"
	"image"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// thumbWidth is the target thumbnail width; height follows the source
// aspect ratio.
const thumbWidth = 320

// makeThumbnail scales an image down to the thumbnail width and encodes
// it as WebP. Images already at or below the target width are encoded
// unscaled.
func makeThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()

	w := bounds.Dx()
	h := bounds.Dy()
	if w > thumbWidth {
		h = h * thumbWidth / w
		if h < 1 {
			h = 1
		}
		w = thumbWidth
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, dst, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
