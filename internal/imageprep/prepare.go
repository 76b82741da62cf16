package imageprep

import (
	"bytes"

	"github.com/disintegration/imaging"

	"github.com/splitbill/receipt-extract/internal/common"
)

// maxLongEdge bounds uploaded page dimensions; phone captures routinely
// exceed 4000px and the remote service gains nothing from them.
const maxLongEdge = 2000

const jpegQuality = 85

// PrepareJPEG decodes captured page bytes and re-encodes them as JPEG for
// upload, downscaling oversized pages. Undecodable bytes are invalid image
// input.
func PrepareJPEG(page []byte) ([]byte, error) {
	if len(page) == 0 {
		return nil, common.NewAppError("IMAGE_EMPTY", "empty page bytes", common.ErrInvalidImageInput)
	}
	img, err := imaging.Decode(bytes.NewReader(page), imaging.AutoOrientation(true))
	if err != nil {
		return nil, common.NewAppError("IMAGE_DECODE", err.Error(), common.ErrInvalidImageInput)
	}
	b := img.Bounds()
	if b.Dx() > maxLongEdge || b.Dy() > maxLongEdge {
		img = imaging.Fit(img, maxLongEdge, maxLongEdge, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, common.NewAppError("IMAGE_ENCODE", err.Error(), common.ErrInvalidImageInput)
	}
	return buf.Bytes(), nil
}
