package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/propositos-api/internal/domain"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// MaxInputBytes caps the upload before any decoding happens.
	MaxInputBytes = 5 << 20
	// MaxEncodedBytes caps the stored data URL. Firestore limits documents
	// to roughly 1 MiB, and the data URL is stored inline.
	MaxEncodedBytes = 1 << 20

	maxWidth    = 1920
	maxHeight   = 1080
	jpegQuality = 70
)

// ProcessedImage is the persistable form of an upload: a self-describing
// data URL plus the dimensions of the re-encoded image.
type ProcessedImage struct {
	DataURL string `json:"data_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int    `json:"size"`
}

type Service interface {
	Process(r io.Reader, declaredSize int64) (*ProcessedImage, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

// Process turns an uploaded image into an inline JPEG data URL. Oversized
// inputs fail before decoding, oversized outputs fail after encoding; the
// caller reports both as validation errors and never retries.
func (s *service) Process(r io.Reader, declaredSize int64) (*ProcessedImage, error) {
	if declaredSize > MaxInputBytes {
		return nil, fmt.Errorf("image exceeds the %d MiB upload limit: %w", MaxInputBytes>>20, domain.ErrBadRequest)
	}
	// The declared size comes from the client, so the reader is capped too.
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxInputBytes {
		return nil, fmt.Errorf("image exceeds the %d MiB upload limit: %w", MaxInputBytes>>20, domain.ErrBadRequest)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image: %w", domain.ErrBadRequest)
	}

	bounds := src.Bounds()
	outW, outH := fit(bounds.Dx(), bounds.Dy())
	out := src
	if outW != bounds.Dx() || outH != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(dataURL) > MaxEncodedBytes {
		return nil, fmt.Errorf("processed image does not fit in a document, use a smaller or simpler image: %w", domain.ErrBadRequest)
	}
	return &ProcessedImage{
		DataURL: dataURL,
		Width:   outW,
		Height:  outH,
		Size:    len(dataURL),
	}, nil
}

// fit shrinks dimensions to the bounding box preserving aspect ratio.
// Images already inside the box keep their exact size.
func fit(w, h int) (int, int) {
	if w <= maxWidth && h <= maxHeight {
		return w, h
	}
	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	outW := int(math.Round(float64(w) * scale))
	outH := int(math.Round(float64(h) * scale))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}
