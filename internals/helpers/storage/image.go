package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = 80
)

// EncodeWebP decode gambar (jpeg/png/webp), resize keep-aspect ke maks
// 1600x1600, lalu encode ulang ke WebP lossy.
func EncodeWebP(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// mungkin sudah webp
		if img, err = webp.Decode(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
	}

	b := img.Bounds()
	if b.Dx() > webpMaxW || b.Dy() > webpMaxH {
		img = imaging.Fit(img, webpMaxW, webpMaxH, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}
