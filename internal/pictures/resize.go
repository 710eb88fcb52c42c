// Package pictures implements the prediction picture processing pipeline:
// decoding uploads, cover-fitting them to the card size and re-encoding to WebP.
package pictures

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"strings"

	// Register decoders for the upload formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// TargetWidth and TargetHeight are the fixed prediction card dimensions.
	TargetWidth  = 320
	TargetHeight = 180
	// WebPQuality is the fixed encode quality for processed pictures.
	WebPQuality = 90
)

// Resize decodes the uploaded image, cover-fits it to the target card size and
// re-encodes it as WebP.
func Resize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := coverFit(src, TargetWidth, TargetHeight)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, fitted, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// DerivedName builds the stored picture name from the uploaded filename: the
// original base name plus a short unique suffix and the new format extension.
// The suffix replaces the random temp names the upload layer would otherwise
// need to avoid collisions between users uploading the same filename.
func DerivedName(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	if base == "" || base == "." {
		base = "picture"
	}
	return fmt.Sprintf("%s-%s.webp", base, uuid.New().String()[:8])
}

// coverFit scales src so it fills a w x h rectangle and center-crops the excess.
func coverFit(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	sw := b.Dx()
	sh := b.Dy()
	if sw <= 0 || sh <= 0 {
		return src
	}

	scaleW := float64(w) / float64(sw)
	scaleH := float64(h) / float64(sh)
	scale := scaleW
	if scaleH > scale {
		scale = scaleH
	}

	newW := int(float64(sw)*scale + 0.5)
	newH := int(float64(sh)*scale + 0.5)
	if newW < w {
		newW = w
	}
	if newH < h {
		newH = h
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, xdraw.Over, nil)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	offset := image.Point{X: (newW - w) / 2, Y: (newH - h) / 2}
	draw.Draw(dst, dst.Bounds(), scaled, offset, draw.Src)
	return dst
}
