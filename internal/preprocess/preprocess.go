// Package preprocess decodes receipt uploads and binarizes them so the text
// recognizer sees high-contrast black/white glyphs.
package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// ErrNotImage marks input that cannot be decoded as any supported format.
// The pipeline rejects such input before any processing starts.
var ErrNotImage = errors.New("input is not a decodable image")

// grayThreshold is the binarization cut-off: pixels whose RGB average is at
// or above it become white, the rest black.
const grayThreshold = 128

// Decode turns an upload into pixel data. Supports JPEG, PNG, GIF, HEIC/HEIF
// (common on iPhones) and the first page of a PDF.
func Decode(data []byte, contentType string) (image.Image, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))

	if mimeType == "application/pdf" {
		return pdfFirstPage(data)
	}

	if isHEICData(data) || isHEICMimeType(mimeType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC/HEIF: %v", ErrNotImage, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return img, nil
}

// Binarize replaces each pixel's RGB channels with pure black or white based
// on the grayscale average against the fixed threshold. Alpha is unchanged,
// dimensions are unchanged, no rotation or resize is attempted.
func Binarize(img image.Image) image.Image {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		avg := (int(c.R) + int(c.G) + int(c.B)) / 3
		if avg >= grayThreshold {
			return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: c.A}
	})
}

// EncodePNG renders the processed image for the recognizer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfFirstPage renders page one of a PDF; receipts are single page.
func pdfFirstPage(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrNotImage, err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering PDF page: %v", ErrNotImage, err)
	}
	return img, nil
}

// isHEICData sniffs the ftyp box brands HEIC containers start with.
func isHEICData(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
