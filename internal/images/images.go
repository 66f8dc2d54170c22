package images

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxUploadBytes caps the accepted size of a single uploaded image file.
const MaxUploadBytes = 1 << 20

const (
	avatarSize    = 250
	photoMaxWidth = 800
)

var (
	// ErrUnsupportedFormat is returned for files that are not jpg/jpeg/png.
	ErrUnsupportedFormat = errors.New("images: unsupported image format")
	// ErrTooLarge is returned when an uploaded file exceeds MaxUploadBytes.
	ErrTooLarge = errors.New("images: file exceeds the upload size limit")
)

// AllowedFilename reports whether the uploaded file name carries an accepted
// image extension.
func AllowedFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// ProcessAvatar normalises an uploaded avatar: decoded, cropped and scaled to
// a square, re-encoded as PNG. The stored bytes are what the fetch endpoint
// later streams back verbatim.
func ProcessAvatar(data []byte) ([]byte, string, error) {
	if len(data) > MaxUploadBytes {
		return nil, "", ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	square := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("images: encode avatar: %w", err)
	}

	return buf.Bytes(), "image/png", nil
}

// ProcessPartyPhoto normalises an uploaded party photo: decoded, scaled down
// to the maximum width when wider, re-encoded as JPEG.
func ProcessPartyPhoto(data []byte) ([]byte, string, error) {
	if len(data) > MaxUploadBytes {
		return nil, "", ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if img.Bounds().Dx() > photoMaxWidth {
		img = imaging.Resize(img, photoMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, "", fmt.Errorf("images: encode photo: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
