package images

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAllowedFilename(t *testing.T) {
	require.True(t, AllowedFilename("party.jpg"))
	require.True(t, AllowedFilename("PARTY.JPEG"))
	require.True(t, AllowedFilename("avatar.png"))
	require.False(t, AllowedFilename("document.pdf"))
	require.False(t, AllowedFilename("archive.tar.gz"))
	require.False(t, AllowedFilename("noextension"))
}

func TestProcessAvatarProducesSquarePNG(t *testing.T) {
	data := encodeTestPNG(t, 640, 480)

	out, contentType, err := ProcessAvatar(data)
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 250, decoded.Bounds().Dx())
	require.Equal(t, 250, decoded.Bounds().Dy())
}

func TestProcessPartyPhotoCapsWidth(t *testing.T) {
	data := encodeTestPNG(t, 1600, 900)

	out, contentType, err := ProcessPartyPhoto(data)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 800, cfg.Width)
}

func TestProcessPartyPhotoKeepsSmallImages(t *testing.T) {
	data := encodeTestPNG(t, 400, 300)

	out, _, err := ProcessPartyPhoto(data)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 400, cfg.Width)
	require.Equal(t, 300, cfg.Height)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, _, err := ProcessAvatar([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = ProcessPartyPhoto([]byte{0x00, 0x01})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestProcessRejectsOversizedFile(t *testing.T) {
	big := make([]byte, MaxUploadBytes+1)

	_, _, err := ProcessAvatar(big)
	require.ErrorIs(t, err, ErrTooLarge)
}
