package util

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSniffContentType(t *testing.T) {
	r := bytes.NewReader(pngHeader)
	mimeType, err := SniffContentType(r, MimeImage)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	// 读取位置已回到开头
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, rest)

	_, err = SniffContentType(bytes.NewReader([]byte("plain text body")), MimeImage)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("Photo.JPG", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("script.sh", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("noext", AllowedImageExtensions))
}
