package base64_test

import (
	"folio/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"data:image/png;base64,iVBORw0KGgo=":                  "image/png",
		"data:image/webp;name=gallery/a.webp;base64,UklGRg==": "image/webp",
		"data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=":    "image/svg+xml",
		"":                                      "",
		"data:":                                 "",
		"data:;base64,":                         "",
		"image/png;base64,iVBORw0KGgo=":         "",
		"data:image/png,iVBORw0KGgo=":           "",
		"https://cdn.example.com/gallery/a.png": "",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, base64.GetContentType(input), input)
	}
}

func TestEncodeDecode(t *testing.T) {
	content := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	url := base64.Encode("image/png", content, "name=gallery/a.png")

	assert.Equal(t, "image/png", base64.GetContentType(url))
	assert.Equal(t, "gallery/a.png", base64.GetParam(url, "name"))
	assert.Empty(t, base64.GetParam(url, "missing"))

	decoded, err := base64.Decode(url)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := base64.Decode("https://cdn.example.com/a.png")
	assert.Error(t, err)

	_, err = base64.Decode("data:image/png;base64,@@@")
	assert.Error(t, err)
}
