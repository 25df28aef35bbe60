package base64

import (
	stdbase64 "encoding/base64"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType returns the media type of a data URL, without any parameters.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if !strings.HasPrefix(file, dataPrefix) || end == -1 || end < start {
		return ""
	}

	mediaType, _, _ := strings.Cut(file[start:end], ";")

	return mediaType
}

// GetParam returns the value of a named data URL parameter such as name=gallery/a.png.
func GetParam(file, key string) string {
	end := strings.Index(file, base64Marker)
	if !strings.HasPrefix(file, dataPrefix) || end == -1 {
		return ""
	}

	params := strings.Split(file[len(dataPrefix):end], ";")
	for _, param := range params[1:] {
		if k, v, ok := strings.Cut(param, "="); ok && k == key {
			return v
		}
	}

	return ""
}

// Encode builds a data URL carrying content and the given parameters in order.
func Encode(contentType string, content []byte, params ...string) string {
	var b strings.Builder

	b.WriteString(dataPrefix)
	b.WriteString(contentType)

	for _, param := range params {
		b.WriteString(";")
		b.WriteString(param)
	}

	b.WriteString(base64Marker)
	b.WriteString(stdbase64.StdEncoding.EncodeToString(content))

	return b.String()
}

// Decode returns the bytes carried by a data URL.
func Decode(file string) ([]byte, error) {
	end := strings.Index(file, base64Marker)
	if !strings.HasPrefix(file, dataPrefix) || end == -1 {
		return nil, fmt.Errorf("not a base64 data url")
	}

	content, err := stdbase64.StdEncoding.DecodeString(file[end+len(base64Marker):])
	if err != nil {
		return nil, fmt.Errorf("decoding data url: %w", err)
	}

	return content, nil
}
