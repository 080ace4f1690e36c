// Package image decodes base64 data-URI image payloads.
package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const magicNumberSeek = 512

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var mimeTypeSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrMalformedDataURI    = errors.New("malformed base64 image")
)

type Image struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
}

// DecodeDataURI parses a "data:image/...;base64,..." payload. The declared
// media type is ignored; the MIME type is sniffed from the decoded bytes.
func DecodeDataURI(s string) (*Image, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		_, rest, ok := strings.Cut(s, ";base64,")
		if !ok {
			return nil, ErrMalformedDataURI
		}
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", errors.Join(ErrMalformedDataURI, err))
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return &Image{
		Size:     int64(len(data)),
		Data:     data,
		Suffix:   mimeTypeSuffix[contentType],
		MimeType: contentType,
	}, nil
}
