package design

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI encodes data as a base64 data URI.
func DataURI(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a data URI into its media type and payload. Both the
// base64 and the percent-encoded forms are accepted.
func ParseDataURI(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}
	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, ErrInvalidDataURI
		}
		return mediaType, data, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	return mediaType, []byte(unescaped), nil
}
