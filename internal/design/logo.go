package design

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// LogoKind tags the variant held by a Logo.
type LogoKind int

const (
	LogoNone LogoKind = iota
	LogoUpload
	LogoURL
)

func (k LogoKind) String() string {
	switch k {
	case LogoUpload:
		return "upload"
	case LogoURL:
		return "url"
	default:
		return "none"
	}
}

// Upload is an image the user attached from their device.
type Upload struct {
	// ID changes whenever a different file is attached.
	ID          string
	Filename    string
	ContentType string
	Data        []byte
}

// Logo is the centre image of a QR code: absent, an uploaded file, or a
// remote URL. The zero value is LogoNone.
type Logo struct {
	kind   LogoKind
	upload Upload
	url    string
}

// NoLogo returns the absent variant.
func NoLogo() Logo { return Logo{} }

// UploadLogo wraps an uploaded file. Files without data are treated as absent.
func UploadLogo(u Upload) Logo {
	if len(u.Data) == 0 {
		return Logo{}
	}
	if u.ID == "" {
		u.ID = contentID(u.Data)
	}
	return Logo{kind: LogoUpload, upload: u}
}

// URLLogo wraps a remote image URL. Blank strings are absent. A data URI
// carries its own bytes and becomes an upload, the same kind it decodes to
// after a round trip through the design JSON; a malformed one is absent.
func URLLogo(s string) Logo {
	s = strings.TrimSpace(s)
	if s == "" {
		return Logo{}
	}
	if strings.HasPrefix(s, "data:") {
		mediaType, data, err := ParseDataURI(s)
		if err != nil {
			return Logo{}
		}
		return UploadLogo(Upload{ContentType: mediaType, Data: data})
	}
	return Logo{kind: LogoURL, url: s}
}

func (l Logo) Kind() LogoKind { return l.kind }

// Upload returns the uploaded file when the logo holds one.
func (l Logo) Upload() (Upload, bool) {
	return l.upload, l.kind == LogoUpload
}

// URL returns the remote reference when the logo holds one.
func (l Logo) URL() (string, bool) {
	return l.url, l.kind == LogoURL
}

// Key is a stable identity used for change detection.
func (l Logo) Key() string {
	switch l.kind {
	case LogoUpload:
		return "upload:" + l.upload.ID
	case LogoURL:
		return "url:" + l.url
	default:
		return ""
	}
}

// MarshalJSON encodes none as null, URLs verbatim and uploads as data URIs.
func (l Logo) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case LogoUpload:
		return json.Marshal(DataURI(l.upload.ContentType, l.upload.Data))
	case LogoURL:
		return json.Marshal(l.url)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON restores uploads from data URIs. Objects (a browser File
// serialised without its bytes) decode as absent.
func (l *Logo) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || b[0] == '{' {
		*l = Logo{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}
	if strings.HasPrefix(s, "data:") {
		mediaType, data, err := ParseDataURI(s)
		if err != nil {
			return err
		}
		*l = UploadLogo(Upload{ContentType: mediaType, Data: data})
		return nil
	}
	*l = URLLogo(s)
	return nil
}

func contentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
