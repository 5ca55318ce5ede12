// Package content turns the per-type form fields of a QR code into the
// single string that gets encoded and persisted.
package content

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Type tags what a QR code carries.
type Type string

const (
	TypeURL   Type = "url"
	TypeText  Type = "text"
	TypeWiFi  Type = "wifi"
	TypeVCard Type = "vcard"
	TypePDF   Type = "pdf"
	TypeMenu  Type = "menu"
)

// TypeInfo describes a type on the selection step.
type TypeInfo struct {
	Type  Type
	Label string
	Desc  string
}

// Types is the catalogue shown on the type step, in display order.
var Types = []TypeInfo{
	{TypeURL, "Website URL", "Link to any webpage"},
	{TypeVCard, "vCard Contact", "Digital business card"},
	{TypeWiFi, "WiFi Login", "Auto-connect to WiFi"},
	{TypeText, "Plain Text", "Show a simple message"},
	{TypePDF, "PDF File", "Share a document"},
	{TypeMenu, "Menu", "Restaurant menu"},
}

// ParseType returns the known type named by s.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range Types {
		if info.Type == t {
			return t, true
		}
	}
	return "", false
}

// File is an uploaded document.
type File struct {
	Name string
	Size int64
	Data []byte
}

// Payload holds every form field of the content step. Only the fields of the
// selected type are meaningful.
type Payload struct {
	URL      string
	Text     string
	Name     string
	Phone    string
	Email    string
	Company  string
	SSID     string
	Password string
	File     *File
	MenuURL  string
}

// Encode reduces the payload to the string handed to the renderer.
func (p Payload) Encode(t Type) string {
	switch t {
	case TypeURL:
		return p.URL
	case TypeText:
		return p.Text
	case TypeWiFi:
		return WiFi(p.SSID, p.Password)
	case TypeVCard:
		return VCard(p.Name, p.Phone, p.Email, p.Company)
	case TypePDF:
		if p.File == nil {
			return ""
		}
		return p.File.Name
	case TypeMenu:
		return p.MenuURL
	default:
		return ""
	}
}

// Valid reports whether the content step may advance for type t.
func (p Payload) Valid(t Type) bool {
	switch t {
	case TypeURL:
		return utf8.RuneCountInString(p.URL) > 3
	case TypeText:
		return utf8.RuneCountInString(p.Text) > 0
	case TypeWiFi:
		return utf8.RuneCountInString(p.SSID) > 0
	case TypeVCard:
		return utf8.RuneCountInString(p.Name) > 0
	case TypePDF:
		return p.File != nil
	case TypeMenu:
		return utf8.RuneCountInString(p.MenuURL) > 3
	default:
		return false
	}
}

// TargetURL is the value persisted as target_url. Link types get an https
// scheme when the user left it out.
func (p Payload) TargetURL(t Type) string {
	switch t {
	case TypeURL, TypeMenu:
		v := p.Encode(t)
		if strings.HasPrefix(v, "http") {
			return v
		}
		return "https://" + v
	default:
		return p.Encode(t)
	}
}

// WiFi formats a WPA network join string.
func WiFi(ssid, password string) string {
	return "WIFI:S:" + ssid + ";T:WPA;P:" + password + ";;"
}

// VCard formats a minimal contact card. Blank fields stay blank.
func VCard(name, phone, email, company string) string {
	return "BEGIN:VCARD\nFN:" + name + "\nTEL:" + phone + "\nEMAIL:" + email + "\nORG:" + company + "\nEND:VCARD"
}

// NormalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme and a non-empty host.
func NormalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}
