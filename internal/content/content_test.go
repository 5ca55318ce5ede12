package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	p := Payload{
		URL:      "example.com",
		Text:     "hello",
		SSID:     "HomeNet",
		Password: "s3cret",
		Name:     "Jane Roe",
		Phone:    "+1 555",
		Email:    "jane@example.com",
		Company:  "Acme",
		MenuURL:  "menu.example.com",
	}

	tests := []struct {
		typ  Type
		want string
	}{
		{TypeURL, "example.com"},
		{TypeText, "hello"},
		{TypeWiFi, "WIFI:S:HomeNet;T:WPA;P:s3cret;;"},
		{TypeVCard, "BEGIN:VCARD\nFN:Jane Roe\nTEL:+1 555\nEMAIL:jane@example.com\nORG:Acme\nEND:VCARD"},
		{TypePDF, ""},
		{TypeMenu, "menu.example.com"},
		{Type("fax"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Encode(tt.typ))
		})
	}
}

func TestEncodeBlankFields(t *testing.T) {
	p := Payload{Name: "Solo"}
	assert.Equal(t, "BEGIN:VCARD\nFN:Solo\nTEL:\nEMAIL:\nORG:\nEND:VCARD", p.Encode(TypeVCard))
	assert.Equal(t, "WIFI:S:;T:WPA;P:;;", p.Encode(TypeWiFi))

	p.File = &File{Name: "menu.pdf"}
	assert.Equal(t, "menu.pdf", p.Encode(TypePDF))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		p    Payload
		want bool
	}{
		{"url too short", TypeURL, Payload{URL: "a.b"}, false},
		{"url long enough", TypeURL, Payload{URL: "a.co"}, true},
		{"text empty", TypeText, Payload{}, false},
		{"text single char", TypeText, Payload{Text: "x"}, true},
		{"wifi without ssid", TypeWiFi, Payload{Password: "pw"}, false},
		{"wifi with ssid", TypeWiFi, Payload{SSID: "n"}, true},
		{"vcard without name", TypeVCard, Payload{Email: "a@b.c"}, false},
		{"vcard with name", TypeVCard, Payload{Name: "J"}, true},
		{"pdf without file", TypePDF, Payload{}, false},
		{"pdf with file", TypePDF, Payload{File: &File{Name: "a.pdf"}}, true},
		{"menu with url", TypeMenu, Payload{MenuURL: "menu.io"}, true},
		{"unknown type", Type("fax"), Payload{URL: "example.com"}, false},
		{"multibyte runes", TypeURL, Payload{URL: "ü.de"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Valid(tt.typ))
		})
	}
}

func TestTargetURL(t *testing.T) {
	assert.Equal(t, "https://example.com", Payload{URL: "example.com"}.TargetURL(TypeURL))
	assert.Equal(t, "http://example.com", Payload{URL: "http://example.com"}.TargetURL(TypeURL))
	assert.Equal(t, "hi", Payload{Text: "hi"}.TargetURL(TypeText))
	assert.Equal(t, "WIFI:S:x;T:WPA;P:;;", Payload{SSID: "x"}.TargetURL(TypeWiFi))
}

func TestParseType(t *testing.T) {
	typ, ok := ParseType(" VCard ")
	require.True(t, ok)
	assert.Equal(t, TypeVCard, typ)

	_, ok = ParseType("fax")
	assert.False(t, ok)
}

func TestNormalizeHTTPURL(t *testing.T) {
	got, err := NormalizeHTTPURL("example.com/path")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", got)

	_, err = NormalizeHTTPURL("ftp://example.com")
	assert.Error(t, err)

	_, err = NormalizeHTTPURL("   ")
	assert.Error(t, err)
}
