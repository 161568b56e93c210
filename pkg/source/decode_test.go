package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		contentType string
		expected    string
	}{
		{name: "plain utf-8", input: []byte("Go, Rust"), expected: "Go, Rust"},
		{name: "utf-8 bom", input: []byte("\xef\xbb\xbfSkills: Go"), expected: "Skills: Go"},
		{name: "utf-16le bom", input: []byte{0xff, 0xfe, 'G', 0, 'o', 0}, expected: "Go"},
		{name: "utf-16be bom", input: []byte{0xfe, 0xff, 0, 'G', 0, 'o'}, expected: "Go"},
		{name: "invalid bytes dropped", input: []byte("Go\xff\xfeRust"), expected: "GoRust"},
		{name: "nfc", input: []byte("cafe\u0301"), expected: "caf\u00e9"},
		{name: "declared latin-1", input: []byte{'n', 0xe9}, contentType: "text/plain; charset=latin1", expected: "né"},
		{name: "bad content type ignored", input: []byte("x"), contentType: ";;", expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := decodeText(tt.input, tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestDecodeHTMLMetaCharset(t *testing.T) {
	page := []byte("<html><head><meta charset=\"windows-1252\"></head><body>na\xefve</body></html>")

	text, err := htmlText(page, "text/html")
	require.NoError(t, err)
	assert.Equal(t, "naïve", text)
}

func TestInferMIME(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		expected    string
	}{
		{url: "http://x/a", contentType: "text/html; charset=utf-8", expected: "text/html"},
		{url: "http://x/a", contentType: "Application/PDF", expected: "application/pdf"},
		{url: "http://x/resume.pdf", expected: "application/pdf"},
		{url: "http://x/resume.html?x=1", expected: "text/html"},
		{url: "http://x/resume", expected: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.url+tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferMIME(tt.url, tt.contentType))
		})
	}
}

func TestCollapseLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", collapseLines("  a  \n\n \n\t\nb\n\n"))
	assert.Equal(t, "", collapseLines("\n \n"))
}
