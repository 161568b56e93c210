package source

import (
	"mime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decodeText converts raw bytes to NFC-normalised UTF-8. A byte order mark
// wins over the charset declared in contentType, which wins over UTF-8.
// Invalid UTF-8 sequences are dropped.
func decodeText(data []byte, contentType string) (text string, err error) {
	var enc encoding.Encoding = encoding.Nop
	if label := charsetParam(contentType); label != "" {
		declared, name := charset.Lookup(label)
		if declared != nil && name != "utf-8" {
			enc = declared
		}
	}

	text, err = transcode(data, enc)
	return text, err
}

// decodeHTML is decodeText for HTML documents, which may also declare their
// charset in a meta tag.
func decodeHTML(data []byte, contentType string) (text string, err error) {
	var enc encoding.Encoding = encoding.Nop
	detected, name, _ := charset.DetermineEncoding(data, contentType)
	if detected != nil && name != "utf-8" {
		enc = detected
	}

	text, err = transcode(data, enc)
	return text, err
}

func transcode(data []byte, fallback encoding.Encoding) (text string, err error) {
	decoder := unicode.BOMOverride(fallback.NewDecoder())

	var out []byte
	out, _, err = transform.Bytes(decoder, data)
	if err != nil {
		err = errors.Wrap(err, "failed to decode text")
		return text, err
	}

	text = norm.NFC.String(strings.ToValidUTF8(string(out), ""))
	return text, err
}

func charsetParam(contentType string) (label string) {
	if contentType == "" {
		return label
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return label
	}
	label = params["charset"]
	return label
}
