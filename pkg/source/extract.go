package source

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeWord  = "application/msword"
	mimeHTML  = "text/html"
	mimeXHTML = "application/xhtml+xml"

	docxBody = "word/document.xml"
)

// extractBytes turns a fetched body into text according to its media type.
// contentType is the raw header, used for charset detection.
func extractBytes(rawURL string, body []byte, mediaType, contentType string) (text string, err error) {
	switch {
	case mediaType == mimePDF:
		text, err = pdfText(body)
	case mediaType == mimeDOCX || mediaType == mimeWord || urlExt(rawURL) == ".docx":
		text, err = docxText(body)
	case mediaType == mimeHTML || mediaType == mimeXHTML:
		text, err = htmlText(body, contentType)
	default:
		text, err = decodeText(body, contentType)
	}
	return text, err
}

func urlExt(rawURL string) (ext string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ext
	}
	ext = strings.ToLower(path.Ext(parsed.Path))
	return ext
}

// pdfText extracts the text layer of a PDF document, one visual line per
// output line, pages in order.
func pdfText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("malformed pdf: %v", r)
		}
	}()

	var reader *pdf.Reader
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to open pdf")
		return text, err
	}

	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(page.Content().Text)...)
	}

	text, err = decodeText([]byte(strings.Join(lines, "\n")), "")
	return text, err
}

// pageLines groups positioned glyphs into lines by baseline, top of the page
// first. Glyphs within a line keep their content-stream order.
func pageLines(glyphs []pdf.Text) (lines []string) {
	type row struct {
		y    float64
		text strings.Builder
	}

	var rows []*row
	for _, g := range glyphs {
		if g.S == "\n" {
			continue
		}

		tolerance := math.Max(g.FontSize/2, 1)
		var current *row
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= tolerance {
				current = r
				break
			}
		}
		if current == nil {
			current = &row{y: g.Y}
			rows = append(rows, current)
		}
		current.text.WriteString(g.S)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	for _, r := range rows {
		lines = append(lines, r.text.String())
	}
	return lines
}

// docxText returns the paragraphs of a DOCX document, one per line.
func docxText(data []byte) (text string, err error) {
	var zr *zip.Reader
	zr, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to open docx")
		return text, err
	}

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}

		var rc io.ReadCloser
		rc, err = f.Open()
		if err != nil {
			err = errors.Wrapf(err, "failed to open %s", docxBody)
			return text, err
		}
		defer rc.Close()

		text, err = docxParagraphs(rc)
		return text, err
	}

	err = errors.Errorf("no %s found in docx", docxBody)
	return text, err
}

// docxParagraphs walks WordprocessingML, emitting the text runs of each
// w:p element followed by a newline. Tabs and breaks only count inside a
// run (w:r); the same element names in paragraph properties are tab stops.
func docxParagraphs(r io.Reader) (text string, err error) {
	decoder := xml.NewDecoder(r)
	var paragraphs []string
	var current strings.Builder
	inText := false
	runDepth := 0

	for {
		var token xml.Token
		token, err = decoder.Token()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			err = errors.Wrap(err, "failed to parse docx body")
			return text, err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					current.WriteString("\t")
				}
			case "br", "cr":
				if runDepth > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "r":
				runDepth--
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(el)
			}
		}
	}

	text = strings.Join(paragraphs, "\n")
	return text, err
}

//nolint:gochecknoglobals // fixed tag set
var skippedHTMLTags = map[string]bool{"script": true, "style": true, "noscript": true}

// htmlText decodes an HTML document and returns its visible text with each
// line trimmed and runs of blank lines collapsed.
func htmlText(body []byte, contentType string) (text string, err error) {
	var decoded string
	decoded, err = decodeHTML(body, contentType)
	if err != nil {
		return text, err
	}

	var doc *html.Node
	doc, err = html.Parse(strings.NewReader(decoded))
	if err != nil {
		err = errors.Wrap(err, "failed to parse html")
		return text, err
	}

	var chunks []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedHTMLTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			chunks = append(chunks, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text = collapseLines(strings.Join(chunks, "\n"))
	return text, err
}

// collapseLines trims every line and keeps at most one blank line in a row.
func collapseLines(s string) (out string) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		blank := line == ""
		if blank && prevBlank {
			continue
		}
		kept = append(kept, line)
		prevBlank = blank
	}
	out = strings.TrimSpace(strings.Join(kept, "\n"))
	return out
}
