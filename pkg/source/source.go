// Package source resolves the raw resume text from a file, a URL or stdin.
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/resume"
)

// Auth holds credentials for basic auth or form login.
type Auth struct {
	User     string
	Password string
}

// Login describes a form login performed before fetching a URL.
type Login struct {
	URL       string
	UserField string
	PassField string
	Extra     map[string]string
}

// Request selects where the raw text comes from. Path wins over URL, URL
// wins over Stdin.
type Request struct {
	Path      string
	URL       string
	Stdin     io.Reader
	Auth      Auth
	Login     Login
	Timeout   time.Duration
	UserAgent string
}

// Read returns the raw text described by req. Every failure is a
// resume.ErrInputRead.
func Read(ctx context.Context, req Request) (text string, err error) {
	switch {
	case req.Path != "":
		text, err = readFile(req.Path)
	case req.URL != "":
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, req.Timeout)
			defer cancel()
		}
		text, err = fetchURL(ctx, req)
	case req.Stdin != nil:
		text, err = readStdin(req.Stdin)
	default:
		err = resume.NewError(resume.ErrInputRead, "read input", "", errNoInput)
	}
	return text, err
}

func readFile(path string) (text string, err error) {
	logger.Debug().Str("path", path).Msg("reading input file")

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "read file", path, err)
		return text, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		text, err = decodeText(data, "")
	}
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "read file", path, err)
		return text, err
	}

	return text, err
}

func readStdin(r io.Reader) (text string, err error) {
	var data []byte
	data, err = io.ReadAll(r)
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "read stdin", "-", err)
		return text, err
	}

	text, err = decodeText(data, "")
	if err != nil {
		err = resume.NewError(resume.ErrInputRead, "read stdin", "-", err)
		return text, err
	}
	return text, err
}
