// Package templates embeds the default resume templates.
package templates

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Markdown and HTML are the file names of the default templates.
const (
	Markdown = "resume.md.j2"
	HTML     = "resume.html.j2"
)

//nolint:gochecknoglobals // embedded files
//go:embed *.j2
var files embed.FS

// Names lists the embedded templates.
func Names() (names []string) {
	names = []string{Markdown, HTML}
	return names
}

// Read returns an embedded template by file name.
func Read(name string) (content []byte, err error) {
	content, err = files.ReadFile(name)
	if err != nil {
		err = errors.Wrapf(err, "no embedded template named %s", name)
		return content, err
	}
	return content, err
}

// WriteAll copies every embedded template into dir, creating it if needed.
// Existing files are left untouched and not reported.
func WriteAll(dir string) (written []string, err error) {
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create template directory: %s", dir)
		return written, err
	}

	for _, name := range Names() {
		path := filepath.Join(dir, name)
		_, statErr := os.Stat(path)
		if statErr == nil {
			continue
		}

		var content []byte
		content, err = Read(name)
		if err != nil {
			return written, err
		}

		err = os.WriteFile(path, content, 0600)
		if err != nil {
			err = errors.Wrapf(err, "failed to write template: %s", path)
			return written, err
		}
		written = append(written, path)
	}

	return written, err
}
