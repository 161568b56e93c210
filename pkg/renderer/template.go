// Package renderer renders resume records through Jinja2 templates and
// writes the result, optionally converting it to PDF with pandoc.
package renderer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/nikolalohinski/gonja"
	gonjaconfig "github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/exec"
	"github.com/nikolalohinski/gonja/loaders"
)

//nolint:gochecknoglobals // fixed extension sets
var (
	templateSuffixes = []string{".j2", ".jinja2", ".jinja"}
	markupExtensions = map[string]bool{".html": true, ".htm": true, ".xml": true}
)

// Vars are the variables a resume template receives.
type Vars struct {
	Name        string
	Summary     string
	Skills      []string
	Experiences []string
}

// VarsFromRecord copies a record into template variables.
func VarsFromRecord(record resume.Record) (vars Vars) {
	vars = Vars{
		Name:        record.Name,
		Summary:     record.Summary,
		Skills:      record.Skills,
		Experiences: record.Experiences,
	}
	return vars
}

// context builds the template context. An empty name is passed as none so
// templates can test it with {% if name %}.
func (v Vars) context() (ctx map[string]interface{}) {
	var name interface{}
	if v.Name != "" {
		name = v.Name
	}
	skills := v.Skills
	if skills == nil {
		skills = []string{}
	}
	experiences := v.Experiences
	if experiences == nil {
		experiences = []string{}
	}
	ctx = map[string]interface{}{
		"name":        name,
		"summary":     v.Summary,
		"skills":      skills,
		"experiences": experiences,
	}
	return ctx
}

// Render renders the template at templatePath with vars.
//
// A path that cannot be read fails with resume.ErrTemplateNotFound. A
// template that cannot be parsed or executed fails with resume.ErrTemplateSyntax.
func Render(templatePath string, vars Vars) (output string, err error) {
	var source []byte
	source, err = os.ReadFile(templatePath)
	if err != nil {
		err = resume.NewError(resume.ErrTemplateNotFound, "load template", templatePath, err)
		return output, err
	}

	var loader *trimmingLoader
	loader, err = newTrimmingLoader(filepath.Dir(templatePath))
	if err != nil {
		err = resume.NewError(resume.ErrTemplateNotFound, "load template", templatePath, err)
		return output, err
	}

	cfg := gonjaconfig.NewConfig()
	cfg.Autoescape = Autoescape(templatePath)
	env := gonja.NewEnvironment(cfg, loader)

	logger.Debug().
		Str("template", templatePath).
		Bool("autoescape", cfg.Autoescape).
		Msg("rendering template")

	var tpl *exec.Template
	tpl, err = exec.NewTemplate(filepath.Base(templatePath), TrimBlocks(string(source)), env.EvalConfig)
	if err != nil {
		err = resume.NewError(resume.ErrTemplateSyntax, "parse template", templatePath, err)
		return output, err
	}

	output, err = tpl.Execute(vars.context())
	if err != nil {
		err = resume.NewError(resume.ErrTemplateSyntax, "execute template", templatePath, err)
		return output, err
	}

	return output, err
}

// RenderRecord renders a record through the template at templatePath.
func RenderRecord(templatePath string, record resume.Record) (output string, err error) {
	output, err = Render(templatePath, VarsFromRecord(record))
	return output, err
}

// Autoescape reports whether a template renders markup. Template suffixes
// such as .j2 are ignored, so resume.html.j2 is escaped and resume.md.j2 is not.
func Autoescape(templatePath string) (enabled bool) {
	name := strings.ToLower(filepath.Base(templatePath))
	for _, suffix := range templateSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	enabled = markupExtensions[filepath.Ext(name)]
	return enabled
}

// trimmingLoader applies TrimBlocks to included and extended templates.
type trimmingLoader struct {
	*loaders.FilesystemLoader
}

func newTrimmingLoader(root string) (loader *trimmingLoader, err error) {
	var fs *loaders.FilesystemLoader
	fs, err = loaders.NewFileSystemLoader(root)
	if err != nil {
		return loader, err
	}
	loader = &trimmingLoader{FilesystemLoader: fs}
	return loader, err
}

// Get implements loaders.Loader.
func (l *trimmingLoader) Get(path string) (reader io.Reader, err error) {
	var raw io.Reader
	raw, err = l.FilesystemLoader.Get(path)
	if err != nil {
		return reader, err
	}

	var data []byte
	data, err = io.ReadAll(raw)
	if err != nil {
		return reader, err
	}

	reader = bytes.NewReader([]byte(TrimBlocks(string(data))))
	return reader, err
}
