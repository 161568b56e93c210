package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
)

// PandocOptions holds optional LaTeX settings for PDF conversion.
type PandocOptions struct {
	TemplatePath string
	ClassFile    string
}

// RenderPDF converts a rendered markdown or HTML file to PDF using pandoc.
func RenderPDF(ctx context.Context, inputPath, outputPath string, opts PandocOptions) (err error) {
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	err = validateFiles(inputPath, opts.TemplatePath, opts.ClassFile)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	_, err = os.Stat(outputDir)
	if err != nil {
		err = resume.NewError(resume.ErrOutputWrite, "render pdf", outputPath, err)
		return err
	}

	args := pandocArgs(inputPath, outputPath, opts)
	cmd := exec.CommandContext(ctx, "pandoc", args...)

	// TEXINPUTS must include the directory holding the .cls file.
	if opts.ClassFile != "" {
		texinputs := filepath.Dir(opts.ClassFile) + ":" + os.Getenv("TEXINPUTS")
		cmd.Env = append(os.Environ(), "TEXINPUTS="+texinputs)
	}

	logger.Ctx(ctx).Debug().Strs("args", args).Msg("running pandoc")

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(outputPath)
		err = resume.NewError(resume.ErrOutputWrite, "render pdf", outputPath, errors.Wrapf(err, "pandoc failed: %s", string(output)))
		return err
	}

	return err
}

func pandocArgs(inputPath, outputPath string, opts PandocOptions) (args []string) {
	from := "markdown"
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".html", ".htm":
		from = "html"
	}

	args = []string{"-f", from, "-o", outputPath}
	if opts.TemplatePath != "" {
		args = append(args, "--template", opts.TemplatePath)
	}
	args = append(args, inputPath)
	return args
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}

// validateFiles checks that the given files exist. Empty paths are skipped.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	err = nil
	return err
}
