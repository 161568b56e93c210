package renderer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFiles(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	err := os.WriteFile(existingFile, []byte("test"), 0600)
	require.NoError(t, err)

	assert.NoError(t, validateFiles(existingFile))
	assert.NoError(t, validateFiles(existingFile, ""))
	assert.Error(t, validateFiles("/nonexistent/file.txt"))
	assert.Error(t, validateFiles(existingFile, "/nonexistent/file.txt"))
}

func TestPandocArgs(t *testing.T) {
	args := pandocArgs("out/resume.md", "out/resume.pdf", PandocOptions{})
	assert.Equal(t, []string{"-f", "markdown", "-o", "out/resume.pdf", "out/resume.md"}, args)

	args = pandocArgs("resume.HTML", "resume.pdf", PandocOptions{TemplatePath: "tpl.latex"})
	assert.Equal(t, []string{"-f", "html", "-o", "resume.pdf", "--template", "tpl.latex", "resume.HTML"}, args)
}

func TestRenderPDFMissingInput(t *testing.T) {
	err := checkPandocExists(context.Background())
	if err != nil {
		t.Skip("Pandoc not installed, skipping test")
	}

	err = RenderPDF(context.Background(), "/nonexistent/resume.md", filepath.Join(t.TempDir(), "resume.pdf"), PandocOptions{})
	assert.Error(t, err)
}

func TestCheckPandocExists(t *testing.T) {
	// This test will pass if pandoc is installed, skip otherwise.
	err := checkPandocExists(context.Background())
	if err != nil {
		t.Skip("Pandoc not installed, skipping test")
	}
}
