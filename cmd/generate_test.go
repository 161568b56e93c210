package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Experienced software engineer.
Skills: Go, Rust
- Built system X
- Led team Y
`

func defaultTemplate() (path string) {
	path = filepath.Join("..", "templates", "resume.md.j2")
	return path
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name      string
		flagName  string
		firstName string
		lastName  string
		fallback  string
		expected  string
	}{
		{name: "explicit name wins", flagName: " Jane Doe ", firstName: "A", lastName: "B", expected: "Jane Doe"},
		{name: "first and last", firstName: "Jane", lastName: "Doe", expected: "Jane Doe"},
		{name: "first only", firstName: "Jane", expected: "Jane"},
		{name: "last only", lastName: " Doe", expected: "Doe"},
		{name: "config fallback", fallback: "Config Name", expected: "Config Name"},
		{name: "nothing", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveName(tt.flagName, tt.firstName, tt.lastName, tt.fallback))
		})
	}
}

func TestParseLoginExtra(t *testing.T) {
	fields := parseLoginExtra([]string{"csrf=abc", "remember=yes=please", "broken", "empty="})
	assert.Equal(t, map[string]string{"csrf": "abc", "remember": "yes=please", "empty": ""}, fields)

	assert.Nil(t, parseLoginExtra(nil))
}

func TestResolveTemplate(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.DefaultTemplatePath, resolveTemplate("", cfg))

	cfg.TemplatePath = "custom.j2"
	assert.Equal(t, "custom.j2", resolveTemplate("", cfg))
	assert.Equal(t, "flag.j2", resolveTemplate("flag.j2", cfg))

	assert.Equal(t, config.DefaultTemplatePath, resolveTemplate("", config.Config{}))
}

func TestInputOptionsRequest(t *testing.T) {
	cfg := config.Default()
	cfg.Fetch.AuthPass = "from-env"

	opts := inputOptions{
		url:        "https://example.com/cv",
		authUser:   "alice",
		loginURL:   "https://example.com/login",
		loginExtra: []string{"csrf=abc"},
	}
	req := opts.request(cfg, nil)

	assert.Equal(t, "https://example.com/cv", req.URL)
	assert.Equal(t, "alice", req.Auth.User)
	assert.Equal(t, "from-env", req.Auth.Password)
	assert.Equal(t, "username", req.Login.UserField)
	assert.Equal(t, "password", req.Login.PassField)
	assert.Equal(t, map[string]string{"csrf": "abc"}, req.Login.Extra)
	assert.Equal(t, cfg.Fetch.Timeout, req.Timeout)
	assert.Equal(t, config.DefaultUserAgent, req.UserAgent)

	opts.authPass = "from-flag"
	opts.loginUserField = "email"
	req = opts.request(cfg, nil)
	assert.Equal(t, "from-flag", req.Auth.Password)
	assert.Equal(t, "email", req.Login.UserField)
}

func TestReadRecordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleResume), 0600))

	opts := inputOptions{path: path, firstName: "Jane", lastName: "Doe"}
	record, err := opts.readRecord(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	assert.Equal(t, resume.Record{
		Name:        "Jane Doe",
		Summary:     "Experienced software engineer.",
		Skills:      []string{"Go", "Rust"},
		Experiences: []string{"Built system X", "Led team Y"},
	}, record)
}

func TestReadRecordStickyPolicy(t *testing.T) {
	opts := inputOptions{skillsSection: "sticky"}
	record, err := opts.readRecord(context.Background(), config.Default(), strings.NewReader(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust", "Built system X", "Led team Y"}, record.Skills)
	assert.Empty(t, record.Experiences)
}

func TestReadRecordInvalidPolicy(t *testing.T) {
	opts := inputOptions{skillsSection: "sometimes"}
	_, err := opts.readRecord(context.Background(), config.Default(), strings.NewReader(sampleResume))
	assert.Error(t, err)
}

func TestReadRecordFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>Skills: Go</p><p>- Shipped v1</p></body></html>"))
	}))
	defer server.Close()

	opts := inputOptions{url: server.URL}
	record, err := opts.readRecord(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go"}, record.Skills)
	assert.Equal(t, []string{"Shipped v1"}, record.Experiences)
}

func TestRenderAndWrite(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "resume.md")
	record := resume.Record{
		Name:        "Jane Doe",
		Skills:      []string{"Go", "Rust"},
		Experiences: []string{"Built system X"},
	}

	var out bytes.Buffer
	err := renderAndWrite(context.Background(), &out, record, outputOptions{path: outPath, template: defaultTemplate()}, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "Resume written to "+outPath+"\n", out.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	for _, want := range []string{"# Jane Doe", "- Go", "- Rust", "- Built system X"} {
		assert.Contains(t, string(data), want)
	}
}

func TestRenderAndWriteMissingTemplate(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "resume.md")

	var out bytes.Buffer
	err := renderAndWrite(context.Background(), &out, resume.Record{}, outputOptions{path: outPath, template: "/nonexistent.j2"}, config.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, resume.ErrTemplateNotFound))

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, out.String())
}

func TestRenderAndWriteMissingOutputDir(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "missing", "resume.md")

	var out bytes.Buffer
	err := renderAndWrite(context.Background(), &out, resume.Record{}, outputOptions{path: outPath, template: defaultTemplate()}, config.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, resume.ErrOutputWrite))
}

func TestRootCommandPipeline(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	inPath := filepath.Join(tmpDir, "notes.txt")
	outPath := filepath.Join(tmpDir, "resume.md")
	require.NoError(t, os.WriteFile(inPath, []byte(sampleResume), 0600))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--input", inPath, "--output", outPath, "--name", "Test User", "--template", defaultTemplate()})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Resume written to "+outPath+"\n", stdout.String())
	assert.Contains(t, stderr.String(), "resume written")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Test User")
	assert.Contains(t, string(data), "- Led team Y")
}
