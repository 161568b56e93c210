package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/extractor"
	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/renderer"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/nikogura/resume-agent/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// inputOptions are the flags shared by every command that reads resume text.
type inputOptions struct {
	path           string
	url            string
	authUser       string
	authPass       string
	loginURL       string
	loginUserField string
	loginPassField string
	loginExtra     []string
	name           string
	firstName      string
	lastName       string
	skillsSection  string
}

// outputOptions are the flags controlling what the pipeline writes.
type outputOptions struct {
	path       string
	template   string
	pdf        string
	keepOutput bool
}

//nolint:gochecknoglobals // Cobra boilerplate
var rootInput inputOptions

//nolint:gochecknoglobals // Cobra boilerplate
var rootOutput outputOptions

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootInput.register(rootCmd.Flags())
	rootCmd.Flags().StringVar(&rootOutput.path, "output", "", "Output file path (required)")
	rootCmd.Flags().StringVar(&rootOutput.template, "template", "", "Jinja2 template (default from config, else "+config.DefaultTemplatePath+")")
	rootCmd.Flags().StringVar(&rootOutput.pdf, "pdf", "", "Also convert the rendered output to this PDF path with pandoc")
	rootCmd.Flags().BoolVar(&rootOutput.keepOutput, "keep-output", true, "Keep the rendered file after PDF conversion")
	_ = rootCmd.MarkFlagRequired("output")
}

func (o *inputOptions) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.path, "input", "", "Input file (.txt, .pdf, .docx); stdin when neither --input nor --url is given")
	flags.StringVar(&o.url, "url", "", "Fetch input text from a URL")
	flags.StringVar(&o.authUser, "auth-user", "", "Username for HTTP basic auth or form login")
	flags.StringVar(&o.authPass, "auth-pass", "", "Password for HTTP basic auth or form login (or "+config.EnvAuthPass+")")
	flags.StringVar(&o.loginURL, "login-url", "", "Login form URL to POST credentials to before fetching --url")
	flags.StringVar(&o.loginUserField, "login-user-field", "", "Form field name for the username (default from config)")
	flags.StringVar(&o.loginPassField, "login-pass-field", "", "Form field name for the password (default from config)")
	flags.StringArrayVar(&o.loginExtra, "login-extra", nil, "Additional login form field as key=value (repeatable)")
	flags.StringVar(&o.name, "name", "", "Display name for the resume")
	flags.StringVar(&o.firstName, "first-name", "", "First name, combined with --last-name when --name is empty")
	flags.StringVar(&o.lastName, "last-name", "", "Last name, combined with --first-name when --name is empty")
	flags.StringVar(&o.skillsSection, "skills-section", "", "Skills section policy: inline or sticky (default from config)")
}

// request builds a source request from the flags, filling gaps from cfg.
func (o *inputOptions) request(cfg config.Config, stdin io.Reader) (req source.Request) {
	authPass := o.authPass
	if authPass == "" {
		authPass = cfg.Fetch.AuthPass
	}

	req = source.Request{
		Path:  o.path,
		URL:   o.url,
		Stdin: stdin,
		Auth: source.Auth{
			User:     o.authUser,
			Password: authPass,
		},
		Login: source.Login{
			URL:       o.loginURL,
			UserField: firstNonEmpty(o.loginUserField, cfg.Fetch.LoginUserField),
			PassField: firstNonEmpty(o.loginPassField, cfg.Fetch.LoginPassField),
			Extra:     parseLoginExtra(o.loginExtra),
		},
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
	}
	return req
}

// newExtractor builds an extractor from the flags, filling gaps from cfg.
func (o *inputOptions) newExtractor(cfg config.Config) (e *extractor.Extractor, err error) {
	policy := cfg.SectionPolicy()
	if o.skillsSection != "" {
		policy, err = extractor.ParseSectionPolicy(o.skillsSection)
		if err != nil {
			return e, err
		}
	}

	e = extractor.New(
		extractor.WithSectionPolicy(policy),
		extractor.WithSummarySeparator(cfg.SummarySeparator),
		extractor.WithName(resolveName(o.name, o.firstName, o.lastName, cfg.Name)),
	)
	return e, err
}

// readRecord reads the input text and extracts a record from it.
func (o *inputOptions) readRecord(ctx context.Context, cfg config.Config, stdin io.Reader) (record resume.Record, err error) {
	var e *extractor.Extractor
	e, err = o.newExtractor(cfg)
	if err != nil {
		return record, err
	}

	var text string
	text, err = source.Read(ctx, o.request(cfg, stdin))
	if err != nil {
		return record, err
	}

	record = e.Extract(text)

	logger.Debug().
		Int("skills", len(record.Skills)).
		Int("experiences", len(record.Experiences)).
		Int("summary_chars", len(record.Summary)).
		Msg("extracted record")

	return record, err
}

// resolveName picks the display name: an explicit name, then first and last
// name joined by a space, then the configured name.
func resolveName(name, firstName, lastName, fallback string) (resolved string) {
	resolved = strings.TrimSpace(name)
	if resolved != "" {
		return resolved
	}

	parts := make([]string, 0, 2)
	for _, part := range []string{firstName, lastName} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	resolved = strings.Join(parts, " ")
	if resolved != "" {
		return resolved
	}

	resolved = strings.TrimSpace(fallback)
	return resolved
}

// parseLoginExtra turns key=value pairs into form fields. Pairs without "="
// are skipped with a warning.
func parseLoginExtra(pairs []string) (fields map[string]string) {
	if len(pairs) == 0 {
		return fields
	}

	fields = make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			logger.Warn().Str("value", pair).Msg("ignoring --login-extra without '='")
			continue
		}
		fields[key] = value
	}
	return fields
}

// resolveTemplate picks the template: the flag, then the config value.
func resolveTemplate(flagValue string, cfg config.Config) (path string) {
	path = firstNonEmpty(flagValue, cfg.TemplatePath, config.DefaultTemplatePath)
	return path
}

func firstNonEmpty(values ...string) (result string) {
	for _, v := range values {
		if v != "" {
			result = v
			return result
		}
	}
	return result
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := commandContext(cmd)

	var record resume.Record
	record, err = rootInput.readRecord(ctx, appConfig, cmd.InOrStdin())
	if err != nil {
		return err
	}

	err = renderAndWrite(ctx, cmd.OutOrStdout(), record, rootOutput, appConfig)
	return err
}

// renderAndWrite renders record, writes it to opts.path and optionally
// converts it to PDF.
func renderAndWrite(ctx context.Context, out io.Writer, record resume.Record, opts outputOptions, cfg config.Config) (err error) {
	templatePath := resolveTemplate(opts.template, cfg)

	var content string
	content, err = renderer.RenderRecord(templatePath, record)
	if err != nil {
		return err
	}

	err = renderer.WriteOutput(content, opts.path)
	if err != nil {
		return err
	}

	logger.Info().Str("path", opts.path).Str("template", templatePath).Int("bytes", len(content)).Msg("resume written")
	_, _ = fmt.Fprintf(out, "Resume written to %s\n", opts.path)

	if opts.pdf == "" {
		return err
	}

	err = renderer.RenderPDF(ctx, opts.path, opts.pdf, renderer.PandocOptions{
		TemplatePath: cfg.Pandoc.TemplatePath,
		ClassFile:    cfg.Pandoc.ClassFile,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to render PDF")
		return err
	}

	_, _ = fmt.Fprintf(out, "PDF written to %s\n", opts.pdf)

	if !opts.keepOutput {
		err = renderer.CleanupFiles(opts.path)
		if err != nil {
			logger.Warn().Err(err).Str("path", opts.path).Msg("failed to clean up rendered output")
			err = nil
		}
	}

	return err
}
