package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var logFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var appConfig config.Config

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-agent",
	Short: "Generate a resume from free-form text",
	Long: `resume-agent reads free-form resume text, extracts a name, summary,
skills and experiences, and renders them through a Jinja2 template.

Input comes from a file (.txt, .pdf, .docx), a URL, or stdin.

Example:
  resume-agent --input notes.txt --output resume.md --name "Jane Doe"
  cat notes.txt | resume-agent --output resume.md
  resume-agent --url https://example.com/cv --auth-user me --auth-pass secret --output resume.md
  resume-agent --input notes.txt --output resume.md --pdf resume.pdf`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

// Execute runs the root command.
func Execute() {
	// Failures before setup still get a usable logger.
	logger.Init(config.Default().Log)

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		logFailure(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logFailure records the error kind of a failed command.
func logFailure(err error) {
	event := logger.Error()
	if kind := resume.KindOf(err); kind != nil {
		event = event.Str("kind", kind.Error())
	}
	event.Msg("command failed")
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-agent/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or pretty (default from config)")
}

// setup loads configuration and initializes logging before any command runs.
func setup(cmd *cobra.Command, args []string) (err error) {
	appConfig, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	logConfig := appConfig.Log
	if logFormat != "" {
		logConfig.Format = logFormat
	}
	if getVerbose() {
		logConfig.Level = "debug"
	}
	logger.InitWithWriter(logConfig, cmd.ErrOrStderr())

	logger.Debug().
		Str("config", getConfigFile()).
		Str("template", appConfig.TemplatePath).
		Str("skills_section", appConfig.SkillsSection).
		Msg("configuration loaded")

	return err
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// commandContext returns the command's context, or a background context when
// the command was executed without one, carrying the configured logger.
func commandContext(cmd *cobra.Command) (ctx context.Context) {
	ctx = cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx)
	return ctx
}
