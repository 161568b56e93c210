package cmd

import (
	"fmt"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/nikogura/resume-agent/templates"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initTemplateDir string

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file at $HOME/.resume-agent/config.yaml
(or the path given with --config). With --template-dir, also write the
default Markdown and HTML templates into that directory.

Example:
  resume-agent init
  resume-agent init --template-dir ./templates`,
	Args: cobra.NoArgs,
	// The config file usually does not exist yet, so only logging is set up.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		logConfig := config.Default().Log
		if logFormat != "" {
			logConfig.Format = logFormat
		}
		if getVerbose() {
			logConfig.Level = "debug"
		}
		logger.InitWithWriter(logConfig, cmd.ErrOrStderr())
		return err
	},
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initTemplateDir, "template-dir", "", "Also write the default templates into this directory")
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to initialize config")
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created config file: %s\n", path)

	if initTemplateDir == "" {
		return err
	}

	var written []string
	written, err = templates.WriteAll(initTemplateDir)
	if err != nil {
		return err
	}
	for _, file := range written {
		_, _ = fmt.Fprintf(out, "Created template: %s\n", file)
	}

	return err
}
