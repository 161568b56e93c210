package cmd

import (
	"strings"

	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderRecordPath string

//nolint:gochecknoglobals // Cobra boilerplate
var renderName string

//nolint:gochecknoglobals // Cobra boilerplate
var renderOutput outputOptions

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a saved resume record",
	Long: `Render a record produced by 'resume-agent extract' through a template.

Example:
  resume-agent render --record record.json --output resume.md
  resume-agent render --record record.yaml --template templates/resume.html.j2 --output resume.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderRecordPath, "record", "", "Record file (.json, .yaml) (required)")
	renderCmd.Flags().StringVar(&renderName, "name", "", "Override the record's display name")
	renderCmd.Flags().StringVar(&renderOutput.path, "output", "", "Output file path (required)")
	renderCmd.Flags().StringVar(&renderOutput.template, "template", "", "Jinja2 template (default from config)")
	renderCmd.Flags().StringVar(&renderOutput.pdf, "pdf", "", "Also convert the rendered output to this PDF path with pandoc")
	renderCmd.Flags().BoolVar(&renderOutput.keepOutput, "keep-output", true, "Keep the rendered file after PDF conversion")
	_ = renderCmd.MarkFlagRequired("record")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	var record resume.Record
	record, err = resume.Load(renderRecordPath)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(renderName); name != "" {
		record.Name = name
	}

	err = renderAndWrite(commandContext(cmd), cmd.OutOrStdout(), record, renderOutput, appConfig)
	return err
}
