package cmd

import (
	"fmt"
	"io"

	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var extractInput inputOptions

//nolint:gochecknoglobals // Cobra boilerplate
var extractFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var extractOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a resume record without rendering it",
	Long: `Extract the name, summary, skills and experiences from resume text and
print them as JSON or YAML. The saved record can be rendered later with
'resume-agent render'.

Example:
  resume-agent extract --input notes.txt
  resume-agent extract --input notes.pdf --format yaml --output record.yaml`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(extractCmd)
	extractInput.register(extractCmd.Flags())
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "Record format: json or yaml (default from --output extension, else json)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "Write the record to this file instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) (err error) {
	ctx := commandContext(cmd)

	var record resume.Record
	record, err = extractInput.readRecord(ctx, appConfig, cmd.InOrStdin())
	if err != nil {
		return err
	}

	err = writeRecord(cmd.OutOrStdout(), record, extractFormat, extractOutput)
	return err
}

// writeRecord encodes record to path, or to out when path is empty.
func writeRecord(out io.Writer, record resume.Record, formatName, path string) (err error) {
	format := resume.FormatJSON
	if path != "" {
		format = resume.FormatForPath(path)
	}
	if formatName != "" {
		format, err = resume.ParseFormat(formatName)
		if err != nil {
			return err
		}
	}

	if path != "" {
		err = resume.Save(record, path, format)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Record written to %s\n", path)
		return err
	}

	var data []byte
	data, err = resume.Marshal(record, format)
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	if err != nil {
		err = errors.Wrap(err, "failed to write record")
		return err
	}
	return err
}
