package renderer

import (
	"os"
	"path/filepath"

	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
)

// WriteOutput writes content to outputPath through a temporary file in the
// same directory, so a failed write never leaves a partial file behind.
// The parent directory must already exist.
func WriteOutput(content, outputPath string) (err error) {
	dir := filepath.Dir(outputPath)

	var tmp *os.File
	tmp, err = os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		err = resume.NewError(resume.ErrOutputWrite, "create output", outputPath, err)
		return err
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	_, err = tmp.WriteString(content)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		err = resume.NewError(resume.ErrOutputWrite, "write output", outputPath, err)
		return err
	}

	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		err = resume.NewError(resume.ErrOutputWrite, "write output", outputPath, err)
		return err
	}

	err = os.Rename(tmpPath, outputPath)
	if err != nil {
		err = resume.NewError(resume.ErrOutputWrite, "write output", outputPath, err)
		return err
	}

	return err
}

// CleanupFiles removes intermediate files, such as rendered markdown after
// PDF conversion.
func CleanupFiles(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove file: %s", path)
			return err
		}
	}
	return err
}
