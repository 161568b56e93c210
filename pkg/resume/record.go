package resume

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Unique returns items with duplicates removed, keeping first occurrences in order.
func Unique(items []string) (out []string) {
	out = make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Normalize replaces nil slices with empty ones and removes duplicate entries.
func (r *Record) Normalize() {
	r.Skills = Unique(r.Skills)
	r.Experiences = Unique(r.Experiences)
}

// FormatForPath picks a format from a file extension, defaulting to JSON.
func FormatForPath(path string) (format Format) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		format = FormatJSON
	}
	return format
}

// ParseFormat validates a format name.
func ParseFormat(name string) (format Format, err error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		format = FormatJSON
	case FormatYAML, "yml":
		format = FormatYAML
	default:
		err = errors.Errorf("unknown record format '%s': must be 'json' or 'yaml'", name)
	}
	return format, err
}

// Marshal encodes the record in the given format.
func Marshal(record Record, format Format) (data []byte, err error) {
	record.Normalize()
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(record)
	default:
		data, err = json.MarshalIndent(record, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to encode record as %s", format)
		return data, err
	}
	return data, err
}

// Unmarshal decodes a record in the given format.
// The document is checked against the record schema first, so a skills entry
// that is not a string is rejected rather than coerced.
func Unmarshal(data []byte, format Format) (record Record, err error) {
	err = Validate(data, format)
	if err != nil {
		err = NewError(ErrInvalidRecord, "decode", "", err)
		return record, err
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &record)
	default:
		err = json.Unmarshal(data, &record)
	}
	if err != nil {
		err = NewError(ErrInvalidRecord, "decode", "", err)
		return record, err
	}
	record.Normalize()
	return record, err
}

// Load reads a record from a JSON or YAML file.
func Load(path string) (record Record, err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = NewError(ErrInputRead, "load record", path, err)
		return record, err
	}

	record, err = Unmarshal(fileData, FormatForPath(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to parse record file: %s", path)
		return record, err
	}

	return record, err
}

// Save writes a record to path in the given format.
func Save(record Record, path string, format Format) (err error) {
	var data []byte
	data, err = Marshal(record, format)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = NewError(ErrOutputWrite, "save record", path, err)
		return err
	}

	return err
}
