// Package extractor turns free-form resume text into a resume.Record.
//
// Extraction runs in two stages. Classify tags every trimmed line as blank,
// skills marker, bullet or plain text without looking at its neighbours.
// A Reducer then folds the tagged lines into summary, skills and
// experiences, tracking whether it is inside a skills section.
package extractor

import (
	"strings"

	"github.com/nikogura/resume-agent/pkg/resume"
	"github.com/pkg/errors"
)

// DefaultSummarySeparator joins summary lines.
const DefaultSummarySeparator = "\n"

// SectionPolicy decides how long a skills section lasts once a marker is seen.
type SectionPolicy int

const (
	// SectionInline closes the section right after a marker that carries its
	// own items ("skills: Go, Rust"). A bare marker ("Skills") opens a section
	// that lasts until the end of the input.
	SectionInline SectionPolicy = iota
	// SectionSticky keeps every skills section open until the end of the input.
	SectionSticky
)

func (p SectionPolicy) String() (name string) {
	switch p {
	case SectionSticky:
		name = "sticky"
	default:
		name = "inline"
	}
	return name
}

// ParseSectionPolicy maps "inline" or "sticky" to a SectionPolicy.
func ParseSectionPolicy(name string) (policy SectionPolicy, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "inline":
		policy = SectionInline
	case "sticky":
		policy = SectionSticky
	default:
		err = errors.Errorf("invalid skills section policy '%s': must be 'inline' or 'sticky'", name)
	}
	return policy, err
}

// Extractor holds extraction settings. The zero value is not usable; call New.
type Extractor struct {
	policy    SectionPolicy
	separator string
	name      string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSectionPolicy sets the skills section policy.
func WithSectionPolicy(policy SectionPolicy) (opt Option) {
	opt = func(e *Extractor) {
		e.policy = policy
	}
	return opt
}

// WithSummarySeparator sets the string placed between summary lines.
func WithSummarySeparator(separator string) (opt Option) {
	opt = func(e *Extractor) {
		e.separator = separator
	}
	return opt
}

// WithName sets the display name copied into every record.
func WithName(name string) (opt Option) {
	opt = func(e *Extractor) {
		e.name = strings.TrimSpace(name)
	}
	return opt
}

// New creates an Extractor.
func New(opts ...Option) (e *Extractor) {
	e = &Extractor{
		policy:    SectionInline,
		separator: DefaultSummarySeparator,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract classifies raw and reduces it into a record. It accepts any string.
func (e *Extractor) Extract(raw string) (record resume.Record) {
	reducer := NewReducer(e.policy, e.separator)
	for _, line := range ClassifyText(raw) {
		reducer.Feed(line)
	}
	record = reducer.Record(e.name)
	return record
}

// Extract is a shorthand for New(opts...).Extract(raw).
func Extract(raw string, opts ...Option) (record resume.Record) {
	record = New(opts...).Extract(raw)
	return record
}
