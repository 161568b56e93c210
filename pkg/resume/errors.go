package resume

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced by the pipeline. Match them with errors.Is.
var (
	ErrInputRead        = errors.New("input read failed")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateSyntax   = errors.New("template syntax error")
	ErrOutputWrite      = errors.New("output write failed")
	ErrInvalidRecord    = errors.New("invalid record")
)

//nolint:gochecknoglobals // fixed lookup table
var kinds = []error{
	ErrInputRead,
	ErrTemplateNotFound,
	ErrTemplateSyntax,
	ErrOutputWrite,
	ErrInvalidRecord,
}

// Error carries the failing operation and path along with its kind.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() (msg string) {
	msg = e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() (err error) {
	err = e.Err
	return err
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) (matched bool) {
	matched = target == e.Kind
	return matched
}

// NewError builds an *Error of the given kind.
func NewError(kind error, op, path string, cause error) (err error) {
	err = &Error{
		Op:   op,
		Path: path,
		Kind: kind,
		Err:  cause,
	}
	return err
}

// KindOf returns the kind sentinel err matches, or nil for foreign errors.
func KindOf(err error) (kind error) {
	for _, k := range kinds {
		if errors.Is(err, k) {
			kind = k
			return kind
		}
	}
	return kind
}
