package renderer

import (
	"regexp"
)

//nolint:gochecknoglobals // compiled once
var (
	leadingBlockIndent = regexp.MustCompile(`(?m)^[ \t]+(\{[%#])`)
	blockTrailingLine  = regexp.MustCompile(`(\{%[^}]*?%\}|\{#[^}]*?#\})\r?\n`)
)

// TrimBlocks applies Jinja2's lstrip_blocks and trim_blocks to template
// source: spaces and tabs between the start of a line and a {% or {# tag
// are removed, as is the first newline after a complete block or comment
// tag. Output tags and stray closers in plain text are left alone.
func TrimBlocks(source string) (trimmed string) {
	trimmed = leadingBlockIndent.ReplaceAllString(source, "$1")
	trimmed = blockTrailingLine.ReplaceAllString(trimmed, "$1")
	return trimmed
}
