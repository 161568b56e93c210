package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "newline after block tag",
			input:    "{% if x %}\nyes\n{% endif %}\n",
			expected: "{% if x %}yes\n{% endif %}",
		},
		{
			name:     "indented block tag",
			input:    "a\n    {% for s in skills %}\n  - {{ s }}\n\t{% endfor %}\nb",
			expected: "a\n{% for s in skills %}  - {{ s }}\n{% endfor %}b",
		},
		{
			name:     "comment tag",
			input:    "  {# note #}\ntext",
			expected: "{# note #}text",
		},
		{
			name:     "output tags untouched",
			input:    "  {{ name }}\n",
			expected: "  {{ name }}\n",
		},
		{
			name:     "text before tag keeps indentation",
			input:    "x  {% if y %}\n",
			expected: "x  {% if y %}",
		},
		{
			name:     "crlf",
			input:    "{% if x %}\r\nyes",
			expected: "{% if x %}yes",
		},
		{
			name:     "only first newline removed",
			input:    "{% endif %}\n\nnext",
			expected: "{% endif %}\nnext",
		},
		{
			name:     "closer in plain text",
			input:    "C# is #}\nnext line",
			expected: "C# is #}\nnext line",
		},
		{
			name:     "closer after tag on same line",
			input:    "{% if x %} 100%}\nnext",
			expected: "{% if x %} 100%}\nnext",
		},
		{
			name:     "multiline comment",
			input:    "{# a\nb #}\ntext",
			expected: "{# a\nb #}text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimBlocks(tt.input))
		})
	}
}
