package resume

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr bool
	}{
		{name: "full json", data: `{"name":"N","summary":"S","skills":["Go"],"experiences":["E"]}`, format: FormatJSON},
		{name: "null name and lists", data: `{"name":null,"skills":null,"experiences":null}`, format: FormatJSON},
		{name: "unknown keys allowed", data: `{"summary":"S","email":"x@example.com"}`, format: FormatJSON},
		{name: "non-string skill", data: `{"skills":["Go", 3]}`, format: FormatJSON, wantErr: true},
		{name: "skills not a list", data: `{"skills":"Go, Rust"}`, format: FormatJSON, wantErr: true},
		{name: "top level array", data: `["Go"]`, format: FormatJSON, wantErr: true},
		{name: "broken json", data: `{`, format: FormatJSON, wantErr: true},
		{name: "yaml", data: "name: N\nskills:\n  - Go\n", format: FormatYAML},
		{name: "empty yaml", data: "", format: FormatYAML},
		{name: "yaml numeric experience", data: "experiences:\n  - 2019\n", format: FormatYAML, wantErr: true},
		{name: "yaml scalar document", data: "just text\n", format: FormatYAML, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUnmarshalRejectsSchemaViolation(t *testing.T) {
	_, err := Unmarshal([]byte(`{"skills":[1,2]}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRecord))
}

func TestUnmarshalEmptyYAML(t *testing.T) {
	record, err := Unmarshal(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Record{Skills: []string{}, Experiences: []string{}}, record)
}
