package resume

// Record is the structured form of a resume extracted from free-form text.
type Record struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary     string   `json:"summary" yaml:"summary"`
	Skills      []string `json:"skills" yaml:"skills"`
	Experiences []string `json:"experiences" yaml:"experiences"`
}

// Format names a record serialization.
type Format string

const (
	// FormatJSON encodes records as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes records as YAML.
	FormatYAML Format = "yaml"
)
