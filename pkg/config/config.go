package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nikogura/resume-agent/pkg/extractor"
	"github.com/nikogura/resume-agent/pkg/logger"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTemplatePath is resolved against the working directory.
	DefaultTemplatePath = "templates/resume.md.j2"
	// DefaultFetchTimeout bounds URL input retrieval.
	DefaultFetchTimeout = 60 * time.Second
	// DefaultUserAgent is sent with URL requests.
	DefaultUserAgent = "resume-agent/1.0"
	// DirName is the per-user config directory under $HOME.
	DirName = ".resume-agent"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Environment variables that override file settings.
const (
	EnvTemplate = "RESUME_AGENT_TEMPLATE"
	EnvAuthPass = "RESUME_AGENT_AUTH_PASS"
	EnvLogLevel = "RESUME_AGENT_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	Name             string        `yaml:"name,omitempty"`
	TemplatePath     string        `yaml:"template_path"`
	SkillsSection    string        `yaml:"skills_section"`
	SummarySeparator string        `yaml:"summary_separator"`
	Fetch            FetchConfig   `yaml:"fetch"`
	Pandoc           PandocConfig  `yaml:"pandoc,omitempty"`
	Log              logger.Config `yaml:"log"`
}

// FetchConfig holds settings for URL input.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	AuthPass       string        `yaml:"auth_pass,omitempty"`
	LoginUserField string        `yaml:"login_user_field"`
	LoginPassField string        `yaml:"login_pass_field"`
}

// PandocConfig holds optional pandoc settings for PDF output.
type PandocConfig struct {
	TemplatePath string `yaml:"template_path,omitempty"`
	ClassFile    string `yaml:"class_file,omitempty"`
}

// Default returns a configuration with every default filled in.
func Default() (cfg Config) {
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns $HOME/.resume-agent/config.yaml.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, DirName, FileName)
	return path, err
}

// SectionPolicy returns the parsed skills section policy.
func (c *Config) SectionPolicy() (policy extractor.SectionPolicy) {
	policy, _ = extractor.ParseSectionPolicy(c.SkillsSection) // checked in Validate
	return policy
}

// Load reads configuration from file with environment variable overrides.
// An empty configPath means the default location, which may be absent.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-agent init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvTemplate); v != "" {
		cfg.TemplatePath = v
	}
	if v := os.Getenv(EnvAuthPass); v != "" {
		cfg.Fetch.AuthPass = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks enumerated settings and fills in defaults.
func (c *Config) Validate() (err error) {
	_, err = extractor.ParseSectionPolicy(c.SkillsSection)
	if err != nil {
		return err
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		err = errors.Errorf("invalid log format '%s': must be 'json' or 'pretty'", c.Log.Format)
		return err
	}

	if c.Fetch.Timeout < 0 {
		err = errors.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
		return err
	}

	c.applyDefaults()

	return err
}

// applyDefaults fills every unset field with its default.
func (c *Config) applyDefaults() {
	if c.SkillsSection == "" {
		c.SkillsSection = extractor.SectionInline.String()
	}
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}
	if c.SummarySeparator == "" {
		c.SummarySeparator = extractor.DefaultSummarySeparator
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.LoginUserField == "" {
		c.Fetch.LoginUserField = "username"
	}
	if c.Fetch.LoginPassField == "" {
		c.Fetch.LoginPassField = "password"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "pretty"
	}
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	defaultConfig := Default()

	var data []byte
	data, err = yaml.Marshal(defaultConfig)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
