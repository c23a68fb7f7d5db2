package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		Language      string `toml:"language"`
		SelfDirectory string `toml:"self_directory"`

		GitHub         GitHubConfig         `toml:"github"`
		AI             AIConfig             `toml:"ai"`
		Jira           JiraConfig           `toml:"jira"`
		TestManagement TestManagementConfig `toml:"test_management"`
		Email          EmailConfig          `toml:"email"`
	}

	GitHubConfig struct {
		Token string `toml:"token"`
	}

	AIConfig struct {
		Provider AI           `toml:"provider"`
		OpenAI   OpenAIConfig `toml:"openai"`
		Gemini   GeminiConfig `toml:"gemini"`
	}

	OpenAIConfig struct {
		APIKey  string `toml:"api_key"`
		Model   Model  `toml:"model"`
		BaseURL string `toml:"base_url"`
	}

	GeminiConfig struct {
		APIKey string `toml:"api_key"`
		Model  Model  `toml:"model"`
	}

	JiraConfig struct {
		BaseURL  string `toml:"base_url"`
		Email    string `toml:"email"`
		APIToken string `toml:"api_token"`
	}

	TestManagementConfig struct {
		BaseURL   string `toml:"base_url"`
		APIKey    string `toml:"api_key"`
		ProjectID string `toml:"project_id"`
	}

	EmailConfig struct {
		Host      string `toml:"host"`
		Port      string `toml:"port"`
		User      string `toml:"user"`
		Password  string `toml:"password"`
		From      string `toml:"from"`
		Recipient string `toml:"recipient"`
	}
)

const (
	defaultLang          = "en"
	defaultSelfDirectory = "pr-risk-agent"
	defaultSMTPPort      = "587"
)

// envBindings maps environment variables onto config fields. Non-empty values win over the file.
var envBindings = []struct {
	name  string
	field func(*Config) *string
}{
	{"MATERISK_LANGUAGE", func(c *Config) *string { return &c.Language }},
	{"MATERISK_SELF_DIRECTORY", func(c *Config) *string { return &c.SelfDirectory }},
	{"GITHUB_TOKEN", func(c *Config) *string { return &c.GitHub.Token }},
	{"AI_PROVIDER", func(c *Config) *string { return (*string)(&c.AI.Provider) }},
	{"OPENAI_API_KEY", func(c *Config) *string { return &c.AI.OpenAI.APIKey }},
	{"OPENAI_MODEL", func(c *Config) *string { return (*string)(&c.AI.OpenAI.Model) }},
	{"OPENAI_BASE_URL", func(c *Config) *string { return &c.AI.OpenAI.BaseURL }},
	{"GEMINI_API_KEY", func(c *Config) *string { return &c.AI.Gemini.APIKey }},
	{"GEMINI_MODEL", func(c *Config) *string { return (*string)(&c.AI.Gemini.Model) }},
	{"JIRA_URL", func(c *Config) *string { return &c.Jira.BaseURL }},
	{"JIRA_EMAIL", func(c *Config) *string { return &c.Jira.Email }},
	{"JIRA_API_TOKEN", func(c *Config) *string { return &c.Jira.APIToken }},
	{"TEST_MANAGEMENT_URL", func(c *Config) *string { return &c.TestManagement.BaseURL }},
	{"TEST_MANAGEMENT_API_KEY", func(c *Config) *string { return &c.TestManagement.APIKey }},
	{"TEST_MANAGEMENT_PROJECT_ID", func(c *Config) *string { return &c.TestManagement.ProjectID }},
	{"SMTP_HOST", func(c *Config) *string { return &c.Email.Host }},
	{"SMTP_PORT", func(c *Config) *string { return &c.Email.Port }},
	{"SMTP_USER", func(c *Config) *string { return &c.Email.User }},
	{"SMTP_PASSWORD", func(c *Config) *string { return &c.Email.Password }},
	{"SMTP_FROM", func(c *Config) *string { return &c.Email.From }},
	{"REPORT_RECIPIENT", func(c *Config) *string { return &c.Email.Recipient }},
}

// LoadConfig builds the configuration from defaults, the optional TOML file at path
// and the environment (a local .env file is loaded first when present).
// It does not validate; call Validate before running the pipeline.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	applyEnv(cfg, os.Getenv)
	cfg.applyDefaults()

	return cfg, nil
}

// Default returns a config holding only default values.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func applyEnv(cfg *Config, getenv func(string) string) {
	for _, b := range envBindings {
		if v := strings.TrimSpace(getenv(b.name)); v != "" {
			*b.field(cfg) = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = defaultLang
	}
	c.Language, _ = GetLocaleConfig(strings.ToLower(c.Language))
	if c.SelfDirectory == "" {
		c.SelfDirectory = defaultSelfDirectory
	}
	if c.AI.Provider == "" {
		c.AI.Provider = AIOpenAI
	}
	c.AI.Provider = AI(strings.ToLower(string(c.AI.Provider)))
	if c.AI.OpenAI.Model == "" {
		c.AI.OpenAI.Model = DefaultModel(AIOpenAI)
	}
	if c.AI.Gemini.Model == "" {
		c.AI.Gemini.Model = DefaultModel(AIGemini)
	}
	if c.Email.Port == "" {
		c.Email.Port = defaultSMTPPort
	}
	if c.Email.From == "" {
		c.Email.From = c.Email.User
	}
}

// Validate checks the settings the pipeline cannot run without: the GitHub token
// and the key of the active AI provider.
func (c *Config) Validate() error {
	if !IsSupportedAI(c.AI.Provider) {
		return domainErrors.ErrUnknownAIProvider.WithContext("provider", string(c.AI.Provider))
	}

	var missing []string
	if c.GitHub.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.ActiveAIKey() == "" {
		switch c.AI.Provider {
		case AIGemini:
			missing = append(missing, "GEMINI_API_KEY")
		default:
			missing = append(missing, "OPENAI_API_KEY")
		}
	}

	if len(missing) > 0 {
		return domainErrors.NewConfigurationError(
			fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", ")),
			missing...,
		)
	}
	return nil
}

// ActiveAIKey returns the API key of the configured provider.
func (c *Config) ActiveAIKey() string {
	switch c.AI.Provider {
	case AIGemini:
		return c.AI.Gemini.APIKey
	case AIOpenAI:
		return c.AI.OpenAI.APIKey
	default:
		return ""
	}
}

func (c *Config) HasJira() bool {
	return c.Jira.BaseURL != "" && c.Jira.Email != "" && c.Jira.APIToken != ""
}

func (c *Config) HasTestManagement() bool {
	return c.TestManagement.BaseURL != "" && c.TestManagement.APIKey != "" && c.TestManagement.ProjectID != ""
}

func (c *Config) HasEmail() bool {
	return c.Email.Host != "" && c.Email.Port != "" && c.Email.User != "" &&
		c.Email.Password != "" && c.Email.Recipient != ""
}
