package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigFile = "ghrefs.toml"
	DefaultUserAgent  = "ghrefs"
	DefaultAPIURL     = "https://api.github.com"
	DefaultRawURL     = "https://raw.githubusercontent.com"
	DefaultTimeout    = 30 * time.Second
)

// Environment variables consulted by ApplyEnv.
const (
	EnvUser = "GITHUB_USER"
	EnvPass = "GITHUB_PASS"
)

// tokenEnvVars lists the environment variables checked for a GitHub token,
// in priority order.
var tokenEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
}

// Config holds everything the client needs to talk to GitHub.
// It is passed to constructors; nothing reads it from package state.
type Config struct {
	Token     string   `toml:"token,omitempty"`
	User      string   `toml:"user,omitempty"`
	Pass      string   `toml:"pass,omitempty"`
	UserAgent string   `toml:"user_agent,omitempty"`
	APIURL    string   `toml:"api_url,omitempty"`
	RawURL    string   `toml:"raw_url,omitempty"`
	Timeout   Duration `toml:"timeout,omitempty"`
}

// Duration is a time.Duration that decodes from TOML strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with every optional field filled in.
func Default() Config {
	return Config{
		UserAgent: DefaultUserAgent,
		APIURL:    DefaultAPIURL,
		RawURL:    DefaultRawURL,
		Timeout:   Duration{DefaultTimeout},
	}
}

// Load reads a TOML config file and layers it over the defaults.
// A missing file is an error matching fs.ErrNotExist; callers that treat
// DefaultConfigFile as optional check for it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Merge(file)
	return cfg, nil
}

// Merge copies every non-zero field of other into c.
func (c *Config) Merge(other Config) {
	if other.Token != "" {
		c.Token = other.Token
	}
	if other.User != "" {
		c.User = other.User
	}
	if other.Pass != "" {
		c.Pass = other.Pass
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.APIURL != "" {
		c.APIURL = other.APIURL
	}
	if other.RawURL != "" {
		c.RawURL = other.RawURL
	}
	if other.Timeout.Duration > 0 {
		c.Timeout = other.Timeout
	}
}

// ApplyEnv fills credentials from the environment where the config left
// them empty.
func (c *Config) ApplyEnv() {
	if c.Token == "" {
		c.Token = TokenFromEnv()
	}
	if c.User == "" {
		c.User = os.Getenv(EnvUser)
	}
	if c.Pass == "" {
		c.Pass = os.Getenv(EnvPass)
	}
}

// TokenFromEnv returns the first non-empty token from GITHUB_TOKEN or GH_TOKEN.
func TokenFromEnv() string {
	for _, env := range tokenEnvVars {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// Validate reports obviously broken settings.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.RawURL == "" {
		return fmt.Errorf("raw_url must not be empty")
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
