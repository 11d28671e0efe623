package frigocheck

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the backend the original deployment runs on.
const DefaultBaseURL = "http://localhost:3315"

// DefaultCredentialsDSN stores credentials next to the working
// directory; override it per deployment.
const DefaultCredentialsDSN = "file:frigocheck.db?cache=shared"

// FileConfig is the TOML-backed Config implementation. Environment
// variables (FRIGOCHECK_BASE_URL, FRIGOCHECK_HTTP_TIMEOUT,
// FRIGOCHECK_CREDENTIALS_DSN) override file values.
type FileConfig struct {
	BaseURL        string `toml:"base_url"`
	HTTPTimeout    int    `toml:"http_timeout"`
	CredentialsDSN string `toml:"credentials_dsn"`
}

var _ Config = (*FileConfig)(nil)

// NewDefaultConfig returns a config with default values applied.
func NewDefaultConfig() *FileConfig {
	cfg := &FileConfig{
		BaseURL:        DefaultBaseURL,
		HTTPTimeout:    30,
		CredentialsDSN: DefaultCredentialsDSN,
	}
	cfg.applyEnv()
	return cfg
}

// LoadConfig reads a TOML config file and applies env overrides. A
// missing file is not an error; defaults are returned.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{
		BaseURL:        DefaultBaseURL,
		HTTPTimeout:    30,
		CredentialsDSN: DefaultCredentialsDSN,
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("could not parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *FileConfig) applyEnv() {
	if v := os.Getenv("FRIGOCHECK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("FRIGOCHECK_HTTP_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil && timeout > 0 {
			c.HTTPTimeout = timeout
		}
	}
	if v := os.Getenv("FRIGOCHECK_CREDENTIALS_DSN"); v != "" {
		c.CredentialsDSN = v
	}
}

// GetBaseURL returns the backend base URL.
func (c *FileConfig) GetBaseURL() string {
	return c.BaseURL
}

// GetHTTPTimeout returns the request timeout in seconds.
func (c *FileConfig) GetHTTPTimeout() int {
	return c.HTTPTimeout
}

// GetCredentialsDSN returns the sqlite DSN for the credential store.
func (c *FileConfig) GetCredentialsDSN() string {
	return c.CredentialsDSN
}
