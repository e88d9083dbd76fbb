// Package config persists the hookctl credential profile: the API base URL
// and API key for one ingestion backend.
//
// Stored values are base64-encoded before writing. That is a reversible
// transform to keep keys out of casual sight in the file, not encryption;
// the 0600 file mode is the actual protection boundary. Anything needing
// real secrecy belongs in an OS keyring, not here.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ad-tracker/hookctl/pkg/validation"
)

// Environment overrides for ephemeral runs. When both are set they take
// precedence over the stored profile and nothing is read from disk.
const (
	EnvAPIURL = "HOOKCTL_API_URL"
	EnvAPIKey = "HOOKCTL_API_KEY"
)

// Credential is the pair of values needed to reach the ingestion API.
type Credential struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	APIKey  string `yaml:"api_key"  validate:"required"`
}

// Validate checks both fields. A credential must pass before it is saved or
// used to construct a client.
func (c Credential) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("base URL must be an absolute http(s) URL")
	}
	return nil
}

// storedCredential is the on-disk shape; both values are encoded.
type storedCredential struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Store reads and writes the credential profile.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store rooted at the user config directory.
func NewStore(logger *slog.Logger) *Store {
	return NewStoreAt(filepath.Join(userConfigDir(), "hookctl", "credentials.yaml"), logger)
}

// NewStoreAt creates a store over an explicit profile path.
func NewStoreAt(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the profile location.
func (s *Store) Path() string {
	return s.path
}

// Save validates and writes the credential. The write is atomic; a failure
// to persist is returned to the caller, there is no fallback location.
func (s *Store) Save(cred Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	out, err := yaml.Marshal(storedCredential{
		BaseURL: encode(cred.BaseURL),
		APIKey:  encode(cred.APIKey),
	})
	if err != nil {
		return fmt.Errorf("config: marshal failed: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("config: mkdir failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials.tmp-*")
	if err != nil {
		return fmt.Errorf("config: temp create failed: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(out); err != nil {
		return fmt.Errorf("config: temp write failed: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("config: chmod failed: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("config: sync failed: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("config: atomic rename failed: %w", err)
	}
	return nil
}

// Load returns the usable credential, or nil when none is configured.
// Environment overrides win over the file. A missing, incomplete, or
// undecodable profile degrades to nil with a log line; Load never fails.
func (s *Store) Load() *Credential {
	if cred := credentialFromEnv(); cred != nil {
		return cred
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read credential profile", "path", s.path, "error", err)
		}
		return nil
	}

	var stored storedCredential
	if err := yaml.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("failed to parse credential profile", "path", s.path, "error", err)
		return nil
	}

	baseURL, err := decode(stored.BaseURL)
	if err != nil {
		s.logger.Warn("stored base URL is not decodable", "path", s.path, "error", err)
		return nil
	}
	apiKey, err := decode(stored.APIKey)
	if err != nil {
		s.logger.Warn("stored API key is not decodable", "path", s.path, "error", err)
		return nil
	}
	if baseURL == "" || apiKey == "" {
		return nil
	}

	return &Credential{BaseURL: baseURL, APIKey: apiKey}
}

// Clear removes the profile. Removal failures are logged, not raised.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove credential profile", "path", s.path, "error", err)
	}
}

// Exists reports whether a usable credential is available.
func (s *Store) Exists() bool {
	return s.Load() != nil
}

func credentialFromEnv() *Credential {
	baseURL := os.Getenv(EnvAPIURL)
	apiKey := os.Getenv(EnvAPIKey)
	if baseURL == "" || apiKey == "" {
		return nil
	}
	return &Credential{BaseURL: baseURL, APIKey: apiKey}
}

// RedactKey anonymizes an API key for display and logging.
func RedactKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "***"
	}
	return key[:4] + "***"
}

func encode(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

func decode(value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// userConfigDir resolves a configuration directory in a portable way.
func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config")
	}
	return "."
}
