package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Credential names resolved for the two providers.
const (
	GroqKeyName   = "GROQ_API_KEY"
	GeminiKeyName = "GEMINI_API_KEY"
)

// secretsFile is a flat NAME: value mapping kept outside config.yaml so the
// main config can be committed.
const secretsFile = "secrets.yaml"

// ResolveOptions enumerates which credential sources to consult.
type ResolveOptions struct {
	CheckEnvironment bool
	CheckSecretStore bool
}

// ResolveKey looks up a named credential, environment first, then the secrets
// mapping. The second return reports whether a non-empty value was found.
func ResolveKey(name string, secrets map[string]string, opts ResolveOptions) (string, bool) {
	if opts.CheckEnvironment {
		if v := os.Getenv(name); v != "" {
			return v, true
		}
	}
	if opts.CheckSecretStore {
		if v := secrets[name]; v != "" {
			return v, true
		}
	}
	return "", false
}

// LoadSecrets parses a flat YAML secrets file. A missing file is not an
// error; the caller falls back to environment-only resolution.
func LoadSecrets(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "config: read secrets %s", path)
	}

	secrets := make(map[string]string)
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return nil, eris.Wrapf(err, "config: parse secrets %s", path)
	}
	return secrets, nil
}

// resolveCredentials fills in provider keys that config.yaml and environment
// overrides left empty.
func (c *Config) resolveCredentials() error {
	secrets, err := LoadSecrets(secretsFile)
	if err != nil {
		return err
	}

	opts := ResolveOptions{CheckEnvironment: true, CheckSecretStore: true}
	if c.Groq.Key == "" {
		c.Groq.Key, _ = ResolveKey(GroqKeyName, secrets, opts)
	}
	if c.Gemini.Key == "" {
		c.Gemini.Key, _ = ResolveKey(GeminiKeyName, secrets, opts)
	}
	return nil
}

// ValidateCredentials fails when neither provider key is available. One
// present key is enough to attempt extraction.
func (c *Config) ValidateCredentials() error {
	if c.Groq.Key == "" && c.Gemini.Key == "" {
		return eris.Errorf("config: no provider credentials: set %s or %s (environment or %s)", GroqKeyName, GeminiKeyName, secretsFile)
	}
	return nil
}
