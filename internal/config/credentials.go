package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingCredential = errors.New("missing required credential")

// Credentials are read from the environment only.
type Credentials struct {
	PracticumToken string `envconfig:"PRACTICUM_TOKEN" required:"true"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID" required:"true"`
}

var credentialVars = []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. An empty path means ".env", which is
// allowed to be absent.
func LoadDotEnv(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadCredentials reads and checks the three required variables. Every
// missing one is named in the returned error, which wraps ErrMissingCredential.
func LoadCredentials() (Credentials, error) {
	var missing []string
	for _, k := range credentialVars {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}

	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		var pe *envconfig.ParseError
		if errors.As(err, &pe) {
			return Credentials{}, fmt.Errorf("%s: %q is not an integer chat id", pe.KeyName, pe.Value)
		}
		return Credentials{}, err
	}
	c.PracticumToken = strings.TrimSpace(c.PracticumToken)
	c.TelegramToken = strings.TrimSpace(c.TelegramToken)
	return c, nil
}

// Redact keeps the last four characters of a secret.
func Redact(secret string) string {
	s := strings.TrimSpace(secret)
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}
