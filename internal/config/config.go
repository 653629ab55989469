// Package config loads the web server configuration from defaults, an
// optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultEnvironment     = "local"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultRequestTimeout  = 30 * time.Second
	defaultViewLoadTimeout = 10 * time.Second
	defaultSessionIdleTTL  = 30 * time.Minute
	defaultMailTimeout     = 10 * time.Second
	defaultEmailEndpoint   = "https://api.emailjs.com"
	minSessionSecretLength = 32
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Nav     NavConfig
	Session SessionConfig
	Mail    MailConfig
	Log     LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// SiteConfig locates templates, assets and content.
type SiteConfig struct {
	Environment  string
	Dev          bool
	BaseURL      string
	TemplatesDir string
	PublicDir    string
	ContentDir   string
	// CatalogFile replaces the embedded product catalog when set.
	CatalogFile string
}

// Production reports whether the site runs in a production environment.
func (s SiteConfig) Production() bool {
	switch strings.ToLower(s.Environment) {
	case "prod", "production":
		return true
	}
	return false
}

// NavConfig tunes the navigation shell.
type NavConfig struct {
	ViewLoadTimeout time.Duration
	SessionIdleTTL  time.Duration
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	// Secret signs the session cookie. Empty outside production means a
	// random key is generated at startup.
	Secret string
	Secure bool
}

// MailConfig configures the EmailJS integration. An empty ServiceID keeps
// form submissions local.
type MailConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment, relying only on provided
// maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration. Precedence: defaults < .env < OS env < explicit map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return d
	}

	env := stringWithDefault(lookup, "WEB_ENV", defaultEnvironment)
	cfg := Config{
		Server: ServerConfig{
			Port:           stringWithDefault(lookup, "WEB_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:    duration("WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:   duration("WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:    duration("WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout: duration("WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
		},
		Site: SiteConfig{
			Environment:  env,
			Dev:          boolWithDefault(lookup, "WEB_DEV", false),
			BaseURL:      strings.TrimRight(stringWithDefault(lookup, "WEB_BASE_URL", ""), "/"),
			TemplatesDir: stringWithDefault(lookup, "WEB_TEMPLATES_DIR", "templates"),
			PublicDir:    stringWithDefault(lookup, "WEB_PUBLIC_DIR", "public"),
			ContentDir:   stringWithDefault(lookup, "WEB_CONTENT_DIR", "content"),
			CatalogFile:  stringWithDefault(lookup, "WEB_CATALOG_FILE", ""),
		},
		Nav: NavConfig{
			ViewLoadTimeout: duration("WEB_VIEW_LOAD_TIMEOUT", defaultViewLoadTimeout),
			SessionIdleTTL:  duration("WEB_SESSION_IDLE_TTL", defaultSessionIdleTTL),
		},
		Session: SessionConfig{
			Secret: stringWithDefault(lookup, "WEB_SESSION_SECRET", ""),
		},
		Mail: MailConfig{
			Endpoint:   stringWithDefault(lookup, "EMAILJS_ENDPOINT", defaultEmailEndpoint),
			ServiceID:  stringWithDefault(lookup, "EMAILJS_SERVICE_ID", ""),
			TemplateID: stringWithDefault(lookup, "EMAILJS_TEMPLATE_ID", ""),
			PublicKey:  stringWithDefault(lookup, "EMAILJS_PUBLIC_KEY", ""),
			PrivateKey: stringWithDefault(lookup, "EMAILJS_PRIVATE_KEY", ""),
			Timeout:    duration("EMAILJS_TIMEOUT", defaultMailTimeout),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", "info"),
		},
	}
	cfg.Session.Secure = boolWithDefault(lookup, "WEB_SESSION_SECURE", cfg.Site.Production())

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		missing = append(missing, "Server.Port")
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"Server.ReadTimeout", cfg.Server.ReadTimeout},
		{"Server.WriteTimeout", cfg.Server.WriteTimeout},
		{"Server.IdleTimeout", cfg.Server.IdleTimeout},
		{"Server.RequestTimeout", cfg.Server.RequestTimeout},
		{"Nav.ViewLoadTimeout", cfg.Nav.ViewLoadTimeout},
		{"Nav.SessionIdleTTL", cfg.Nav.SessionIdleTTL},
		{"Mail.Timeout", cfg.Mail.Timeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			missing = append(missing, d.name)
		}
	}
	if strings.TrimSpace(cfg.Site.TemplatesDir) == "" {
		missing = append(missing, "Site.TemplatesDir")
	}
	if cfg.Site.Production() && len(cfg.Session.Secret) < minSessionSecretLength {
		missing = append(missing, "Session.Secret")
	}
	if cfg.Mail.ServiceID != "" && cfg.Mail.TemplateID == "" {
		missing = append(missing, "Mail.TemplateID")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// durationWithDefault reports false when the key is set to something that
// does not parse.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return d, true
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
