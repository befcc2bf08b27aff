// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

// DatabaseConfig enables the backend login endpoint when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig selects the Redis session store when URL is set; otherwise sessions are
// kept in process memory.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type WizardConfig struct {
	Flow                       string        `yaml:"flow"` // onboarding|passcode
	RequireProfessionSelection *bool         `yaml:"require_profession_selection"`
	Professions                []string      `yaml:"professions"`
	Interests                  []string      `yaml:"interests"`
	SessionTTL                 time.Duration `yaml:"session_ttl"`
	LockTTL                    time.Duration `yaml:"lock_ttl"`
	PendingTimeout             time.Duration `yaml:"pending_timeout"`
	SweepInterval              time.Duration `yaml:"sweep_interval"`
}

// AuthConfig points at the authentication backend. An empty BackendURL uses the
// in-process login use case when a database is configured.
type AuthConfig struct {
	BackendURL string        `yaml:"backend_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Secret       string        `yaml:"secret"`
	TTL          time.Duration `yaml:"ttl"`
	CookieName   string        `yaml:"cookie_name"`
	CookieDomain string        `yaml:"cookie_domain"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type RateLimitConfig struct {
	Actions int           `yaml:"actions"` // per session per window; 0 disables
	Window  time.Duration `yaml:"window"`
}

type IntentsConfig struct {
	Channel string `yaml:"channel"` // Redis Pub/Sub channel
	Workers int    `yaml:"workers"`
	Queue   int    `yaml:"queue"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Wizard    WizardConfig    `yaml:"wizard"`
	Auth      AuthConfig      `yaml:"auth"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Intents   IntentsConfig   `yaml:"intents"`

	Runtime RuntimeConfig `yaml:"-"`
}

const devSessionSecret = "dev-only-session-secret"

// LoadConfig reads the YAML file at path, expanding ${VAR} references from the
// environment, then applies defaults and validates.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b, dev)
}

// Parse is LoadConfig without the file read.
func Parse(b []byte, dev bool) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	c.Server.RequestTimeout = orDefault(c.Server.RequestTimeout, 15*time.Second)
	c.Server.ShutdownTimeout = orDefault(c.Server.ShutdownTimeout, 10*time.Second)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Wizard.Flow == "" {
		c.Wizard.Flow = "onboarding"
	}
	if c.Wizard.RequireProfessionSelection == nil {
		required := true
		c.Wizard.RequireProfessionSelection = &required
	}
	if len(c.Wizard.Professions) == 0 {
		c.Wizard.Professions = []string{"Law Professor", "Law Student", "Other"}
	}
	c.Wizard.SessionTTL = orDefault(c.Wizard.SessionTTL, 30*time.Minute)
	c.Wizard.LockTTL = orDefault(c.Wizard.LockTTL, 5*time.Second)
	c.Wizard.PendingTimeout = orDefault(c.Wizard.PendingTimeout, 30*time.Second)
	c.Wizard.SweepInterval = orDefault(c.Wizard.SweepInterval, time.Minute)
	c.Auth.Timeout = orDefault(c.Auth.Timeout, 10*time.Second)
	c.Session.TTL = orDefault(c.Session.TTL, 24*time.Hour)
	if c.Session.CookieName == "" {
		c.Session.CookieName = "lv_session"
	}
	if c.Session.Secret == "" && c.Runtime.Dev {
		c.Session.Secret = devSessionSecret
	}
	c.RateLimit.Window = orDefault(c.RateLimit.Window, time.Minute)
	if c.Intents.Channel == "" {
		c.Intents.Channel = "wizard.intents"
	}
	if c.Intents.Workers <= 0 {
		c.Intents.Workers = 2
	}
	if c.Intents.Queue <= 0 {
		c.Intents.Queue = 256
	}
}

func (c *Config) validate() error {
	if c.Wizard.Flow != "onboarding" && c.Wizard.Flow != "passcode" {
		return fmt.Errorf("wizard.flow must be onboarding or passcode, got %q", c.Wizard.Flow)
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.RateLimit.Actions < 0 {
		return errors.New("rate_limit.actions must not be negative")
	}
	if c.Wizard.LockTTL >= c.Wizard.SessionTTL {
		return errors.New("wizard.lock_ttl must be shorter than wizard.session_ttl")
	}
	// a pending submit must outlive the backend call it waits on
	if c.Wizard.PendingTimeout <= c.Auth.Timeout {
		return fmt.Errorf("wizard.pending_timeout (%s) must exceed auth.timeout (%s)", c.Wizard.PendingTimeout, c.Auth.Timeout)
	}
	return nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
