package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"linkbox/internal/domain"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// LINKBOX_LINKS_PEER_BASE=petra:///api/v1.
const EnvPrefix = "LINKBOX_"

// Config holds runtime options for building the app.
type Config struct {
	App     domain.AppInfo `koanf:"app"`
	Links   LinksConfig    `koanf:"links"`
	Log     LogConfig      `koanf:"log"`
	Inbox   InboxConfig    `koanf:"inbox"`
	Router  RouterConfig   `koanf:"router"`
	Session SessionConfig  `koanf:"session"`
	Metrics MetricsConfig  `koanf:"metrics"`
	Opener  OpenerConfig   `koanf:"opener"`
}

// LinksConfig names both ends of the link transport.
type LinksConfig struct {
	SelfBase string `koanf:"self_base"` // e.g. linkbox:///api/v1
	PeerBase string `koanf:"peer_base"` // e.g. petra:///api/v1
}

// LogConfig selects log levels: one default plus optional per-scope
// overrides (session, router, queue, inbox, opener).
type LogConfig struct {
	Level  string            `koanf:"level"`
	Scopes map[string]string `koanf:"scopes"`
}

// InboxConfig locates the inbound link inbox.
type InboxConfig struct {
	Dir string `koanf:"dir"`
}

// RouterConfig bounds inbound link processing.
type RouterConfig struct {
	Rate      float64 `koanf:"rate"` // links per second, 0 = unlimited
	Burst     int     `koanf:"burst"`
	QueueSize int     `koanf:"queue_size"`
}

// SessionConfig tunes the session state machine.
type SessionConfig struct {
	BindAttempt bool `koanf:"bind_attempt"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `koanf:"addr"` // empty disables the endpoint
}

// OpenerConfig selects how outbound links are delivered.
type OpenerConfig struct {
	Command string `koanf:"command"` // empty = platform default
	Print   bool   `koanf:"print"`   // print links instead of opening them
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		App: domain.AppInfo{Domain: "https://linkbox.local", Name: "linkbox"},
		Links: LinksConfig{
			SelfBase: "linkbox:///api/v1",
			PeerBase: "petra:///api/v1",
		},
		Log:    LogConfig{Level: "info"},
		Inbox:  InboxConfig{Dir: DefaultInboxDir()},
		Router: RouterConfig{Rate: 10, Burst: 5, QueueSize: 64},
	}
}

// DefaultInboxDir returns the per-user inbox location.
func DefaultInboxDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "linkbox", "inbox")
}

// DefaultConfigFile returns the per-user config file location, or "" if
// the user config directory is unknown.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linkbox", "config.yaml")
}

// LoadConfig builds a Config from defaults, then the YAML file at path (if
// any), then LINKBOX_ environment variables. Later sources win.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps LINKBOX_LINKS_SELF_BASE to links.self_base: the first
// segment is the section, the rest is the key. Under log.scopes the rest
// is a scope name, so LINKBOX_LOG_SCOPES_ROUTER maps to log.scopes.router.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if scope, ok := strings.CutPrefix(s, "log_scopes_"); ok {
		return "log.scopes." + scope
	}
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return section
	}
	return section + "." + key
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.App.Domain == "" || c.App.Name == "" {
		return errors.New("config: app.domain and app.name are required")
	}
	for name, base := range map[string]string{"links.self_base": c.Links.SelfBase, "links.peer_base": c.Links.PeerBase} {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("config: %s %q is not an absolute link base", name, base)
		}
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	for scope, lvl := range c.Log.Scopes {
		if _, err := ParseLogLevel(lvl); err != nil {
			return fmt.Errorf("config: log.scopes.%s: %w", scope, err)
		}
	}
	if c.Inbox.Dir == "" {
		return errors.New("config: inbox.dir is required")
	}
	if c.Router.Rate < 0 || c.Router.Burst < 0 || c.Router.QueueSize <= 0 {
		return errors.New("config: router.rate and router.burst must be >= 0, router.queue_size > 0")
	}
	return nil
}
