package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pion/logging"

	"linkbox/internal/app"
)

func TestDefault_Valid(t *testing.T) {
	cfg := app.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Links.SelfBase != "linkbox:///api/v1" || cfg.Links.PeerBase != "petra:///api/v1" {
		t.Fatalf("default links = %+v", cfg.Links)
	}
	if cfg.Session.BindAttempt {
		t.Fatal("bind_attempt should default to off")
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
app:
  domain: https://shop.example
  name: shop
links:
  peer_base: wallet:///api/v1
log:
  level: debug
  scopes:
    router: trace
session:
  bind_attempt: true
router:
  queue_size: 16
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LINKBOX_LINKS_PEER_BASE", "petra:///api/v2")
	t.Setenv("LINKBOX_ROUTER_RATE", "2.5")

	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Domain != "https://shop.example" || cfg.App.Name != "shop" {
		t.Fatalf("app = %+v", cfg.App)
	}
	if cfg.Links.PeerBase != "petra:///api/v2" {
		t.Fatalf("env did not override file: %q", cfg.Links.PeerBase)
	}
	if cfg.Links.SelfBase != "linkbox:///api/v1" {
		t.Fatalf("unset key lost its default: %q", cfg.Links.SelfBase)
	}
	if !cfg.Session.BindAttempt || cfg.Router.QueueSize != 16 || cfg.Router.Rate != 2.5 {
		t.Fatalf("session/router = %+v %+v", cfg.Session, cfg.Router)
	}
	if cfg.Router.Burst != app.Default().Router.Burst {
		t.Fatalf("burst = %d", cfg.Router.Burst)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Scopes["router"] != "trace" {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestLoadConfig_EnvScopeLevels(t *testing.T) {
	t.Setenv("LINKBOX_LOG_LEVEL", "warn")
	t.Setenv("LINKBOX_LOG_SCOPES_SESSION", "debug")
	t.Setenv("LINKBOX_LINKS_SELF_BASE", "shop:///api/v1")

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log.level = %q", cfg.Log.Level)
	}
	if got := cfg.Log.Scopes["session"]; got != "debug" {
		t.Fatalf("log.scopes.session = %q, scopes %v", got, cfg.Log.Scopes)
	}
	if cfg.Links.SelfBase != "shop:///api/v1" {
		t.Fatalf("links.self_base = %q", cfg.Links.SelfBase)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := app.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*app.Config){
		"no app name":     func(c *app.Config) { c.App.Name = "" },
		"relative base":   func(c *app.Config) { c.Links.PeerBase = "api/v1" },
		"bad level":       func(c *app.Config) { c.Log.Level = "loud" },
		"bad scope level": func(c *app.Config) { c.Log.Scopes = map[string]string{"router": "loud"} },
		"no inbox":        func(c *app.Config) { c.Inbox.Dir = "" },
		"zero queue":      func(c *app.Config) { c.Router.QueueSize = 0 },
		"negative rate":   func(c *app.Config) { c.Router.Rate = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := app.Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("want validation error")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logging.LogLevel{
		"":        logging.LogLevelInfo,
		"DEBUG":   logging.LogLevelDebug,
		"warning": logging.LogLevelWarn,
		"off":     logging.LogLevelDisabled,
		"trace":   logging.LogLevelTrace,
	}
	for in, want := range cases {
		got, err := app.ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := app.ParseLogLevel("loud"); err == nil {
		t.Fatal("want error for unknown level")
	}
}
