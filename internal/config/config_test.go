package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// isolate runs the test from an empty directory so no stray auction.yml or .env is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") || strings.HasPrefix(env, "PORT=") {
			key := strings.SplitN(env, "=", 2)[0]
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, DefaultDSN, cfg.Database.DSN)
	require.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
	require.Equal(t, DefaultCookieName, cfg.Session.CookieName)
	require.GreaterOrEqual(t, len(cfg.Session.Secret), MinSecretBytes, "a missing secret is generated")
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yml")
	yaml := `
server:
  port: 9000
  read_timeout: 5s
database:
  driver: postgres
  dsn: postgres://localhost/auction?sslmode=disable
session:
  secret: ` + testSecret + `
  ttl: 2h
log:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("AUCTION_SERVER_PORT", "9100")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port, "prefixed env wins over file and bare PORT")
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 2*time.Hour, cfg.Session.TTL)
	require.Equal(t, testSecret, cfg.Session.Secret)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, path, cfg.ConfigPath)

	opts := cfg.RepositoryOptions()
	require.Equal(t, "postgres", opts.Driver)
	require.Equal(t, cfg.Database.DSN, opts.DSN)
}

func TestLoad_BarePortAndDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUCTION_DATABASE_DSN=from-dotenv.db\n"), 0o600))
	t.Setenv("PORT", "7000")
	t.Cleanup(func() { os.Unsetenv("AUCTION_DATABASE_DSN") })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, "from-dotenv.db", cfg.Database.DSN)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing_explicit_file", func(t *testing.T) {
		isolate(t)
		_, err := Load("does-not-exist.yml")
		require.Error(t, err)
	})

	t.Run("bad_port", func(t *testing.T) {
		isolate(t)
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("unknown_driver", func(t *testing.T) {
		isolate(t)
		t.Setenv("AUCTION_DATABASE_DRIVER", "oracle")
		_, err := Load("")
		require.ErrorContains(t, err, "database.driver")
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Host: "127.0.0.1", Port: 8080, GinMode: "release", ReadTimeout: time.Second, WriteTimeout: time.Second},
			Database: DatabaseConfig{Driver: "mysql", DSN: "u:p@tcp(localhost:3306)/auction"},
			Session:  SessionConfig{Secret: testSecret, TTL: time.Hour, CookieName: "sid"},
			Log:      LogConfig{Level: "info", Format: "json"},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port_zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port_too_high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "gin_mode", mutate: func(c *Config) { c.Server.GinMode = "verbose" }},
		{name: "timeouts", mutate: func(c *Config) { c.Server.WriteTimeout = 0 }},
		{name: "empty_dsn", mutate: func(c *Config) { c.Database.DSN = " " }},
		{name: "short_secret", mutate: func(c *Config) { c.Session.Secret = "short" }},
		{name: "ttl", mutate: func(c *Config) { c.Session.TTL = 0 }},
		{name: "cookie_name", mutate: func(c *Config) { c.Session.CookieName = "" }},
		{name: "log_format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test (t.Chdir needs Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
