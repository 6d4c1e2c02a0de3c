package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func expected() Config {
	return Config{
		LogLevel: "WARN",
		Listeners: []ListenerSpec{
			{Source: "listeners/trace.lua", Args: []string{"verbose"}},
			{Source: "listeners/stats.lua"},
		},
		Lua:     LuaConfig{Timeout: "2s"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "robot"},
		Console: ConsoleConfig{Level: "debug", NoColor: true},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "cfg.yaml",
			content: `log_level: WARN
listeners:
  - source: listeners/trace.lua
    args: [verbose]
  - source: listeners/stats.lua
lua:
  timeout: 2s
metrics:
  enabled: true
  namespace: robot
console:
  level: debug
  no_color: true
`,
		},
		{
			name: "json",
			file: "cfg.json",
			content: `{"log_level":"WARN",
"listeners":[{"source":"listeners/trace.lua","args":["verbose"]},{"source":"listeners/stats.lua"}],
"lua":{"timeout":"2s"},
"metrics":{"enabled":true,"namespace":"robot"},
"console":{"level":"debug","no_color":true}}`,
		},
		{
			name: "toml",
			file: "cfg.toml",
			content: `log_level = "WARN"

[[listeners]]
source = "listeners/trace.lua"
args = ["verbose"]

[[listeners]]
source = "listeners/stats.lua"

[lua]
timeout = "2s"

[metrics]
enabled = true
namespace = "robot"

[console]
level = "debug"
no_color = true
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeTempFile(t, tc.file, tc.content))

			require.NoError(t, err)
			assert.Equal(t, expected(), cfg)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.EqualError(t, err, "empty config path")

	_, err = Load(writeTempFile(t, "cfg.txt", "not supported"))
	assert.EqualError(t, err, "unsupported config extension: .txt")

	_, err = Load(writeTempFile(t, "cfg.yaml", "listeners: {"))
	assert.ErrorContains(t, err, "parsing")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaults(t *testing.T) {
	cfg := Config{}.Defaults()

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "0s", cfg.Lua.Timeout)
	assert.Equal(t, "listen", cfg.Metrics.Namespace)
	assert.Equal(t, "info", cfg.Console.Level)

	kept := expected().Defaults()
	assert.Equal(t, expected(), kept)
}

func TestLuaTimeout(t *testing.T) {
	d, err := expected().LuaTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	d, err = Config{}.LuaTimeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = Config{Lua: LuaConfig{Timeout: "soon"}}.LuaTimeout()
	assert.ErrorContains(t, err, `invalid lua timeout "soon"`)

	_, err = Config{Lua: LuaConfig{Timeout: "-1s"}}.LuaTimeout()
	assert.ErrorContains(t, err, "negative")
}

func TestSources(t *testing.T) {
	cfg := Config{Listeners: []ListenerSpec{
		{Source: "trace.lua"},
		{Source: "trace.lua", Args: []string{"a", "b"}},
		{Source: "trace.lua", Args: []string{"http://host", "b"}},
	}}

	assert.Equal(t, []any{
		"trace.lua",
		"trace.lua:a:b",
		"trace.lua;http://host;b",
	}, cfg.Sources())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(expected()))
	require.NoError(t, Validate(Config{}))
}

func TestValidate_Errors(t *testing.T) {
	cfg := Config{
		LogLevel:  "LOUD",
		Listeners: []ListenerSpec{{Source: ""}},
		Lua:       LuaConfig{Timeout: "soon"},
		Metrics:   MetricsConfig{Namespace: "not-valid"},
		Console:   ConsoleConfig{Level: "shouting"},
	}

	err := Validate(cfg)

	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
	var verr *ValidationError
	assert.ErrorAs(t, errs[0], &verr)
	assert.EqualError(t, errs[1], "Invalid log level 'LOUD'.")
	assert.EqualError(t, errs[2], `invalid console level "shouting"`)
	assert.ErrorContains(t, errs[3], `invalid lua timeout "soon"`)
}
