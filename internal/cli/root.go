// Package cli implements the listenctl command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/bus"
	"github.com/rickchristie/listen/config"
	"github.com/rickchristie/listen/lua"
	"github.com/rickchristie/listen/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the state shared by the listenctl commands.
type app struct {
	configPath string
	logLevel   string

	cfg      config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
}

// NewRootCmd builds the listenctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "listenctl",
		Short:         "Run and inspect test execution listeners",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (.yaml, .yml, .json or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Console log level: debug|info|warn|error (overrides console.level)")

	root.AddCommand(
		newReplayCmd(a),
		newCheckCmd(a),
		newShellCmd(a),
	)
	return root
}

// setup loads the configuration and installs the console logger.
func (a *app) setup(stderr io.Writer) error {
	var cfg config.Config
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Console.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg.Defaults()

	level, err := zerolog.ParseLevel(a.cfg.Console.Level)
	if err != nil {
		return fmt.Errorf("invalid console level %q", a.cfg.Console.Level)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: a.cfg.Console.NoColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
	listen.SetLogger(a.log)

	if a.cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		collector := metrics.NewCollector(a.cfg.Metrics.Namespace)
		if err := collector.Register(a.registry); err != nil {
			return err
		}
		listen.SetRecorder(collector)
	}
	return nil
}

// buses creates the top-level and library buses for the configured listeners.
// extra listeners are added before the configured ones. The returned importer
// owns the Lua listeners and must be closed.
func (a *app) buses(extra ...any) (*bus.Listeners, *bus.LibraryListeners, *lua.Importer, error) {
	timeout, err := a.cfg.LuaTimeout()
	if err != nil {
		return nil, nil, nil, err
	}
	importer := lua.NewImporter(lua.WithTimeout(timeout))
	opts := []bus.Option{bus.WithLogLevel(a.cfg.LogLevel), bus.WithImporter(importer)}

	sources := append(append([]any{}, extra...), a.cfg.Sources()...)
	listeners, err := bus.New(sources, opts...)
	if err != nil {
		_ = importer.Close()
		return nil, nil, nil, err
	}
	library, err := bus.NewLibraryListeners(opts...)
	if err != nil {
		_ = importer.Close()
		return nil, nil, nil, err
	}
	a.log.Debug().Int("listeners", listeners.Len()).Msg("Listeners taken into use")
	return listeners, library, importer, nil
}

// reportMetrics logs the collected listener call counts.
func (a *app) reportMetrics() {
	if a.registry == nil {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.log.Warn().Err(err).Msg("Gathering metrics failed")
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			value := m.GetCounter().GetValue()
			if h := m.GetHistogram(); h != nil {
				value = h.GetSampleSum()
			}
			event := a.log.Info().Str("metric", family.GetName()).Float64("value", value)
			for _, label := range m.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			event.Msg("Listener metric")
		}
	}
}
