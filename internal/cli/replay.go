package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rickchristie/listen/replay"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// ErrTraceMismatch is returned when a replayed trace differs from the golden
// file.
var ErrTraceMismatch = errors.New("trace differs from golden file")

func newReplayCmd(a *app) *cobra.Command {
	var golden string
	var update bool
	cmd := &cobra.Command{
		Use:   "replay EVENTS",
		Short: "Replay an event stream to the configured listeners",
		Long: "Replay an event stream to the configured listeners and print what a\n" +
			"version 2 listener received. With --golden the trace is compared with\n" +
			"the golden file instead.",
		Example: "  listenctl replay events.yaml -c listen.yaml\n" +
			"  listenctl replay events.yaml --golden testdata/events.trace",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			steps, err := replay.Decode(f)
			if err != nil {
				return err
			}

			trace := replay.NewTrace(nil)
			listeners, library, importer, err := a.buses(trace)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, importer.Close()) }()

			if err := replay.New(listeners, library).Play(cmd.Context(), steps); err != nil {
				return err
			}
			a.reportMetrics()

			switch {
			case golden == "":
				_, err = fmt.Fprint(cmd.OutOrStdout(), trace.String())
				return err
			case update:
				return os.WriteFile(golden, []byte(trace.String()), 0o644)
			}
			want, err := os.ReadFile(golden)
			if err != nil {
				return err
			}
			diff, err := replay.Diff(string(want), trace.String())
			if err != nil {
				return err
			}
			if diff != "" {
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return ErrTraceMismatch
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&golden, "golden", "", "Compare the trace with this file")
	cmd.Flags().BoolVar(&update, "update", false, "Write the trace to the golden file")
	return cmd
}
