package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/lua"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   "Import the configured listeners and report their API versions",
		Example: "  listenctl check -c listen.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, err := a.cfg.LuaTimeout()
			if err != nil {
				return err
			}
			importer := lua.NewImporter(lua.WithTimeout(timeout))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LISTENER\tVERSION\tSOURCE")
			var errs error
			for _, source := range a.cfg.Sources() {
				f, err := listen.Import(source, nil, importer)
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", source, err))
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name(), f.Version(), source)
			}
			errs = multierr.Append(errs, w.Flush())
			return multierr.Append(errs, importer.Close())
		},
	}
}
