package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengben1989/biclustlib/internal/version"
)

func newVersionCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if !asJSON {
				_, err := fmt.Fprintln(a.out, info.String())
				return err
			}
			data, err := info.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(data))

			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
