package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		flags searchFlags
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one biclustering search over a matrix file",
		Example: `  biclust run -i expression.tsv --header --row-labels -k 5
  biclust run -a las -i data.csv -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			format, err := a.outputFormat(flags.format)
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.SetSeed(seed)
			}

			table, err := flags.readInput(cfg)
			if err != nil {
				return err
			}
			alg, err := a.algorithm(cfg)
			if err != nil {
				return err
			}

			a.log.Debug("biclust run",
				zap.String("input", flags.input),
				zap.String("algorithm", alg.Name()),
				zap.Int("rows", table.Data.Rows()),
				zap.Int("cols", table.Data.Cols()),
			)
			res, err := alg.Run(table.Data)
			if err != nil {
				return fmt.Errorf("%s: %w", alg.Name(), err)
			}

			rep, err := newReport(flags.input, table, res, flags.values)
			if err != nil {
				return err
			}

			return render(a.out, format, isTerminal(a.out), []report{rep})
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 selects the fixed default seed)")

	return cmd
}
