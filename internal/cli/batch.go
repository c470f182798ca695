package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/config"
	"github.com/tengben1989/biclustlib/las"
	"github.com/tengben1989/biclustlib/runner"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		flags       searchFlags
		seeds       []int64
		runs        int
		parallelism int
		failFast    bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run independent searches with several seeds concurrently",
		Long: `batch runs the configured algorithm once per seed over the same matrix.
Seeds come from --seeds, or --runs seeds are derived from the configured seed.`,
		Example: `  biclust batch -i data.tsv --seeds 1,2,3
  biclust batch -i data.tsv --runs 8 --parallelism 4`,
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
			if cmd.Flags().Changed("parallelism") {
				cfg.Parallelism = parallelism
			}

			if len(seeds) == 0 {
				if runs < 1 {
					return fmt.Errorf("batch needs --seeds or --runs >= 1")
				}
				seeds = runner.Seeds(baseSeed(cfg), runs)
			}

			table, err := flags.readInput(cfg)
			if err != nil {
				return err
			}

			var buildErr error
			jobs := runner.SeedJobs(table.Data, seeds, func(seed int64) bicluster.Algorithm {
				c := *cfg
				c.SetSeed(seed)
				alg, err := a.algorithm(&c)
				if err != nil && buildErr == nil {
					buildErr = err
				}

				return alg
			})
			if buildErr != nil {
				return buildErr
			}

			a.log.Info("biclust batch",
				zap.String("algorithm", cfg.Algorithm),
				zap.Int("jobs", len(jobs)),
				zap.Int("parallelism", cfg.Parallelism),
			)
			outcomes, err := runner.RunAll(cmd.Context(), jobs,
				runner.WithParallelism(cfg.Parallelism),
				runner.WithFailFast(failFast),
				runner.WithLogger(a.log),
			)
			if err != nil {
				return err
			}

			reports := make([]report, len(outcomes))
			var failed int
			for i, o := range outcomes {
				if o.Err != nil {
					failed++
					reports[i] = report{Job: o.Name, Error: o.Err.Error()}
					continue
				}
				if reports[i], err = newReport(flags.input, table, o.Result, flags.values); err != nil {
					return err
				}
				reports[i].Job = o.Name
			}
			if err = render(a.out, format, isTerminal(a.out), reports); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d runs failed", failed, len(outcomes))
			}

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64SliceVar(&seeds, "seeds", nil, "comma-separated seeds, one run each")
	cmd.Flags().IntVar(&runs, "runs", 4, "number of derived seeds when --seeds is not given")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "concurrent runs (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "skip queued runs after the first failure")

	return cmd
}

func baseSeed(cfg *config.Config) int64 {
	if cfg.Algorithm == las.Name {
		return cfg.LAS.Seed
	}

	return cfg.CCA.Seed
}
