// Package cli implements the biclust command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/cca"
	"github.com/tengben1989/biclustlib/config"
	"github.com/tengben1989/biclustlib/internal/logging"
	"github.com/tengben1989/biclustlib/las"
)

// app carries the state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "biclust",
		Short: "Find coherent submatrices (biclusters) in numeric matrices",
		Long: `biclust runs biclustering algorithms over a delimited numeric matrix.

Algorithms:
  cca  Cheng & Church: greedy deletion/addition under a mean squared residue bound
  las  Large Average Submatrices: significance-scored high-average blocks

Configuration precedence: defaults < --config YAML < BICLUST_* env < flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newRunCommand(a),
		newBatchCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)

	return root
}

// Execute runs the command tree against the process streams and returns
// the exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "biclust:", err)

		return 1
	}

	return 0
}

// setup loads the configuration and builds the logger once per invocation.
func (a *app) setup() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := logging.New(cfg.LogLevel, a.errOut, isTerminal(a.errOut))
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log

	return nil
}

// algorithm builds the configured algorithm.
func (a *app) algorithm(cfg *config.Config) (bicluster.Algorithm, error) {
	switch cfg.Algorithm {
	case cca.Name:
		return cca.NewWithOptions(cfg.CCAOptions(a.log)), nil
	case las.Name:
		return las.New(cfg.LASOptions(a.log)), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", config.ErrInvalid, cfg.Algorithm)
	}
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
