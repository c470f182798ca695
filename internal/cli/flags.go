package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengben1989/biclustlib/config"
	"github.com/tengben1989/biclustlib/internal/tabular"
)

// searchFlags are the knobs shared by run and batch. A flag only overrides
// the loaded configuration when it was set explicitly.
type searchFlags struct {
	algorithm     string
	input         string
	numBiclusters int
	msrThreshold  float64
	delimiter     string
	header        bool
	rowLabels     bool
	format        string
	values        bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.algorithm, "algorithm", "a", "", "algorithm: cca or las")
	fl.StringVarP(&f.input, "input", "i", "", "delimited numeric matrix (tab or comma)")
	fl.IntVarP(&f.numBiclusters, "num-biclusters", "k", 0, "number of biclusters to search for")
	fl.Float64Var(&f.msrThreshold, "msr-threshold", 0, "CCA mean squared residue threshold")
	fl.StringVar(&f.delimiter, "delimiter", "", "input delimiter: auto, tab or comma")
	fl.BoolVar(&f.header, "header", false, "first line holds column labels")
	fl.BoolVar(&f.rowLabels, "row-labels", false, "first field of each line is a row label")
	fl.StringVarP(&f.format, "format", "f", "", "output format: text or json (default: text on a terminal, json otherwise)")
	fl.BoolVar(&f.values, "values", false, "include the cell values of every bicluster")
	_ = cmd.MarkFlagRequired("input")
}

// apply copies explicitly set flags onto a copy of cfg and revalidates it.
func (f *searchFlags) apply(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg := *base
	fl := cmd.Flags()

	if fl.Changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if fl.Changed("num-biclusters") {
		cfg.SetNumBiclusters(f.numBiclusters)
	}
	if fl.Changed("msr-threshold") {
		cfg.CCA.MSRThreshold = f.msrThreshold
	}
	if fl.Changed("delimiter") {
		cfg.Input.Delimiter = f.delimiter
	}
	if fl.Changed("header") {
		cfg.Input.Header = f.header
	}
	if fl.Changed("row-labels") {
		cfg.Input.RowLabels = f.rowLabels
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (f *searchFlags) readInput(cfg *config.Config) (*tabular.Table, error) {
	comma, err := tabular.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return nil, err
	}

	return tabular.ReadFile(f.input, tabular.Options{
		Comma:     comma,
		Header:    cfg.Input.Header,
		RowLabels: cfg.Input.RowLabels,
	})
}

// outputFormat resolves --format against the output stream.
func (a *app) outputFormat(name string) (string, error) {
	switch name {
	case "":
		if isTerminal(a.out) {
			return formatText, nil
		}

		return formatJSON, nil
	case formatText, formatJSON:
		return name, nil
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", name, formatText, formatJSON)
	}
}
