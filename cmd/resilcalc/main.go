/* ============================================================= *\
   main.go

   The resilcalc CLI: "score" computes a resilience score for one
   or more candidate relay ASes against a source AS, "explain"
   prints the full BFS layer tree for a source AS.
\* ============================================================= */

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asresil/resilcalc"
	"github.com/asresil/resilcalc/internal/asciitree"
	"github.com/asresil/resilcalc/internal/config"
	"github.com/asresil/resilcalc/internal/logging"
)

var (
	configPath string
	asRelFile  string
	ip2asFile  string
)

func main() {
	root := &cobra.Command{
		Use:   "resilcalc",
		Short: "Compute Gao-Rexford BGP resilience scores over an AS-relationship graph",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a resilcalc YAML config file")
	root.PersistentFlags().StringVar(&asRelFile, "asrel", "", "CAIDA as-rel.txt file (overrides config)")
	root.PersistentFlags().StringVar(&ip2asFile, "ip2as", "", "CAIDA ip2as.csv file (overrides config)")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newExplainCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <source-asn> <candidate-asn>...",
		Short: "Score one or more candidate ASes relative to a source AS",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, logger, err := buildCalculator()
			if err != nil {
				return err
			}
			defer logger.Sync()

			source, err := parseAsn(args[0])
			if err != nil {
				return err
			}
			candidates := make([]uint32, 0, len(args)-1)
			for _, a := range args[1:] {
				asn, err := parseAsn(a)
				if err != nil {
					return err
				}
				candidates = append(candidates, asn)
			}

			scores := calc.ComputeResil(source, candidates)
			for _, c := range candidates {
				fmt.Printf("AS%d\t%.6f\n", c, scores[c])
			}
			return nil
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <source-asn>",
		Short: "Print the BFS layer tree reached from a source AS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, logger, err := buildCalculator()
			if err != nil {
				return err
			}
			defer logger.Sync()

			source, err := parseAsn(args[0])
			if err != nil {
				return err
			}

			records := calc.RunBFS(source)
			delete(records, source)
			tree := asciitree.FromRecords(records)
			tree.Fprint(os.Stdout, tree.SortedKeys(), "")
			return nil
		},
	}
}

func buildCalculator() (*resilcalc.Calculator, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if asRelFile != "" {
		cfg.AsRelFile = asRelFile
	}
	if ip2asFile != "" {
		cfg.Ip2AsFile = ip2asFile
	}

	logger := logging.MustNew(cfg.Log.Level, cfg.Log.File)

	calc, err := resilcalc.New(resilcalc.Config{AsRelFile: cfg.AsRelFile, Ip2AsFile: cfg.Ip2AsFile}, logger)
	if err != nil {
		return nil, nil, err
	}
	return calc, logger, nil
}

func parseAsn(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid ASN %q: %w", s, err)
	}
	return uint32(n), nil
}
