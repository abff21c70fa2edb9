package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/bayesflow/internal/experiment"
)

type estimateFlags struct {
	configPath string
	n          int
	seed       uint64
}

func newEstimateCmd(newLogger func(*cobra.Command) (*slog.Logger, error)) *cobra.Command {
	var flags estimateFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Run an estimator experiment",
		Long: `Run the estimator described by a YAML experiment file and print the
estimate next to the analytic reference when one exists.

Functions: ` + strings.Join(experiment.FunctionNames(), ", ") + `

Examples:
  bayesflow estimate --config examples/experiments/importance_normal.yaml
  bayesflow estimate -c experiment.yaml --n 100000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}

			cfg, err := experiment.Load(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("n") {
				cfg.N = flags.n
			}
			if cmd.Flags().Changed("seed") {
				seed := flags.seed
				cfg.Seed = &seed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := experiment.NewRunner(logger).Run(ctx, cfg)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to the experiment YAML file")
	cmd.Flags().IntVar(&flags.n, "n", 0, "override the number of samples")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "override the random seed")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func printResult(w io.Writer, res *experiment.Result) {
	fmt.Fprintf(w, "estimator: %s\n", res.Estimator)
	fmt.Fprintf(w, "function:  %s\n", res.Function)
	fmt.Fprintf(w, "samples:   %d\n", res.N)
	fmt.Fprintf(w, "shape:     %v\n", []int(res.Estimate.Shape()))
	fmt.Fprintf(w, "estimate:  %s\n", formatValues(res.Estimate.Data()))
	if res.Reference != nil {
		fmt.Fprintf(w, "reference: %s\n", formatValues(res.Reference.Data()))
		fmt.Fprintf(w, "rel error: %s\n", formatValues(res.RelativeError()))
	}
	fmt.Fprintf(w, "elapsed:   %s\n", res.Elapsed.Round(time.Millisecond))
}

func formatValues(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
