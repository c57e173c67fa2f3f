package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	httpAdapter "github.com/bft-labs/keycalc/internal/adapters/http"
	"github.com/bft-labs/keycalc/internal/adapters/local"
	"github.com/bft-labs/keycalc/internal/app"
	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

func newEvalCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <add|subtract|multiply|divide> <a> <b>",
		Short: "Evaluate a single operation, falling back to local arithmetic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := domain.ParseOperatorName(args[0])
			if err != nil {
				return err
			}
			a, err := domain.ParseNumber(args[1])
			if err != nil {
				return fmt.Errorf("operand %q: %w", args[1], err)
			}
			b, err := domain.ParseNumber(args[2])
			if err != nil {
				return fmt.Errorf("operand %q: %w", args[2], err)
			}

			logger := c.logger()
			var remote ports.Evaluator
			if !c.cfg.LocalOnly {
				remote = httpAdapter.NewRemoteEvaluator(&http.Client{}, c.cfg.ServiceURL, c.cfg.Timeout, logger)
			}
			d := app.NewDispatcher(remote, local.NewEvaluator(), logger)

			out := d.Calculate(cmd.Context(), a, b, op)
			if v, ok := out.Value(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), domain.FormatNumber(v))
				return nil
			}
			return out.Failure()
		},
	}
}
