package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/harness"
	"github.com/bft-labs/keycalc/pkg/keycalc"
)

// keypad adapts a Calculator to harness.Keypad.
type keypad struct {
	*keycalc.Calculator
}

func (k keypad) Press(ctx context.Context, key domain.Key) error {
	return k.PressKey(ctx, key)
}

func newPlayCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "play <scenario.yaml>...",
		Short: "Replay scripted key scenarios and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				scenario, err := harness.LoadScenario(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				calc, err := keycalc.New(c.calculatorConfig(), keycalc.WithLogger(c.logger()))
				if err != nil {
					return err
				}

				res, err := harness.Run(cmd.Context(), scenario, keypad{calc})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				fmt.Fprint(out, harness.Transcript(res))
				if res.Pass {
					fmt.Fprintln(out, "PASS")
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL\n  %s\n", strings.Join(res.Errors, "\n  "))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}
}
