package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/keycalc/internal/cliconfig"
	"github.com/bft-labs/keycalc/pkg/keycalc"
)

func newREPLCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read key tokens from stdin and print the display after each line",
		Long: `Read whitespace-separated key tokens from stdin, one line at a time.

Tokens: 0-9 . + - * / = c neg %   (also x × ÷ ac clear ± +/-)
Numbers may be typed whole ("12", "3.5"); each digit is pressed in turn.
Type "quit" or send EOF to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, c)
		},
	}
}

func runREPL(cmd *cobra.Command, c *cli) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.cfgFile != "" && !c.changed["log-level"] {
		w := cliconfig.NewWatcher(c.cfgFile, cliconfig.DefaultDebounce, func(fc cliconfig.FileConfig) {
			if fc.LogLevel != "" {
				lvl := cliconfig.ApplyLogLevel(fc.LogLevel)
				c.log.Info().Str("level", lvl.String()).Msg("log level updated")
			}
		}, c.logger())
		go func() {
			if err := w.Run(ctx); err != nil {
				c.log.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	calc, err := keycalc.New(c.calculatorConfig(), keycalc.WithLogger(c.logger()))
	if err != nil {
		return err
	}
	return repl(ctx, calc, cmd.InOrStdin(), cmd.OutOrStdout())
}

// repl presses the tokens of each input line and prints the display once the
// line is done. Unknown tokens are reported and skipped.
func repl(ctx context.Context, calc *keycalc.Calculator, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, formatDisplay(calc.Display()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		for _, tok := range strings.Fields(scanner.Text()) {
			switch strings.ToLower(tok) {
			case "quit", "exit":
				return nil
			}
			if err := pressToken(ctx, calc, tok); err != nil {
				if errors.Is(err, keycalc.ErrUnknownKey) {
					fmt.Fprintf(out, "unknown key %q\n", tok)
					continue
				}
				return err
			}
		}
		fmt.Fprintln(out, formatDisplay(calc.Display()))
	}
	return scanner.Err()
}

// pressToken presses tok as one key, or as one key per character when tok is
// a multi-character number such as "12" or "3.5".
func pressToken(ctx context.Context, calc *keycalc.Calculator, tok string) error {
	keys := splitNumber(tok)
	if keys == nil {
		return calc.Press(ctx, tok)
	}
	for _, k := range keys {
		if err := calc.Press(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// splitNumber returns the characters of tok when it is made only of digits
// and decimal points and has more than one character; otherwise nil.
func splitNumber(tok string) []string {
	if len(tok) < 2 {
		return nil
	}
	keys := make([]string, 0, len(tok))
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if (c < '0' || c > '9') && c != '.' {
			return nil
		}
		keys = append(keys, string(c))
	}
	return keys
}

// formatDisplay renders a display as a single line, e.g. "3  [9 ×]".
func formatDisplay(d keycalc.Display) string {
	var b strings.Builder
	b.WriteString(d.Text)
	if d.Pending != "" {
		fmt.Fprintf(&b, "  [%s]", d.Pending)
	}
	if d.Offline {
		b.WriteString("  (offline)")
	}
	return b.String()
}
