package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	logAdapter "github.com/bft-labs/keycalc/internal/adapters/log"
	"github.com/bft-labs/keycalc/internal/cliconfig"
	"github.com/bft-labs/keycalc/pkg/keycalc"
)

const longHelp = `A keypad calculator that evaluates on a remote compute service.

Each calculation is sent to the compute service. When the service cannot be
reached the calculator switches to local arithmetic for the rest of the
session; errors the service reports, like division by zero, are shown as-is.

Configuration is read from flags, then KEYCALC_* environment variables, then
the config file (default $HOME/.keycalc/config.toml).`

var exampleUsage = strings.TrimSpace(`
  keycalc repl
  echo "12 + 30 =" | keycalc repl --local-only
  keycalc play testdata/scenarios/chained_operations.yaml
  keycalc eval mul 6 7 --service-url http://calc.internal:8080
  keycalc serve --addr :8080
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return keycalc.Version
}

// cli carries the resolved configuration shared by all subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string

	// cfgFile is the config file that was loaded, empty when none was.
	cfgFile string
	changed map[string]bool

	log zerolog.Logger
}

// logger returns the ports.Logger view of the CLI logger.
func (c *cli) logger() *logAdapter.ZerologAdapter {
	return logAdapter.NewZerologAdapterWithLogger(c.log)
}

// load resolves configuration for cmd: flags, then env, then file, then defaults.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	c.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { c.changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, c.changed); err != nil {
			return err
		}
		c.cfgFile = cfgFile
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, c.changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	cliconfig.ApplyLogLevel(c.cfg.LogLevel)
	c.log = cliconfig.NewLogger(c.cfg, os.Stderr)
	c.log.Debug().Interface("config", c.cfg).Str("config_file", c.cfgFile).Msg("configuration")
	return nil
}

// calculatorConfig maps the CLI configuration onto the library's.
func (c *cli) calculatorConfig() keycalc.Config {
	return keycalc.Config{
		ServiceURL: c.cfg.ServiceURL,
		Timeout:    c.cfg.Timeout,
		LocalOnly:  c.cfg.LocalOnly,
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{
		cfg: cliconfig.DefaultConfig(),
		log: cliconfig.NewLogger(cliconfig.DefaultConfig(), os.Stderr),
	}

	root := &cobra.Command{
		Use:           "keycalc",
		Short:         "Keypad calculator backed by a remote compute service",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, c)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.keycalc/config.toml)")
	flags.StringVar(&c.cfg.ServiceURL, "service-url", c.cfg.ServiceURL, "base URL of the compute service")
	flags.DurationVar(&c.cfg.Timeout, "timeout", c.cfg.Timeout, "timeout for a single remote calculation")
	flags.BoolVar(&c.cfg.LocalOnly, "local-only", c.cfg.LocalOnly, "never contact the compute service")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&c.cfg.LogFormat, "log-format", c.cfg.LogFormat, "log format (console or json)")

	root.AddCommand(
		newREPLCommand(c),
		newPlayCommand(c),
		newEvalCommand(c),
		newServeCommand(c),
	)
	return root
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "keycalc:", err)
		os.Exit(1)
	}
}
