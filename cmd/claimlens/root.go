package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spektr-org/claimlens/engine"
	"github.com/spektr-org/claimlens/internal/config"
	"github.com/spektr-org/claimlens/internal/logging"
)

// Set by the linker.
var (
	version = "0.3.0"
	commit  = "none"
	date    = "unknown"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	verbosity  int
	configFile string
	envFile    string
	locale     string

	cfg  *config.Config
	opts []engine.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "claimlens",
		Short: "Chart and table specs for healthcare claim-risk datasets",
		Long: `claimlens turns fraud-risk claim datasets (JSON or CSV) into Plotly chart
specs and DataTables table specs with localized labels and formatted cells.

Examples:
  claimlens table --data top_codes.json --format text
  claimlens chart bar --data spend.csv --x HCPCS_CODE --y total_paid
  claimlens chart benford --data digits.json --pretty
  claimlens serve --addr :8080`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/claimlens/config.toml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file loaded before CLAIMLENS_* variables (default .env)")
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "label language (overrides config)")

	root.AddCommand(
		newChartCmd(a),
		newTableCmd(a),
		newColumnsCmd(a),
		newLabelsCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	logging.Setup(a.verbosity, os.Stderr)

	cfg, err := config.Load(config.LoadOptions{File: a.configFile, EnvFile: a.envFile})
	if err != nil {
		return err
	}
	if a.verbosity == 0 && cfg.Log.Level != "" {
		if err := logging.SetLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.opts = append(opts, engine.WithLogger(logging.GetLogger("engine")))

	log.Debug().Str("command", cmd.Name()).Str("locale", cfg.Locale).Msg("Command started")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "claimlens version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
			return nil
		},
	}
}
