package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dando385/slotcommit/internal/commitment"
	"github.com/dando385/slotcommit/internal/config"
	"github.com/dando385/slotcommit/internal/logging"
	"github.com/dando385/slotcommit/internal/output"
	"github.com/dando385/slotcommit/internal/report"
	"github.com/dando385/slotcommit/internal/rpc"
)

const (
	outputTerminal = "terminal"
	outputJSON     = "json"
)

type options struct {
	configPath   string
	primaryURL   string
	secondaryURL string
	timeout      time.Duration
	strict       bool
	strictSet    bool
	output       string
	report       bool
	reportDir    string
	noColor      bool
	verbose      bool
	logFormat    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "slotcommit <contract_address> <slot(hex|int)> [block_tag|block_number]",
		Short: "Fetch a storage slot and derive a Keccak-256 commitment",
		Long: `Read one storage slot from an EVM JSON-RPC endpoint and commit to it with
keccak256(chainId || address || slot || value || blockNumber).

When a secondary endpoint is configured (RPC_URL_2 or --rpc-url-2) the same
query is repeated against it and chain id, block number, value and commitment
are compared. A mismatch is reported as a warning; use --strict to make it
fail the run.

The block defaults to latest and may be latest, finalized, safe, pending or a
block number. Historical blocks usually need an archive node.

Examples:
  slotcommit 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 0x0
  slotcommit 0x00000000219ab540356cBB839Cbe05303d7705Fa 5 latest
  slotcommit 0x00000000219ab540356cBB839Cbe05303d7705Fa 5 18000000 --rpc-url-2 https://archive.example.org`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			opts.strictSet = cmd.Flags().Changed("strict")
			return run(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfigPath+"; environment variables when unset)")
	flags.StringVar(&opts.primaryURL, "rpc-url", "", "primary RPC URL (overrides $"+config.EnvPrimaryURL+")")
	flags.StringVar(&opts.secondaryURL, "rpc-url-2", "", "secondary RPC URL for the cross-check (overrides $"+config.EnvSecondaryURL+")")
	flags.DurationVar(&opts.timeout, "timeout", 0, fmt.Sprintf("per-request timeout (default %s)", config.DefaultTimeout))
	flags.BoolVar(&opts.strict, "strict", false, "exit non-zero when the cross-check finds a mismatch")
	flags.StringVarP(&opts.output, "output", "o", outputTerminal, "output format: terminal|json")
	flags.BoolVar(&opts.report, "report", false, "also write a timestamped JSON report")
	flags.StringVar(&opts.reportDir, "report-dir", report.DefaultDir, "directory for --report files")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	flags.StringVar(&opts.logFormat, "log-format", logging.FormatConsole, "log format: console|json")

	return cmd
}

func run(ctx context.Context, opts *options, args []string, stdout, stderr io.Writer) error {
	// Normalize before anything touches the network.
	var block string
	if len(args) == 3 {
		block = args[2]
	}
	in, err := commitment.ParseInput(args[0], args[1], block)
	if err != nil {
		return err
	}

	format := strings.ToLower(opts.output)
	if format != outputTerminal && format != outputJSON {
		return fmt.Errorf("unknown output format %q (expected terminal or json)", opts.output)
	}
	logFormat, err := logging.ParseFormat(opts.logFormat)
	if err != nil {
		return err
	}
	if opts.noColor || format == outputJSON {
		output.DisableColors()
	}

	logger := logging.New(stderr, logging.Options{
		Verbose: opts.verbose,
		Format:  logFormat,
		NoColor: opts.noColor,
	})

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	primary := newSource("primary", cfg.Primary, logger)
	var secondary *commitment.Source
	if cfg.Secondary != nil {
		s := newSource("secondary", *cfg.Secondary, logger)
		secondary = &s
	}

	logger.Debug().Str("query", in.String()).Bool("cross_check", secondary != nil).Msg("fetching")

	out, err := commitment.NewFetcher(logger).Run(ctx, in, primary, secondary)
	if err != nil {
		return err
	}

	doc := output.NewDocument(out, time.Now())
	if format == outputJSON {
		if err := output.RenderJSON(stdout, doc); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	} else if err := output.NewTerminalFormatter(out).Format(stdout); err != nil {
		return fmt.Errorf("failed to display results: %w", err)
	}

	if opts.report {
		path, err := report.WriteJSON(opts.reportDir, "commitment", doc)
		if err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		fmt.Fprintf(stderr, "JSON report written to: %s\n", path)
	}

	if out.Check != nil && !out.Check.Sound() && cfg.Strict {
		return fmt.Errorf("%w: %s differ", commitment.ErrMismatch, strings.Join(out.Check.MismatchedNames(), ", "))
	}
	return nil
}

// loadConfig reads the config file when one is named by flag or environment,
// otherwise the RPC_URL variables, then applies flag overrides.
func loadConfig(opts *options, logger zerolog.Logger) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	var cfg *config.Config
	if path != "" {
		c, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.FromEnv()
	}

	overrides := config.Overrides{
		PrimaryURL:   opts.primaryURL,
		SecondaryURL: opts.secondaryURL,
		Timeout:      opts.timeout,
	}
	if opts.strictSet {
		overrides.Strict = &opts.strict
	}
	cfg.Apply(overrides)
	if err := cfg.Validate(logger); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(role string, e config.Endpoint, logger zerolog.Logger) commitment.Source {
	client := rpc.NewClient(e.Name, e.URL, e.Timeout, logger)
	logger.Debug().
		Str("role", role).
		Str("endpoint", client.Name()).
		Str("host", client.Host()).
		Dur("timeout", e.Timeout).
		Msg("endpoint configured")
	return commitment.Source{Name: client.Name(), Endpoint: client}
}
