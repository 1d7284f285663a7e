package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/hlatime/internal/config"
	"github.com/roach88/hlatime/internal/factory"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string
	EnvFiles []string
	Domain   string
	Epsilon  float64
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hlatime CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hlatime",
		Short: "HLA logical time toolkit",
		Long: `Build, compare, advance and encode HLA logical time values.

Values are interpreted in the federation's time domain (HLAfloat64Time or
HLAinteger64Time), taken from --config, overridden by --domain and --epsilon.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVarP(&opts.Config, "config", "c", "", "federation config file (.cue, .yaml, .json)")
	flags.StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv files to load before reading the config")
	flags.StringVar(&opts.Domain, "domain", "", "time domain override (float64|integer64)")
	flags.Float64Var(&opts.Epsilon, "epsilon", 0, "Float64 tolerance override")

	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewAdvanceCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Federation resolves the effective federation settings: defaults, then the
// config file, then flag overrides.
func (o *RootOptions) Federation() (config.Federation, error) {
	if err := config.LoadEnvFiles(o.EnvFiles...); err != nil {
		return config.Federation{}, err
	}

	fed := config.Default()
	if o.Config != "" {
		loaded, err := config.Load(o.Config)
		if err != nil {
			return config.Federation{}, err
		}
		if err := fed.Merge(loaded); err != nil {
			return config.Federation{}, err
		}
	}

	if err := fed.Merge(config.Federation{TimeDomain: o.Domain, Epsilon: o.Epsilon}); err != nil {
		return config.Federation{}, err
	}
	return fed, nil
}

// Factory builds the time factory for the effective federation settings.
func (o *RootOptions) Factory() (*factory.Factory, config.Federation, error) {
	fed, err := o.Federation()
	if err != nil {
		return nil, config.Federation{}, err
	}
	fac, err := fed.Factory()
	if err != nil {
		return nil, config.Federation{}, err
	}
	return fac, fed, nil
}

// Logger returns a debug logger on w when --verbose is set, otherwise a
// logger that discards everything.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format: o.Format,
		Writer: cmd.OutOrStdout(),
	}
}
