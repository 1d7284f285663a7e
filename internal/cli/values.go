package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hlatime/internal/config"
	"github.com/roach88/hlatime/internal/factory"
	"github.com/roach88/hlatime/internal/ltime"
	"github.com/roach88/hlatime/internal/wire"
)

// ValueResult is the JSON payload for commands producing a time value.
type ValueResult struct {
	Domain string `json:"domain"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Hex    string `json:"hex,omitempty"`
}

// CompareResult is the JSON payload for the compare command.
type CompareResult struct {
	Domain string `json:"domain"`
	A      string `json:"a"`
	B      string `json:"b"`
	Order  string `json:"order"`
}

type factoryRun func(out *OutputFormatter, fac *factory.Factory, fed config.Federation) error

// withFactory resolves the federation and runs fn with its factory. Config
// problems are command errors.
func (o *RootOptions) withFactory(cmd *cobra.Command, fn factoryRun) error {
	out := o.formatter(cmd)
	fac, fed, err := o.Factory()
	if err != nil {
		code := ErrCodeConfig
		if ltime.CodeOf(err) != "" {
			code = ErrorCode(err)
		}
		if outErr := out.Error(code, err.Error(), nil); outErr != nil {
			return outErr
		}
		return reportedExitError(ExitCommandError, "failed to load federation config", err)
	}

	o.Logger(cmd.ErrOrStderr()).Debug("federation resolved",
		"name", fed.Name,
		"domain", fac.Domain().HLAName(),
		"epsilon", fac.Tolerance())
	return fn(out, fac, fed)
}

func valueResult(v ltime.Value) ValueResult {
	return ValueResult{
		Domain: v.Domain().HLAName(),
		Kind:   v.Kind().String(),
		Value:  v.String(),
	}
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "encode <literal>",
		Short: "Encode a time or interval literal as 9 wire bytes",
		Long: `Parse a literal in the federation's domain and print its wire form:
one domain tag byte followed by the 8-byte big-endian value, as hex.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withFactory(cmd, func(out *OutputFormatter, fac *factory.Factory, _ config.Federation) error {
				k, err := ltime.ParseKind(kind)
				if err != nil {
					return out.Fail(ExitCommandError, err)
				}
				v, err := fac.FromLiteral(fac.Domain(), k, args[0])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				b, err := fac.Encode(v)
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				res := valueResult(v)
				res.Hex = wire.FormatHex(b)
				return out.Success(res.Hex, res)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "time", "value kind (time|interval)")
	return cmd
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode 9 wire bytes into a time or interval",
		Long: `Decode a tagged wire value given as hex. The tag must match the
federation's domain and the value passes the same validation as a literal.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withFactory(cmd, func(out *OutputFormatter, fac *factory.Factory, _ config.Federation) error {
				k, err := ltime.ParseKind(kind)
				if err != nil {
					return out.Fail(ExitCommandError, err)
				}
				b, err := wire.ParseHex(args[0])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				v, err := fac.FromWire(k, b)
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				res := valueResult(v)
				return out.Success(fmt.Sprintf("%s %s %s", res.Domain, res.Kind, res.Value), res)
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "time", "value kind (time|interval)")
	return cmd
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "compare <a> <b>",
		Short:         "Compare two times (less, equal or greater)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withFactory(cmd, func(out *OutputFormatter, fac *factory.Factory, _ config.Federation) error {
				a, err := fac.ParseTime(args[0])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				b, err := fac.ParseTime(args[1])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				ord, err := fac.Compare(a, b)
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				return out.Success(ord.String(), CompareResult{
					Domain: fac.Domain().HLAName(),
					A:      a.String(),
					B:      b.String(),
					Order:  ord.String(),
				})
			})
		},
	}
}

// NewAdvanceCommand creates the advance command.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	var back bool

	cmd := &cobra.Command{
		Use:   "advance <time> [interval]",
		Short: "Add an interval to a time",
		Long: `Add an interval to a time. Without an interval argument the
federation's configured lookahead is used.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withFactory(cmd, func(out *OutputFormatter, fac *factory.Factory, fed config.Federation) error {
				t, err := fac.ParseTime(args[0])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}

				var i ltime.Interval
				if len(args) == 2 {
					i, err = fac.ParseInterval(args[1])
				} else {
					i, err = fed.LookaheadInterval(fac)
				}
				if err != nil {
					return out.Fail(ExitFailure, err)
				}

				var next ltime.Time
				if back {
					next, err = fac.Subtract(t, i)
				} else {
					next, err = fac.Add(t, i)
				}
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				return out.Success(next.String(), valueResult(next))
			})
		},
	}

	cmd.Flags().BoolVar(&back, "back", false, "subtract the interval instead of adding it")
	return cmd
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Print the interval a - b",
		Long: `Print the interval from b to a. Fails when a is earlier than b,
since intervals are never negative.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withFactory(cmd, func(out *OutputFormatter, fac *factory.Factory, _ config.Federation) error {
				a, err := fac.ParseTime(args[0])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				b, err := fac.ParseTime(args[1])
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				d, err := fac.Difference(a, b)
				if err != nil {
					return out.Fail(ExitFailure, err)
				}
				return out.Success(d.String(), valueResult(d))
			})
		},
	}
}
