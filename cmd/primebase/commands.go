package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JoshOrndorff/PrimeBase/primebase"
)

func (a *app) parse(text string) (*primebase.Number, error) {
	n, err := a.sys.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("operand %q: %w", text, err)
	}
	return n, nil
}

// label names a result after the operation that produced it.
func label(op string, args []string) string {
	return op + "(" + strings.Join(args, ", ") + ")"
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe N...",
		Short: "Show the value and factorization of each number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]report, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.settings.Workers)
			for i, arg := range args {
				i, arg := i, arg
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					n, err := a.parse(arg)
					if err != nil {
						return err
					}
					r, err := newReport(arg, n)
					if err != nil {
						return fmt.Errorf("describing %q: %w", arg, err)
					}
					reports[i] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			a.logger.Debug("described", zap.Int("count", len(reports)))
			return a.render(cmd, reports)
		},
	}
}

// foldStep combines the accumulator with the next operand. It may update
// acc in place and return it, or return a new Number.
type foldStep func(acc, n *primebase.Number) (*primebase.Number, error)

func inPlace(op func(*primebase.Number, *primebase.Number) error) foldStep {
	return func(acc, n *primebase.Number) (*primebase.Number, error) {
		if err := op(acc, n); err != nil {
			return nil, err
		}
		return acc, nil
	}
}

// newFoldCmd builds a command applying step left to right over its
// operands.
func newFoldCmd(a *app, name, short string, step foldStep) *cobra.Command {
	return &cobra.Command{
		Use:   name + " A B...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := a.parse(args[0])
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				n, err := a.parse(arg)
				if err != nil {
					return err
				}
				if acc, err = step(acc, n); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			return a.renderNumber(cmd, label(name, args), acc)
		},
	}
}

func newPowerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "power A K",
		Short: "Raise A to the power K",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.parse(args[0])
			if err != nil {
				return err
			}
			// K may be zero, which Parse rejects as a standalone number.
			k := a.sys.Zero()
			if args[1] != "0" {
				if k, err = a.parse(args[1]); err != nil {
					return err
				}
			}
			if err := base.ToPower(k); err != nil {
				return fmt.Errorf("power: %w", err)
			}
			return a.renderNumber(cmd, label("power", args), base)
		},
	}
}

func newDivideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "divide A B",
		Short: "Divide A by B exactly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.parse(args[0])
			if err != nil {
				return err
			}
			d, err := a.parse(args[1])
			if err != nil {
				return err
			}
			if err := n.DivideBy(d); err != nil {
				return fmt.Errorf("divide: %w", err)
			}
			return a.renderNumber(cmd, label("divide", args), n)
		},
	}
}

func newDimensionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dimension N",
		Short: "Sum of the exponents of N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.parse(args[0])
			if err != nil {
				return err
			}
			d, err := n.Dimension()
			if err != nil {
				return fmt.Errorf("dimension: %w", err)
			}
			return a.render(cmd, dimensionReport{Input: args[0], Dimension: d.String()})
		},
	}
}

type dimensionReport struct {
	Input     string `json:"input" yaml:"input"`
	Dimension string `json:"dimension" yaml:"dimension"`
}

func (d dimensionReport) text() string {
	return fmt.Sprintf("Dimension: %s", d.Dimension)
}
