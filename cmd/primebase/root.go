package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JoshOrndorff/PrimeBase/primebase"
	"github.com/JoshOrndorff/PrimeBase/primes"
)

// app carries what every subcommand needs once flags are resolved.
type app struct {
	v        *viper.Viper
	settings settings
	logger   *zap.Logger
	sys      *primebase.System
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "primebase",
		Short: "Arithmetic on numbers stored as prime factorizations",
		Long: `primebase stores positive integers as the exponents of their prime
factorization, where every exponent is again such a number.

Operands are written as decimals (60) or as bracketed exponent lists over
the primes 2, 3, 5, ... ([2, 1, 1] is 60). Lists nest, so [[[10]]] is
2^(2^(2^10)), a value whose magnitude is never computed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(a.v, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(s.LogLevel)
			if err != nil {
				return err
			}
			a.settings = s
			a.logger = logger
			a.sys = primebase.NewSystem(primebase.Config{
				Registry:         primes.NewRegistry(primes.WithLogger(logger)),
				MaxOrdinal:       s.MaxOrdinal,
				MaxMagnitudeBits: s.MaxMagnitudeBits,
				Logger:           logger,
			})
			logger.Debug("configured",
				zap.Int("max_ordinal", s.MaxOrdinal),
				zap.Int("max_magnitude_bits", s.MaxMagnitudeBits),
				zap.String("output", s.Output))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		newDescribeCmd(a),
		newFoldCmd(a, "multiply", "Multiply numbers", inPlace((*primebase.Number).MultiplyBy)),
		newFoldCmd(a, "add", "Add numbers", inPlace((*primebase.Number).Add)),
		newFoldCmd(a, "gcf", "Greatest common factor of numbers", (*primebase.Number).GreatestCommonFactorWith),
		newFoldCmd(a, "lcm", "Least common multiple of numbers", (*primebase.Number).LeastCommonMultipleWith),
		newPowerCmd(a),
		newDivideCmd(a),
		newDimensionCmd(a),
	)
	return root
}
