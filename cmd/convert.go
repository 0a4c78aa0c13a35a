// =============================================================================
// Seatmap Converter - Convert Command
// =============================================================================
//
// This file holds the conversion run by the root command.
//
// FLAGS:
//   --format       : Output format, json or xlsx (overrides output_format)
//   --no-validate  : Skip the output contract check
//
// PROCESSING PIPELINE:
//   1. Load configuration (config.yaml, .env, SEATMAP_* environment)
//   2. Build the logger
//   3. Convert the file
//   4. Report the outcome
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ginjaninja78/seatmap-converter/internal/config"
	"github.com/ginjaninja78/seatmap-converter/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputFormat overrides the configured output format when set.
var outputFormat string

// noValidate disables the output contract check.
var noValidate bool

func init() {
	rootCmd.Flags().StringVar(
		&outputFormat,
		"format",
		"",
		"Output format: json or xlsx (default from configuration)",
	)
	rootCmd.Flags().BoolVar(
		&noValidate,
		"no-validate",
		false,
		"Skip checking the result against the output contract",
	)
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert converts one file with the configuration assembled from files,
// environment and flags.
func runConvert(cmd *cobra.Command, inputPath string) (err error) {
	cfg, err := config.LoadConfig(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if noValidate {
		cfg.ValidateOutput = false
	}

	log, closeLog, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeLog())
	}()

	result := converter.New(inputPath, cfg, log).Run()
	if result.Error != nil {
		log.Debug("Conversion failed", zap.Error(result.Error), zap.Duration("elapsed", result.Stats.ProcessingTime))
		return result.Error
	}

	log.Info("Conversion complete",
		zap.String("output", result.OutputFile),
		zap.Stringer("dialect", result.Dialect),
		zap.Int("flights", result.Stats.Flights),
		zap.Int("seats", result.Stats.Seats),
		zap.Int("available", result.Stats.AvailableSeats),
		zap.Int("warnings", result.Stats.ValidationWarnings),
		zap.Duration("elapsed", result.Stats.ProcessingTime))
	return nil
}
