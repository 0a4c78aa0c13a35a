// =============================================================================
// Seatmap Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// converts the seatmap file given as its only argument; subcommands are
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (seatmap FILE)
//   └── versionCmd (seatmap version)
//
// ERRORS:
//   Any failure is reported as one highlighted line on stdout and the
//   process exits with status 1. Diagnostics go to the log on stderr.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// errorPrefix starts the line printed on failure.
const errorPrefix = "\033[91mERROR:\033[0m "

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seatmap FILE",
	Short: "Seatmap Converter - Normalize airline seatmap XML into flight/row/seat JSON",
	Long: `Seatmap Converter reads an airline seatmap XML document, either the legacy
SOAP-wrapped schema or the IATA NDC schema, and writes the flights, rows and
seats it describes as a single JSON document (or an XLSX seat report).

The output is written next to the input: everything from the first "." of the
file name is replaced by the output suffix, e.g. seatmap1.xml becomes
seatmap1_parsed.json.

A file whose name matches a subcommand (e.g. "version") must be passed with a
path prefix, as in ./version.

Example Usage:
  seatmap seatmap1.xml                    # Convert to seatmap1_parsed.json
  seatmap --format xlsx seatmap2.xml      # Write an XLSX seat report
  seatmap --config ./my.yaml seatmap1.xml # Use a custom configuration file`,

	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("must pass a file path")
		}
		return nil
	},

	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stdout, err)
		os.Exit(1)
	}
}

// printError writes the highlighted error line.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorPrefix+err.Error())
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// A missing default file is not an error.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
