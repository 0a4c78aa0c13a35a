// =============================================================================
// Seatmap Converter - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for a single file, from
// the seatmap XML document to the written output file.
//
// CONVERSION PIPELINE:
//   1. Read the XML document and detect its dialect
//   2. Extract flights, rows and seats into the unified model
//   3. Check the result against the output contract (optional)
//   4. Serialize the result (JSON or XLSX)
//   5. Write the output file atomically next to the input
//
// Nothing is written unless every step succeeds.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/seatmap-converter/internal/config"
	"github.com/ginjaninja78/seatmap-converter/internal/seatmap"
	"github.com/ginjaninja78/seatmap-converter/internal/types"
	"github.com/ginjaninja78/seatmap-converter/internal/validation"
	"github.com/ginjaninja78/seatmap-converter/internal/writer"
	"github.com/ginjaninja78/seatmap-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// InputPath is the path to the input file that was processed.
	InputPath string

	// OutputFile is the path to the generated file.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Dialect is the detected input dialect.
	Dialect seatmap.Dialect

	// Flights is the converted data; nil if processing failed.
	Flights types.Flights

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	types.Counts

	// ValidationWarnings is the number of non-fatal output contract findings.
	ValidationWarnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single seatmap file.
type Converter struct {
	inputPath string
	config    *config.Config
	parser    *seatmap.Parser
	log       *zap.Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the input XML file.
//   - cfg: The application configuration; nil uses the defaults.
//   - log: The logger; nil disables logging.
func New(inputPath string, cfg *config.Config, log *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		inputPath: inputPath,
		config:    cfg,
		parser:    seatmap.New(log, seatmap.WithAvailableKey(cfg.AvailableDefinitionKey)),
		log:       log.With(zap.String("file", inputPath)),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run converts the input file and writes the output file.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result.InputPath = c.inputPath
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.log.Info("Processing file")

	format, err := writer.ParseFormat(c.config.OutputFormat)
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 1-2: PARSE DOCUMENT
	// =========================================================================

	flights, dialect, err := c.parser.ParseFile(c.inputPath)
	result.Dialect = dialect
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.Counts = flights.Count()
	c.log.Debug("Parsed document",
		zap.Stringer("dialect", dialect),
		zap.Int("flights", result.Stats.Flights),
		zap.Int("rows", result.Stats.Rows),
		zap.Int("seats", result.Stats.Seats),
		zap.Int("available", result.Stats.AvailableSeats))

	// =========================================================================
	// STEP 3: VALIDATE OUTPUT CONTRACT
	// =========================================================================

	if c.config.ValidateOutput {
		warnings, err := c.validate(flights)
		result.Stats.ValidationWarnings = warnings
		if err != nil {
			result.Error = err
			return result
		}
	}

	// =========================================================================
	// STEP 4: SERIALIZE
	// =========================================================================

	data, err := writer.GenerateWithOptions(flights, format, writer.GenerateOptions{Indent: c.config.Indent})
	if err != nil {
		result.Error = fmt.Errorf("failed to generate output: %w", err)
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	outputPath := utils.OutputPath(c.inputPath, c.config.OutputSuffix, format.Extension())
	if err := utils.WriteFileAtomic(outputPath, data); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	c.log.Info("Wrote output", zap.String("output", outputPath))

	result.OutputFile = outputPath
	result.Flights = flights
	result.Success = true
	return result
}

// validate checks flights against the output contract and returns the number
// of warnings. Fatal findings are reported as an OutputContract error.
func (c *Converter) validate(flights types.Flights) (int, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return 0, err
	}
	vr, err := v.ValidateAll(flights)
	if err != nil {
		return 0, err
	}

	for _, ve := range vr.Errors {
		if ve.Severity == validation.SeverityWarning {
			c.log.Warn("Output contract warning", zap.String("detail", ve.Error()))
		} else {
			c.log.Error("Output contract violation", zap.String("detail", ve.Error()))
		}
	}
	if !vr.IsValid {
		first := vr.Errors[0]
		for _, ve := range vr.Errors {
			if ve.Severity == validation.SeverityError {
				first = ve
				break
			}
		}
		return vr.WarningCount, seatmap.NewError(seatmap.KindOutputContract, "",
			"%d violation(s), first: %s", vr.ErrorCount, first.Error())
	}
	return vr.WarningCount, nil
}
