// =============================================================================
// Seatmap Converter - Output Contract Validation
// =============================================================================
//
// This module checks converted seatmaps against the output contract before
// they are written. It validates at two levels:
//   1. Schema: the serialized JSON against the embedded JSON schema
//      (seatmap.schema.json) - field presence, types and price format
//   2. Semantic: rules a schema cannot express across fields
//      - an unavailable seat carries no price and no taxes
//      - a flight is keyed by its own identifier
//      - row and seat identifiers are unique within a flight
//      - departure time has the "HH:MM" shape
//
// ERROR HANDLING:
//   - Errors are collected, not returned on the first failure
//   - Each error names the flight, row and seat it concerns
//   - Errors can be warnings (written anyway) or fatal (conversion fails)
//
// =============================================================================

package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	// Severity indicates the severity of the error.
	// "error" = fatal, the conversion fails
	// "warning" = non-fatal, the output is still written
	Severity string

	// Flight, Row and Seat locate the error; empty when not applicable.
	Flight string
	Row    string
	Seat   string

	// Field is the JSON field (or schema path) that failed validation.
	Field string

	// Value is the offending value.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var where []string
	if e.Flight != "" {
		where = append(where, "flight "+e.Flight)
	}
	if e.Row != "" {
		where = append(where, "row "+e.Row)
	}
	if e.Seat != "" {
		where = append(where, "seat "+e.Seat)
	}
	location := ""
	if len(where) > 0 {
		location = " " + strings.Join(where, ", ") + ","
	}
	return fmt.Sprintf("[%s]%s field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity), location, e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all validation errors (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// SeatsValidated is the total number of seats checked.
	SeatsValidated int
}

func (r *ValidationResult) add(e *ValidationError, warningsAsErrors bool) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
		return
	}
	r.WarningCount++
	if warningsAsErrors {
		r.IsValid = false
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

//go:embed seatmap.schema.json
var outputSchema []byte

var timePattern = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)

// Validator checks converted seatmaps against the output contract.
type Validator struct {
	schema  *gojsonschema.Schema
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors treats warnings as fatal errors.
	// Default: false
	TreatWarningsAsErrors bool

	// SkipSemanticValidation only runs the schema check.
	// Default: false
	SkipSemanticValidation bool
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		TreatWarningsAsErrors:  false,
		SkipSemanticValidation: false,
	}
}

// NewValidator creates a Validator with default options.
func NewValidator() (*Validator, error) {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(outputSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load output schema: %w", err)
	}
	return &Validator{schema: schema, options: options}, nil
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// Validate checks flights with default options and returns the errors found.
func Validate(flights types.Flights) ([]*ValidationError, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	result, err := v.ValidateAll(flights)
	if err != nil {
		return nil, err
	}
	return result.Errors, nil
}

// ValidateAll runs the schema check and the semantic rules.
func (v *Validator) ValidateAll(flights types.Flights) (*ValidationResult, error) {
	if flights == nil {
		flights = types.Flights{}
	}
	data, err := json.Marshal(flights)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flights: %w", err)
	}

	result, err := v.ValidateJSON(data)
	if err != nil {
		return nil, err
	}
	if v.options.SkipSemanticValidation {
		return result, nil
	}

	for _, id := range sortedKeys(flights) {
		for _, e := range v.ValidateFlight(id, flights[id]) {
			result.add(e, v.options.TreatWarningsAsErrors)
		}
		if flights[id] == nil {
			continue
		}
		for _, row := range flights[id].Rows {
			result.SeatsValidated += len(row.Seats)
		}
	}
	return result, nil
}

// ValidateJSON checks serialized output against the embedded schema.
func (v *Validator) ValidateJSON(data []byte) (*ValidationResult, error) {
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate output: %w", err)
	}

	result := &ValidationResult{IsValid: true, Errors: make([]*ValidationError, 0)}
	for _, re := range res.Errors() {
		result.add(&ValidationError{
			Severity: SeverityError,
			Field:    re.Field(),
			Value:    fmt.Sprintf("%v", re.Value()),
			Rule:     "schema:" + re.Type(),
			Message:  re.Description(),
		}, v.options.TreatWarningsAsErrors)
	}
	return result, nil
}

// ValidateFlight applies the semantic rules to one flight stored under key.
func (v *Validator) ValidateFlight(key string, flight *types.Flight) []*ValidationError {
	var errors []*ValidationError
	if flight == nil {
		return append(errors, &ValidationError{
			Severity: SeverityError, Flight: key, Field: "flight", Rule: "present",
			Message: "flight record is null",
		})
	}

	if flight.FlightID != key {
		errors = append(errors, &ValidationError{
			Severity: SeverityError, Flight: key, Field: "flight_id", Value: flight.FlightID,
			Rule: "key", Message: "flight is not keyed by its identifier",
		})
	}
	if !timePattern.MatchString(flight.Time) {
		errors = append(errors, &ValidationError{
			Severity: SeverityWarning, Flight: key, Field: "time", Value: flight.Time,
			Rule: "time", Message: "departure time is not HH:MM",
		})
	}

	rows := map[string]bool{}
	seats := map[string]bool{}
	for _, row := range flight.Rows {
		if rows[row.RowID] {
			errors = append(errors, &ValidationError{
				Severity: SeverityWarning, Flight: key, Row: row.RowID, Field: "row_id", Value: row.RowID,
				Rule: "unique", Message: "row appears more than once",
			})
		}
		rows[row.RowID] = true

		for _, seat := range row.Seats {
			if seats[seat.SeatID] {
				errors = append(errors, &ValidationError{
					Severity: SeverityWarning, Flight: key, Row: row.RowID, Seat: seat.SeatID, Field: "seat_id", Value: seat.SeatID,
					Rule: "unique", Message: "seat appears more than once",
				})
			}
			seats[seat.SeatID] = true
			errors = append(errors, validateSeat(key, row.RowID, seat)...)
		}
	}
	return errors
}

// validateSeat checks the availability/pricing rules of one seat.
func validateSeat(flight, row string, seat types.Seat) []*ValidationError {
	var errors []*ValidationError
	if seat.Type == nil {
		errors = append(errors, &ValidationError{
			Severity: SeverityError, Flight: flight, Row: row, Seat: seat.SeatID, Field: "type",
			Rule: "present", Message: "feature list must not be null",
		})
	}
	if seat.Available {
		return errors
	}
	if seat.Price != types.NotAvailable {
		errors = append(errors, &ValidationError{
			Severity: SeverityError, Flight: flight, Row: row, Seat: seat.SeatID, Field: "price", Value: seat.Price,
			Rule: "unavailable", Message: "unavailable seat carries a price",
		})
	}
	if seat.Taxes != types.NotAvailable {
		errors = append(errors, &ValidationError{
			Severity: SeverityError, Flight: flight, Row: row, Seat: seat.SeatID, Field: "taxes", Value: seat.Taxes,
			Rule: "unavailable", Message: "unavailable seat carries taxes",
		})
	}
	return errors
}

func sortedKeys(flights types.Flights) []string {
	keys := make([]string, 0, len(flights))
	for k := range flights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}
