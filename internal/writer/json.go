// =============================================================================
// Seatmap Converter - Writer Module
// =============================================================================
//
// This module is responsible for serializing the unified seatmap model into
// the output formats supported by the converter.
//
// JSON STRUCTURE:
//   {
//     "AB123": {                          <!-- keyed by flight number -->
//       "flight_id": "AB123",
//       "date": "2024-05-01",
//       "time": "14:32",
//       "rows": [
//         {
//           "row_id": "12",
//           "cabin_class": "Y",
//           "seats": [
//             {"seat_id": "12A", "type": ["Window"], "available": true,
//              "price": "15.00 USD", "taxes": "1.50 USD"}
//           ]
//         }
//       ]
//     }
//   }
//
// DETERMINISM:
//   Flight keys are emitted in sorted order and rows/seats keep document
//   order, so the same input always produces the same bytes.
//
// =============================================================================

package writer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Extension returns the file extension (with dot) for the format.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatXLSX:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: json, xlsx)", name)
	}
}

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for serialization.
type GenerateOptions struct {
	// Indent is the string used for JSON indentation.
	// Empty produces compact single-line JSON.
	Indent string

	// EscapeHTML escapes <, > and & inside JSON strings.
	// Default: false
	EscapeHTML bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:     "",
		EscapeHTML: false,
	}
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Generate serializes flights in the given format with default options.
func Generate(flights types.Flights, format Format) ([]byte, error) {
	return GenerateWithOptions(flights, format, DefaultGenerateOptions())
}

// GenerateWithOptions serializes flights in the given format.
func GenerateWithOptions(flights types.Flights, format Format, options GenerateOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return GenerateJSON(flights, options)
	case FormatXLSX:
		return GenerateXLSX(flights)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// GenerateJSON serializes flights as JSON. A nil mapping is written as an
// empty object.
func GenerateJSON(flights types.Flights, options GenerateOptions) ([]byte, error) {
	if flights == nil {
		flights = types.Flights{}
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(options.EscapeHTML)
	if options.Indent != "" {
		encoder.SetIndent("", options.Indent)
	}
	if err := encoder.Encode(flights); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buffer.Bytes(), nil
}

// ParseJSON reads back a document produced by GenerateJSON.
func ParseJSON(data []byte) (types.Flights, error) {
	var flights types.Flights
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return flights, nil
}
