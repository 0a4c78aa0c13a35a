// =============================================================================
// Seatmap Converter - Seatmap Parser
// =============================================================================
//
// This module loads seatmap XML documents and dispatches them to the
// extractor for their dialect.
//
// PARSING PIPELINE:
//   1. Read the document (strict XML, no permissive recovery)
//   2. Detect the dialect from the root element
//   3. Walk the document with the dialect's extractor
//   4. Merge flights that appear in more than one seatmap section
//
// ERROR HANDLING:
//   Every failure is an *Error carrying a Kind; see errors.go.
//
// =============================================================================

// Package seatmap converts airline seatmap XML documents into the unified
// flight/row/seat model.
//
// Two dialects are understood: the legacy SOAP-wrapped schema, where flights,
// rows, seats and fees are nested in one tree, and the IATA NDC schema, where
// flight segments, seat definitions and priced offers are declared separately
// and linked by key. The dialect is chosen once from the root element, after
// which a dialect-specific extractor walks the document.
package seatmap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// DefaultAvailableKey is the IATA seat definition key that marks a seat as
// available rather than describing one of its features.
const DefaultAvailableKey = "SD4"

// Parser converts seatmap documents. It holds no per-document state and is
// safe for concurrent use.
type Parser struct {
	log          *zap.Logger
	availableKey string
}

// Option configures a Parser.
type Option func(*Parser)

// WithAvailableKey overrides the IATA seat definition key meaning "available".
func WithAvailableKey(key string) Option {
	return func(p *Parser) {
		if key != "" {
			p.availableKey = key
		}
	}
}

// New creates a parser logging to log (nil disables logging).
func New(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log, availableKey: DefaultAvailableKey}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse detects the document dialect and extracts its flights.
//
// PARAMETERS:
//   - doc: A document read with Load or LoadFile.
//
// RETURNS:
//   - The flights keyed by flight number.
//   - The detected dialect (DialectUnknown if detection failed).
//   - An *Error if the document is unsupported or structurally invalid.
func (p *Parser) Parse(doc *etree.Document) (types.Flights, Dialect, error) {
	if doc == nil {
		return nil, DialectUnknown, NewError(KindMalformedDocument, "", "nil document")
	}
	root := doc.Root()
	dialect, err := Detect(root)
	if err != nil {
		return nil, dialect, err
	}
	p.log.Debug("Dialect detected", zap.Stringer("dialect", dialect), zap.String("root", QualifiedTag(root)))

	var flights types.Flights
	switch dialect {
	case DialectSOAP:
		flights, err = p.extractSOAP(root)
	case DialectIATA:
		flights, err = p.extractIATA(root)
	}
	if err != nil {
		return nil, dialect, err
	}
	return flights, dialect, nil
}

// ParseReader reads a complete document from r and parses it.
func (p *Parser) ParseReader(r io.Reader) (types.Flights, Dialect, error) {
	doc, err := Load(r)
	if err != nil {
		return nil, DialectUnknown, err
	}
	return p.Parse(doc)
}

// ParseFile reads and parses the document stored at path.
//
// PARAMETERS:
//   - path: The path to the XML file.
//
// RETURNS:
//   - The flights, the dialect and an error as for Parse. A missing or
//     unreadable file is KindInputNotFound; malformed XML is
//     KindMalformedDocument.
func (p *Parser) ParseFile(path string) (types.Flights, Dialect, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, DialectUnknown, err
	}
	return p.Parse(doc)
}

// Load reads a well-formed XML document from r.
func Load(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		Permissive: false,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, WrapError(KindMalformedDocument, err, "unable to read XML")
	}
	if doc.Root() == nil {
		return nil, NewError(KindMalformedDocument, "", "document has no root element")
	}
	return doc, nil
}

// LoadFile opens path and reads it with Load.
func LoadFile(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, WrapError(KindInputNotFound, err, "%s", path)
		}
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err == nil && info.IsDir() {
		return nil, NewError(KindInputNotFound, "", "%s is a directory", path)
	}
	return Load(f)
}

// addFlight records flight in flights, appending its rows to an earlier
// record of the same flight. A flight identifier reused with a different
// departure is a structural violation.
func addFlight(flights types.Flights, flight *types.Flight, path string) error {
	prev, ok := flights[flight.FlightID]
	if !ok {
		flights[flight.FlightID] = flight
		return nil
	}
	if prev.Date != flight.Date || prev.Time != flight.Time {
		return NewError(KindStructuralViolation, path,
			"flight %s appears with departures %s %s and %s %s",
			flight.FlightID, prev.Date, prev.Time, flight.Date, flight.Time)
	}
	prev.Rows = append(prev.Rows, flight.Rows...)
	return nil
}

// truncateTime cuts a departure time to "HH:MM".
func truncateTime(t, path string) (string, error) {
	if len(t) < 5 {
		return "", NewError(KindStructuralViolation, path, "departure time %q shorter than HH:MM", t)
	}
	return t[:5], nil
}
