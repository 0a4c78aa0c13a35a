// =============================================================================
// Seatmap Converter - Shared Types
// =============================================================================
//
// This package contains the unified seatmap data model shared by the modules
// that produce and consume it, kept separate to avoid import cycles:
//   - seatmap    (builds the model from either XML dialect)
//   - validation (checks the model against the output contract)
//   - writer     (serializes the model)
//
// The JSON tags define the output format of the converter.
//
// =============================================================================

package types

// =============================================================================
// SEATMAP TYPES
// =============================================================================

// NotAvailable is the sentinel rendered for a price or tax that is zero or
// does not apply.
const NotAvailable = "N/A"

// Flights maps a carrier flight number to its flight record.
type Flights map[string]*Flight

// Flight represents one flight discovered in a seatmap document.
type Flight struct {
	// FlightID is the carrier flight number.
	FlightID string `json:"flight_id"`

	// Date is the departure date as written in the document (e.g. "2024-05-01").
	Date string `json:"date"`

	// Time is the departure time truncated to minutes ("HH:MM").
	Time string `json:"time"`

	// Rows holds the cabin rows in document order.
	Rows []Row `json:"rows"`
}

// Row represents a single cabin row.
type Row struct {
	// RowID is the row number in the dialect's native format.
	RowID string `json:"row_id"`

	// CabinClass is the cabin label applied to the row.
	CabinClass string `json:"cabin_class"`

	// Seats holds the seats of the row in document order.
	Seats []Seat `json:"seats"`
}

// Seat represents a single seat with its availability and pricing.
type Seat struct {
	// SeatID is the row number plus column letter, or the explicit seat number.
	SeatID string `json:"seat_id"`

	// Type lists feature labels in document order. Never nil.
	Type []string `json:"type"`

	// Available reports whether the seat can be purchased.
	Available bool `json:"available"`

	// Price is the formatted seat price or NotAvailable.
	Price string `json:"price"`

	// Taxes is the formatted tax total or NotAvailable.
	Taxes string `json:"taxes"`
}

// NewFlight creates a flight record with an empty (non-nil) row sequence.
func NewFlight(id, date, time string) *Flight {
	return &Flight{
		FlightID: id,
		Date:     date,
		Time:     time,
		Rows:     []Row{},
	}
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Counts summarizes the size of a converted document.
type Counts struct {
	Flights        int
	Rows           int
	Seats          int
	AvailableSeats int
}

// Count walks the flights and totals rows and seats.
func (f Flights) Count() Counts {
	c := Counts{Flights: len(f)}
	for _, flight := range f {
		c.Rows += len(flight.Rows)
		for _, row := range flight.Rows {
			c.Seats += len(row.Seats)
			for _, seat := range row.Seats {
				if seat.Available {
					c.AvailableSeats++
				}
			}
		}
	}
	return c
}
