package writer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// SeatSheet is the name of the worksheet holding the seat report.
const SeatSheet = "Seats"

// seatColumns are the header cells of the seat report, one line per seat.
var seatColumns = []interface{}{
	"Flight", "Date", "Time", "Row", "Cabin", "Seat", "Type", "Available", "Price", "Taxes",
}

// GenerateXLSX renders flights as a workbook with one line per seat. Flights
// are ordered by identifier; rows and seats keep document order.
func GenerateXLSX(flights types.Flights) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SeatSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SeatSheet, "A1", &seatColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	line := 2
	for _, id := range sortedFlightIDs(flights) {
		flight := flights[id]
		for _, row := range flight.Rows {
			for _, seat := range row.Seats {
				cell, err := excelize.CoordinatesToCellName(1, line)
				if err != nil {
					return nil, err
				}
				values := []interface{}{
					flight.FlightID, flight.Date, flight.Time,
					row.RowID, row.CabinClass,
					seat.SeatID, strings.Join(seat.Type, ", "), seat.Available,
					seat.Price, seat.Taxes,
				}
				if err := f.SetSheetRow(SeatSheet, cell, &values); err != nil {
					return nil, fmt.Errorf("failed to write seat %s of flight %s: %w", seat.SeatID, id, err)
				}
				line++
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func sortedFlightIDs(flights types.Flights) []string {
	ids := make([]string, 0, len(flights))
	for id := range flights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
