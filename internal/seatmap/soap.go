// =============================================================================
// Seatmap Converter - Legacy SOAP Extractor
// =============================================================================
//
// This module extracts flights from the legacy SOAP-wrapped seatmap schema,
// where flights, rows, seats and fees are nested in one tree.
//
// PRICING:
//   Only available seats are priced. The fee's DecimalPlaces and
//   CurrencyCode apply to both the fee and the sum of its taxes.
//
// =============================================================================

package seatmap

import (
	"math"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// Legacy (SOAP) layout:
//
//	Envelope/Body/OTA_AirSeatMapRS
//	  SeatMapResponse
//	    FlightSegmentInfo @FlightNumber @DepartureDateTime
//	    SeatMapDetails
//	      RowInfo @CabinType @RowNumber
//	        SeatInfo
//	          Summary @SeatNumber @AvailableInd
//	          Features [@extension] text
//	          Service/Fee @Amount @DecimalPlaces @CurrencyCode
//	            Tax @Amount

// soapExtractor holds the state of one legacy document walk.
type soapExtractor struct {
	scope
	log *zap.Logger
}

func (p *Parser) extractSOAP(root *etree.Element) (types.Flights, error) {
	body := firstChild(envelopeBody(root))
	if body == nil {
		return nil, NewError(KindStructuralViolation, elementPath(root), "envelope has no body content")
	}
	x := soapExtractor{scope: newScope(body), log: p.log}
	x.log.Debug("Legacy seatmap", zap.String("namespace", x.ns), zap.String("body", body.Tag))

	flights := types.Flights{}
	for _, response := range x.iter(body, "SeatMapResponse") {
		flight, err := x.flight(response)
		if err != nil {
			return nil, err
		}
		if err := addFlight(flights, flight, elementPath(response)); err != nil {
			return nil, err
		}
	}
	return flights, nil
}

func (x soapExtractor) flight(response *etree.Element) (*types.Flight, error) {
	info, err := x.requireChild(response, "FlightSegmentInfo")
	if err != nil {
		return nil, err
	}
	id, err := requireAttr(info, "FlightNumber")
	if err != nil {
		return nil, err
	}
	departure, err := requireAttr(info, "DepartureDateTime")
	if err != nil {
		return nil, err
	}
	date, clock, ok := strings.Cut(departure, "T")
	if !ok {
		return nil, NewError(KindStructuralViolation, elementPath(info), "departure %q has no time part", departure)
	}
	if clock, err = truncateTime(clock, elementPath(info)); err != nil {
		return nil, err
	}
	flight := types.NewFlight(id, date, clock)

	details, err := x.requireChild(response, "SeatMapDetails")
	if err != nil {
		return nil, err
	}
	for _, rowEl := range x.iter(details, "RowInfo") {
		row, err := x.row(rowEl)
		if err != nil {
			return nil, err
		}
		flight.Rows = append(flight.Rows, row)
	}
	x.log.Debug("Flight extracted", zap.String("flight", id), zap.Int("rows", len(flight.Rows)))
	return flight, nil
}

func (x soapExtractor) row(el *etree.Element) (types.Row, error) {
	cabin, err := requireAttr(el, "CabinType")
	if err != nil {
		return types.Row{}, err
	}
	number, err := requireAttr(el, "RowNumber")
	if err != nil {
		return types.Row{}, err
	}
	row := types.Row{RowID: number, CabinClass: cabin, Seats: []types.Seat{}}
	for _, seatEl := range x.iter(el, "SeatInfo") {
		seat, err := x.seat(seatEl)
		if err != nil {
			return types.Row{}, err
		}
		row.Seats = append(row.Seats, seat)
	}
	return row, nil
}

func (x soapExtractor) seat(el *etree.Element) (types.Seat, error) {
	summary, err := x.requireChild(el, "Summary")
	if err != nil {
		return types.Seat{}, err
	}
	id, err := requireAttr(summary, "SeatNumber")
	if err != nil {
		return types.Seat{}, err
	}
	seat := types.Seat{
		SeatID:    id,
		Type:      []string{},
		Available: summary.SelectAttrValue("AvailableInd", "") == "true",
		Price:     types.NotAvailable,
		Taxes:     types.NotAvailable,
	}

	for _, feature := range x.iter(el, "Features") {
		if ext := feature.SelectAttr("extension"); ext != nil {
			seat.Type = append(seat.Type, ext.Value)
		} else {
			seat.Type = append(seat.Type, strings.TrimSpace(feature.Text()))
		}
	}

	if !seat.Available {
		return seat, nil
	}
	if seat.Price, seat.Taxes, err = x.fee(el); err != nil {
		return types.Seat{}, err
	}
	return seat, nil
}

// fee prices an available seat. Taxes share the fee's scale and currency.
func (x soapExtractor) fee(seat *etree.Element) (price, taxes string, err error) {
	service, err := x.requireChild(seat, "Service")
	if err != nil {
		return "", "", err
	}
	fee, err := x.requireChild(service, "Fee")
	if err != nil {
		return "", "", err
	}
	amount, err := requireIntAttr(fee, "Amount")
	if err != nil {
		return "", "", err
	}
	places, err := requireIntAttr(fee, "DecimalPlaces")
	if err != nil {
		return "", "", err
	}
	currency, err := requireAttr(fee, "CurrencyCode")
	if err != nil {
		return "", "", err
	}

	switch {
	case places < 0:
		return "", "", NewError(KindStructuralViolation, elementPath(fee), "negative decimal places %d", places)
	case places > MaxPrecision:
		return "", "", NewError(KindStructuralViolation, elementPath(fee), "decimal places %d exceed maximum %d", places, MaxPrecision)
	}

	var total int64
	for _, tax := range x.children(fee, "Tax") {
		v, err := requireIntAttr(tax, "Amount")
		if err != nil {
			return "", "", err
		}
		if v < 0 {
			return "", "", NewError(KindStructuralViolation, elementPath(tax), "negative tax amount %d", v)
		}
		if total > math.MaxInt64-v {
			return "", "", NewError(KindStructuralViolation, elementPath(tax), "tax total exceeds %d", int64(math.MaxInt64))
		}
		total += v
	}

	if price, err = FormatPrice(amount, int(places), currency); err != nil {
		return "", "", withPath(err, elementPath(fee))
	}
	if taxes, err = FormatPrice(total, int(places), currency); err != nil {
		return "", "", withPath(err, elementPath(fee))
	}
	return price, taxes, nil
}

// envelopeBody returns the envelope's Body element, falling back to its first
// child when no element is named Body.
func envelopeBody(root *etree.Element) *etree.Element {
	for _, c := range root.ChildElements() {
		if c.Tag == "Body" {
			return c
		}
	}
	return firstChild(root)
}

// firstChild returns the first child element of el, or nil.
func firstChild(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	if cs := el.ChildElements(); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

// withPath attaches a document location to a path-less *Error.
func withPath(err error, path string) error {
	if e, ok := err.(*Error); ok && e.Path == "" {
		c := *e
		c.Path = path
		return &c
	}
	return err
}
