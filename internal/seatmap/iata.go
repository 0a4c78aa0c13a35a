// =============================================================================
// Seatmap Converter - IATA NDC Extractor
// =============================================================================
//
// This module extracts flights from the IATA NDC seat availability schema,
// where segments, seat definitions and offers are declared once and seat
// maps refer to them by key.
//
// EXTRACTION PASSES:
//   1. Build the segment, seat definition and offer catalogs
//   2. Attach each SeatMap's rows to the segment it references
//   3. Re-key the segments by flight number
//
// =============================================================================

package seatmap

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// NDC (IATA) layout:
//
//	SeatAvailabilityRS
//	  SeatMap
//	    SegmentRef
//	    Cabin/Row
//	      Number
//	      Seat
//	        Column
//	        OfferItemRefs
//	        SeatDefinitionRef*
//	  ALaCarteOffer/ALaCarteOfferItem @OfferItemID
//	    UnitPriceDetail/TotalAmount/SimpleCurrencyPrice @Code
//	  DataLists
//	    FlightSegmentList/FlightSegment @SegmentKey
//	      Departure/Date, Departure/Time
//	      MarketingCarrier/FlightNumber
//	    SeatDefinitionList/SeatDefinition @SeatDefinitionID
//	      Description/Text

// CommonCabin labels rows of IATA documents, which expose no cabin per row.
const CommonCabin = "Common"

// iataExtractor holds the catalogs of one NDC document walk. Catalogs are
// read-only once built.
type iataExtractor struct {
	scope
	log          *zap.Logger
	availableKey string

	// segments: SegmentKey -> flight under construction.
	segments map[string]*types.Flight
	// segmentOrder keeps SegmentKeys in document order.
	segmentOrder []string
	// definitions: SeatDefinitionID -> description.
	definitions map[string]string
	// offers: OfferItemID -> formatted price.
	offers map[string]string
}

func (p *Parser) extractIATA(root *etree.Element) (types.Flights, error) {
	x := &iataExtractor{
		scope:        newScope(root),
		log:          p.log,
		availableKey: p.availableKey,
		segments:     map[string]*types.Flight{},
		definitions:  map[string]string{},
		offers:       map[string]string{},
	}
	x.log.Debug("NDC seatmap", zap.String("namespace", x.ns))

	// Pass 1: catalogs.
	if err := x.buildSegments(root); err != nil {
		return nil, err
	}
	if err := x.buildDefinitions(root); err != nil {
		return nil, err
	}
	if err := x.buildOffers(root); err != nil {
		return nil, err
	}
	x.log.Debug("Catalogs built",
		zap.Int("segments", len(x.segments)),
		zap.Int("definitions", len(x.definitions)),
		zap.Int("offers", len(x.offers)))

	// Pass 2 and 3: attach rows to segments, resolving seat references.
	for _, seatMap := range x.iter(root, "SeatMap") {
		if err := x.attachSeatMap(seatMap); err != nil {
			return nil, err
		}
	}

	// Re-key by flight number.
	flights := types.Flights{}
	for _, key := range x.segmentOrder {
		if err := addFlight(flights, x.segments[key], "FlightSegment "+key); err != nil {
			return nil, err
		}
	}
	return flights, nil
}

func (x *iataExtractor) buildSegments(root *etree.Element) error {
	for _, el := range x.iter(root, "FlightSegment") {
		key, err := requireAttr(el, "SegmentKey")
		if err != nil {
			return err
		}
		if _, dup := x.segments[key]; dup {
			return NewError(KindStructuralViolation, elementPath(el), "duplicate segment key %s", key)
		}
		departure, err := x.requireChild(el, "Departure")
		if err != nil {
			return err
		}
		date, err := x.requireText(departure, "Date")
		if err != nil {
			return err
		}
		clock, err := x.requireText(departure, "Time")
		if err != nil {
			return err
		}
		if clock, err = truncateTime(clock, elementPath(departure)); err != nil {
			return err
		}
		carrier, err := x.requireChild(el, "MarketingCarrier")
		if err != nil {
			return err
		}
		number, err := x.requireText(carrier, "FlightNumber")
		if err != nil {
			return err
		}
		x.segments[key] = types.NewFlight(number, date, clock)
		x.segmentOrder = append(x.segmentOrder, key)
	}
	return nil
}

func (x *iataExtractor) buildDefinitions(root *etree.Element) error {
	for _, el := range x.iter(root, "SeatDefinition") {
		key, err := requireAttr(el, "SeatDefinitionID")
		if err != nil {
			return err
		}
		description, err := x.requireChild(el, "Description")
		if err != nil {
			return err
		}
		text, err := x.requireText(description, "Text")
		if err != nil {
			return err
		}
		x.definitions[key] = text
	}
	return nil
}

func (x *iataExtractor) buildOffers(root *etree.Element) error {
	for _, el := range x.iter(root, "ALaCarteOfferItem") {
		key, err := requireAttr(el, "OfferItemID")
		if err != nil {
			return err
		}
		price, err := x.offerPrice(el)
		if err != nil {
			return err
		}
		x.offers[key] = price
	}
	return nil
}

func (x *iataExtractor) offerPrice(item *etree.Element) (string, error) {
	el := item
	for _, local := range []string{"UnitPriceDetail", "TotalAmount", "SimpleCurrencyPrice"} {
		var err error
		if el, err = x.requireChild(el, local); err != nil {
			return "", err
		}
	}
	code := strings.TrimSpace(el.SelectAttrValue("Code", ""))
	price, err := FormatDecimal(el.Text(), DefaultPrecision, code)
	if err != nil {
		return "", withPath(err, elementPath(el))
	}
	return price, nil
}

// attachSeatMap appends the rows of one SeatMap to the flight its
// SegmentRef names. An unknown segment aborts the conversion.
func (x *iataExtractor) attachSeatMap(seatMap *etree.Element) error {
	ref, err := x.requireText(seatMap, "SegmentRef")
	if err != nil {
		return err
	}
	flight, ok := x.segments[ref]
	if !ok {
		return &Error{
			Kind: KindStructuralViolation,
			Path: elementPath(seatMap),
			Msg:  "segment reference does not resolve",
			Err:  NewError(KindUnresolvedReference, "", "segment %s", ref),
		}
	}
	for _, rowEl := range x.iter(seatMap, "Row") {
		row, err := x.row(rowEl)
		if err != nil {
			return err
		}
		flight.Rows = append(flight.Rows, row)
	}
	x.log.Debug("Seat map attached", zap.String("segment", ref), zap.String("flight", flight.FlightID), zap.Int("rows", len(flight.Rows)))
	return nil
}

func (x *iataExtractor) row(el *etree.Element) (types.Row, error) {
	number, err := x.requireText(el, "Number")
	if err != nil {
		return types.Row{}, err
	}
	row := types.Row{RowID: number, CabinClass: CommonCabin, Seats: []types.Seat{}}
	for _, seatEl := range x.iter(el, "Seat") {
		seat, err := x.seat(seatEl, number)
		if err != nil {
			return types.Row{}, err
		}
		row.Seats = append(row.Seats, seat)
	}
	return row, nil
}

func (x *iataExtractor) seat(el *etree.Element, rowNumber string) (types.Seat, error) {
	column, err := x.requireText(el, "Column")
	if err != nil {
		return types.Seat{}, err
	}
	seat := types.Seat{
		SeatID: rowNumber + column,
		Type:   []string{},
		Price:  types.NotAvailable,
		Taxes:  types.NotAvailable,
	}

	for _, refEl := range x.children(el, "SeatDefinitionRef") {
		ref := strings.TrimSpace(refEl.Text())
		if ref == x.availableKey {
			seat.Available = true
			continue
		}
		description, ok := x.definitions[ref]
		if !ok {
			x.log.Debug("Unknown seat definition, skipping", zap.String("seat", seat.SeatID), zap.String("ref", ref))
			continue
		}
		seat.Type = append(seat.Type, description)
	}

	if seat.Available {
		seat.Price = x.resolveOffer(el, seat.SeatID)
	}
	return seat, nil
}

// resolveOffer prices an available seat. Both an absent reference and one
// missing from the offer catalog degrade to types.NotAvailable.
func (x *iataExtractor) resolveOffer(seat *etree.Element, seatID string) string {
	refEl := x.child(seat, "OfferItemRefs")
	if refEl == nil {
		x.log.Warn("Available seat has no offer reference", zap.String("seat", seatID))
		return types.NotAvailable
	}
	fields := strings.Fields(refEl.Text())
	if len(fields) == 0 {
		x.log.Warn("Available seat has empty offer reference", zap.String("seat", seatID))
		return types.NotAvailable
	}
	price, ok := x.offers[fields[0]]
	if !ok {
		x.log.Warn("Offer reference does not resolve", zap.String("seat", seatID), zap.String("offer", fields[0]))
		return types.NotAvailable
	}
	return price
}
