package seatmap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// iataDocument assembles an NDC response from its seat maps, offer items,
// flight segments and seat definitions.
func iataDocument(seatMaps, offerItems, segments, definitions string) string {
	return `<SeatAvailabilityRS xmlns="http://www.iata.org/IATA/EDIST/2017.2" Version="17.2">` +
		seatMaps +
		`<ALaCarteOffer OfferID="O1" Owner="CD">` + offerItems + `</ALaCarteOffer>
  <DataLists>
    <FlightSegmentList>` + segments + `</FlightSegmentList>
    <SeatDefinitionList>` + definitions + `</SeatDefinitionList>
  </DataLists>
</SeatAvailabilityRS>`
}

func segment(key, number, date, time string) string {
	return `<FlightSegment SegmentKey="` + key + `">
    <Departure><AirportCode>FRA</AirportCode><Date>` + date + `</Date><Time>` + time + `</Time></Departure>
    <MarketingCarrier><AirlineID>CD</AirlineID><FlightNumber>` + number + `</FlightNumber></MarketingCarrier>
  </FlightSegment>`
}

func definition(key, text string) string {
	return `<SeatDefinition SeatDefinitionID="` + key + `"><Description><Text>` + text + `</Text></Description></SeatDefinition>`
}

func offerItem(id, amount, code string) string {
	return `<ALaCarteOfferItem OfferItemID="` + id + `"><UnitPriceDetail><TotalAmount>` +
		`<SimpleCurrencyPrice Code="` + code + `">` + amount + `</SimpleCurrencyPrice>` +
		`</TotalAmount></UnitPriceDetail></ALaCarteOfferItem>`
}

func seatMap(segmentRef, rows string) string {
	return `<SeatMap><SegmentRef>` + segmentRef + `</SegmentRef><Cabin>` + rows + `</Cabin></SeatMap>`
}

func TestIATASample(t *testing.T) {
	flights, dialect, err := New(zaptest.NewLogger(t)).ParseFile("testdata/iata_seatmap.xml")
	require.NoError(t, err)
	require.Equal(t, DialectIATA, dialect)

	want := types.Flights{
		"CD456": {
			FlightID: "CD456",
			Date:     "2024-06-10",
			Time:     "09:45",
			Rows: []types.Row{
				{
					RowID:      "7",
					CabinClass: CommonCabin,
					Seats: []types.Seat{
						{SeatID: "7A", Type: []string{}, Available: true, Price: "20.00 EUR", Taxes: "N/A"},
						{SeatID: "7B", Type: []string{"WINDOW"}, Available: true, Price: "35.50 EUR", Taxes: "N/A"},
						{SeatID: "7C", Type: []string{"RESTRICTED", "WINDOW"}, Available: false, Price: "N/A", Taxes: "N/A"},
					},
				},
				{
					RowID:      "8",
					CabinClass: CommonCabin,
					Seats: []types.Seat{
						{SeatID: "8A", Type: []string{}, Available: true, Price: "N/A", Taxes: "N/A"},
						{SeatID: "8B", Type: []string{}, Available: true, Price: "N/A", Taxes: "N/A"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, flights); diff != "" {
		t.Errorf("flights mismatch (-want +got):\n%s", diff)
	}
}

func TestIATAEndToEndExample(t *testing.T) {
	doc := iataDocument(
		seatMap("SEG1", `<Row><Number>14</Number><Seat><Column>A</Column><OfferItemRefs>OF1</OfferItemRefs><SeatDefinitionRef>SD4</SeatDefinitionRef></Seat></Row>`),
		offerItem("OF1", "20.00", "EUR"),
		segment("SEG1", "CD456", "2024-06-10", "09:45"),
		definition("SD4", "Available"),
	)
	flights, _, err := parseString(t, doc)
	require.NoError(t, err)
	require.Equal(t, types.Seat{SeatID: "14A", Type: []string{}, Available: true, Price: "20.00 EUR", Taxes: types.NotAvailable},
		flights["CD456"].Rows[0].Seats[0])
}

func TestIATAAvailability(t *testing.T) {
	tests := []struct {
		name      string
		refs      string
		available bool
		types     []string
	}{
		{name: "available only", refs: "SD4", available: true, types: []string{}},
		{name: "available with feature", refs: "SD11 SD4", available: true, types: []string{"Window"}},
		{name: "feature only", refs: "SD11", available: false, types: []string{"Window"}},
		{name: "no references", refs: "", available: false, types: []string{}},
		{name: "unknown reference skipped", refs: "SD77 SD19", available: false, types: []string{"Restricted"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var refs string
			for _, r := range strings.Fields(tt.refs) {
				refs += `<SeatDefinitionRef>` + r + `</SeatDefinitionRef>`
			}
			doc := iataDocument(
				seatMap("S", `<Row><Number>3</Number><Seat><Column>C</Column><OfferItemRefs>OF1</OfferItemRefs>`+refs+`</Seat></Row>`),
				offerItem("OF1", "12.5", "USD"),
				segment("S", "F1", "2024-01-01", "10:00:00"),
				definition("SD4", "Available")+definition("SD11", "Window")+definition("SD19", "Restricted"),
			)
			flights, _, err := parseString(t, doc)
			require.NoError(t, err)
			seat := flights["F1"].Rows[0].Seats[0]
			require.Equal(t, "3C", seat.SeatID)
			require.Equal(t, tt.available, seat.Available)
			require.Equal(t, tt.types, seat.Type)
			if tt.available {
				require.Equal(t, "12.50 USD", seat.Price)
			} else {
				require.Equal(t, types.NotAvailable, seat.Price)
			}
			require.Equal(t, types.NotAvailable, seat.Taxes)
		})
	}
}

func TestIATACustomAvailableKey(t *testing.T) {
	doc := iataDocument(
		seatMap("S", `<Row><Number>1</Number><Seat><Column>A</Column><SeatDefinitionRef>SD4</SeatDefinitionRef><SeatDefinitionRef>AV</SeatDefinitionRef></Seat></Row>`),
		"",
		segment("S", "F1", "2024-01-01", "10:00"),
		definition("SD4", "Legroom"),
	)
	flights, _, err := New(zaptest.NewLogger(t), WithAvailableKey("AV")).ParseReader(strings.NewReader(doc))
	require.NoError(t, err)
	seat := flights["F1"].Rows[0].Seats[0]
	require.True(t, seat.Available)
	require.Equal(t, []string{"Legroom"}, seat.Type)
}

func TestIATAOfferFallback(t *testing.T) {
	tests := []struct {
		name string
		refs string
	}{
		{name: "absent reference", refs: ``},
		{name: "empty reference", refs: `<OfferItemRefs> </OfferItemRefs>`},
		{name: "unresolved reference", refs: `<OfferItemRefs>MISSING</OfferItemRefs>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := iataDocument(
				seatMap("S", `<Row><Number>1</Number><Seat><Column>A</Column>`+tt.refs+`<SeatDefinitionRef>SD4</SeatDefinitionRef></Seat></Row>`),
				offerItem("OF1", "10", "USD"),
				segment("S", "F1", "2024-01-01", "10:00"),
				definition("SD4", "Available"),
			)
			flights, _, err := parseString(t, doc)
			require.NoError(t, err)
			seat := flights["F1"].Rows[0].Seats[0]
			require.True(t, seat.Available)
			require.Equal(t, types.NotAvailable, seat.Price)
		})
	}
}

func TestIATAMultipleSegments(t *testing.T) {
	row := func(n string) string {
		return `<Row><Number>` + n + `</Number><Seat><Column>A</Column></Seat></Row>`
	}
	doc := iataDocument(
		seatMap("S2", row("30"))+seatMap("S1", row("1")+row("2"))+seatMap("S2", row("31")),
		"",
		segment("S1", "F1", "2024-01-01", "10:00")+segment("S2", "F2", "2024-01-01", "18:30"),
		"",
	)
	flights, _, err := parseString(t, doc)
	require.NoError(t, err)
	require.Len(t, flights, 2)

	rowIDs := func(f *types.Flight) []string {
		var ids []string
		for _, r := range f.Rows {
			ids = append(ids, r.RowID)
		}
		return ids
	}
	require.Equal(t, []string{"1", "2"}, rowIDs(flights["F1"]))
	require.Equal(t, []string{"30", "31"}, rowIDs(flights["F2"]))
	require.Equal(t, "18:30", flights["F2"].Time)
}

func TestIATASegmentWithoutSeatMap(t *testing.T) {
	doc := iataDocument("", "", segment("S1", "F1", "2024-01-01", "10:00"), "")
	flights, _, err := parseString(t, doc)
	require.NoError(t, err)
	require.Equal(t, []types.Row{}, flights["F1"].Rows)
}

func TestIATAUnresolvedSegmentIsFatal(t *testing.T) {
	doc := iataDocument(
		seatMap("NOPE", `<Row><Number>1</Number></Row>`),
		"",
		segment("S1", "F1", "2024-01-01", "10:00"),
		"",
	)
	flights, _, err := parseString(t, doc)
	require.Nil(t, flights)
	require.ErrorIs(t, err, ErrStructuralViolation)
	require.ErrorIs(t, err, ErrUnresolvedReference)
	require.Contains(t, err.Error(), "NOPE")
}

func TestIATAStructuralViolations(t *testing.T) {
	okSegment := segment("S", "F1", "2024-01-01", "10:00")
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{
			name:     "segment without key",
			doc:      iataDocument("", "", strings.Replace(okSegment, ` SegmentKey="S"`, "", 1), ""),
			contains: "SegmentKey",
		},
		{
			name:     "duplicate segment key",
			doc:      iataDocument("", "", okSegment+okSegment, ""),
			contains: "duplicate segment key",
		},
		{
			name:     "segment without flight number",
			doc:      iataDocument("", "", `<FlightSegment SegmentKey="S"><Departure><Date>2024-01-01</Date><Time>10:00</Time></Departure><MarketingCarrier/></FlightSegment>`, ""),
			contains: "FlightNumber",
		},
		{
			name:     "segment without departure time",
			doc:      iataDocument("", "", `<FlightSegment SegmentKey="S"><Departure><Date>2024-01-01</Date></Departure></FlightSegment>`, ""),
			contains: "Time",
		},
		{
			name:     "definition without text",
			doc:      iataDocument("", "", okSegment, `<SeatDefinition SeatDefinitionID="SD1"><Description/></SeatDefinition>`),
			contains: "Text",
		},
		{
			name:     "offer without price",
			doc:      iataDocument("", `<ALaCarteOfferItem OfferItemID="OF1"><UnitPriceDetail/></ALaCarteOfferItem>`, okSegment, ""),
			contains: "TotalAmount",
		},
		{
			name:     "offer with invalid amount",
			doc:      iataDocument("", offerItem("OF1", "twelve", "USD"), okSegment, ""),
			contains: "invalid decimal amount",
		},
		{
			name:     "seat map without segment ref",
			doc:      iataDocument(`<SeatMap><Cabin/></SeatMap>`, "", okSegment, ""),
			contains: "SegmentRef",
		},
		{
			name:     "row without number",
			doc:      iataDocument(seatMap("S", `<Row><Seat><Column>A</Column></Seat></Row>`), "", okSegment, ""),
			contains: "Number",
		},
		{
			name:     "seat without column",
			doc:      iataDocument(seatMap("S", `<Row><Number>1</Number><Seat/></Row>`), "", okSegment, ""),
			contains: "Column",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights, _, err := parseString(t, tt.doc)
			require.Nil(t, flights)
			require.ErrorIs(t, err, ErrStructuralViolation)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}
