package seatmap

import (
	"strings"

	"github.com/beevik/etree"
)

// Dialect identifies which seatmap schema a document follows.
type Dialect int

const (
	DialectUnknown Dialect = iota
	// DialectSOAP is the legacy SOAP-wrapped schema with inline rows, seats and fees.
	DialectSOAP
	// DialectIATA is the NDC schema with separately declared segments,
	// seat definitions and offers linked by key.
	DialectIATA
)

// Root tag markers. Matching is a substring test on the qualified tag,
// namespace URI included.
const (
	soapMarker = "xmlsoap"
	iataMarker = "iata"
)

func (d Dialect) String() string {
	switch d {
	case DialectSOAP:
		return "soap"
	case DialectIATA:
		return "iata"
	default:
		return "unknown"
	}
}

// Detect selects the dialect of a document from its root element.
func Detect(root *etree.Element) (Dialect, error) {
	if root == nil {
		return DialectUnknown, NewError(KindMalformedDocument, "", "document has no root element")
	}
	tag := QualifiedTag(root)
	switch {
	case strings.Contains(tag, soapMarker):
		return DialectSOAP, nil
	case strings.Contains(tag, iataMarker):
		return DialectIATA, nil
	default:
		return DialectUnknown, NewError(KindUnsupportedDialect, "", "root element %s", tag)
	}
}
