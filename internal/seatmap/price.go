// =============================================================================
// Seatmap Converter - Price Normalizer
// =============================================================================
//
// This module renders seat prices as human-readable fixed-point strings.
//
// PRICE FORMAT:
//   "<units>.<fraction> <currency>"   e.g. "15.00 USD", "12.345 KWD"
//   "<units> <currency>"              when the scale is 0, e.g. "12000 JPY"
//   "N/A"                             when there is nothing to pay
//
// ARITHMETIC:
//   Amounts are shifted by moving the decimal point in their digit string.
//   No floating point is involved, so no precision is ever lost. Scales are
//   limited to MaxPrecision fractional digits.
//
// =============================================================================

package seatmap

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/seatmap-converter/internal/types"
)

// DefaultPrecision is used when a price carries no decimal-place count of its own.
const DefaultPrecision = 2

// MaxPrecision is the largest accepted number of fractional digits. It is
// the number of decimal digits an int64 amount can always hold.
const MaxPrecision = 18

// checkPrecision rejects scales outside [0, MaxPrecision].
func checkPrecision(precision int) error {
	switch {
	case precision < 0:
		return NewError(KindStructuralViolation, "", "negative decimal places %d", precision)
	case precision > MaxPrecision:
		return NewError(KindStructuralViolation, "", "decimal places %d exceed maximum %d", precision, MaxPrecision)
	}
	return nil
}

// FormatPrice renders a fixed-point amount scaled by 10^precision.
//
// PARAMETERS:
//   - amount: The integer amount in units of 10^-precision.
//   - precision: The number of fractional digits, 0 to MaxPrecision.
//   - currency: The currency code appended after a space; may be empty.
//
// RETURNS:
//   - The price with exactly precision fractional digits (no decimal point
//     for precision 0), or types.NotAvailable for non-positive amounts.
//   - A StructuralViolation if precision is out of range.
func FormatPrice(amount int64, precision int, currency string) (string, error) {
	if err := checkPrecision(precision); err != nil {
		return "", err
	}
	if amount <= 0 {
		return types.NotAvailable, nil
	}
	return render(strconv.FormatInt(amount, 10), precision, currency), nil
}

// FormatDecimal renders a plain decimal amount ("20", "20.5", "19.999").
//
// PARAMETERS:
//   - text: The unsigned decimal amount; surrounding whitespace is ignored.
//   - precision: The number of fractional digits, 0 to MaxPrecision.
//   - currency: The currency code appended after a space; may be empty.
//
// RETURNS:
//   - The price rounded half up to precision fractional digits, or
//     types.NotAvailable when it rounds to zero.
//   - A StructuralViolation if text is not a decimal number or precision
//     is out of range.
func FormatDecimal(text string, precision int, currency string) (string, error) {
	if err := checkPrecision(precision); err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	intPart, fracPart, _ := strings.Cut(text, ".")
	if strings.HasPrefix(intPart, "+") {
		intPart = intPart[1:]
	}
	if (intPart == "" && fracPart == "") || !allDigits(intPart) || !allDigits(fracPart) {
		return "", NewError(KindStructuralViolation, "", "invalid decimal amount %q", text)
	}

	// digits holds the amount scaled by 10^precision, before rounding.
	var digits string
	roundUp := false
	if len(fracPart) > precision {
		roundUp = fracPart[precision] >= '5'
		digits = intPart + fracPart[:precision]
	} else {
		digits = intPart + fracPart + strings.Repeat("0", precision-len(fracPart))
	}
	digits = strings.TrimLeft(digits, "0")
	if roundUp {
		digits = increment(digits)
	}
	if digits == "" {
		return types.NotAvailable, nil
	}
	return render(digits, precision, currency), nil
}

// render places the decimal point into a string of scaled digits.
func render(digits string, precision int, currency string) string {
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	value := digits
	if precision > 0 {
		cut := len(digits) - precision
		value = digits[:cut] + "." + digits[cut:]
	}
	return strings.TrimSpace(value + " " + currency)
}

// increment adds one to a non-negative decimal digit string.
func increment(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
