package pdf

import (
	"fmt"
	"strconv"
	"time"
)

// Money formats an amount with a fixed dollar prefix and two decimals.
// No locale awareness, per the document template.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Quantity prints a quantity without trailing zeros.
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Rate prints a tax rate the way it was entered, without padding.
func Rate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ShortDate renders a stored YYYY-MM-DD date as a US short date.
// Unparseable input is printed as-is.
func ShortDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("1/2/2006")
}
