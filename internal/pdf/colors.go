package pdf

import "github.com/jhbridge/billing/internal/models"

// RGB is a 0-255 color triple.
type RGB struct {
	R, G, B int
}

// Brand palette.
var (
	ColorPrimary   = RGB{45, 55, 72}    // dark navy
	ColorSecondary = RGB{34, 197, 94}   // bright green
	ColorAccent    = RGB{59, 130, 246}  // blue
	ColorText      = RGB{31, 41, 55}    // dark gray
	ColorLightGray = RGB{243, 244, 246} // table header
	ColorAltRow    = RGB{250, 250, 250} // alternating rows
	ColorWhite     = RGB{255, 255, 255}
	ColorAmber     = RGB{245, 158, 11}
	ColorRed       = RGB{239, 68, 68}
)

// StatusColor maps an invoice status to its badge color: paid is
// green, overdue is red, anything else is amber.
func StatusColor(status models.InvoiceStatus) RGB {
	switch status {
	case models.StatusPaid:
		return ColorSecondary
	case models.StatusOverdue:
		return ColorRed
	default:
		return ColorAmber
	}
}
