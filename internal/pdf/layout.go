package pdf

import (
	"strings"

	"github.com/jhbridge/billing/internal/models"
)

// The layout is a flat list of draw instructions consumed by the
// gofpdf backend in Render. Keeping it declarative decouples the
// template geometry from the drawing library.

type OpKind int

const (
	OpBand    OpKind = iota // filled rectangle
	OpText                  // single line of text at x,y (baseline)
	OpWrapped               // text word-wrapped to width W
	OpImage                 // PNG image placed at x,y,w,h
)

// Font selects style and size; the family is always Helvetica.
type Font struct {
	Style string // "", "B", "I"
	Size  float64
}

type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Text       string
	Font       Font
	Color      RGB // text color
	Fill       RGB // band fill color
	Image      []byte
}

func band(x, y, w, h float64, fill RGB) Op {
	return Op{Kind: OpBand, X: x, Y: y, W: w, H: h, Fill: fill}
}

func text(x, y float64, s string, f Font, c RGB) Op {
	return Op{Kind: OpText, X: x, Y: y, Text: s, Font: f, Color: c}
}

func wrapped(x, y, w float64, s string, f Font, c RGB) Op {
	return Op{Kind: OpWrapped, X: x, Y: y, W: w, Text: s, Font: f, Color: c}
}

func image(x, y, w, h float64, png []byte) Op {
	return Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Image: png}
}

// Page geometry (mm, A4 portrait).
const (
	pageWidth    = 210
	headerHeight = 45
	footerY      = 280
	footerHeight = 17
	contentX     = 20
	contentWidth = 170
	rowStep      = 10
	lineStep     = 5
)

// Build translates a finalized document snapshot into the fixed visual
// template: header band, from/to blocks, item table, totals block,
// footer band. A nil logo triggers the text fallback in the header.
func Build(doc models.Document, logo []byte) []Op {
	invoice := doc.Type == models.DocumentTypeInvoice

	var ops []Op

	// Header band with logo or company name fallback.
	ops = append(ops, band(0, 0, pageWidth, headerHeight, ColorPrimary))
	if logo != nil {
		ops = append(ops, image(15, 8, 50, 25, logo))
	} else {
		ops = append(ops, text(20, 25, models.CompanyShortName, Font{"B", 16}, ColorWhite))
	}
	if invoice {
		ops = append(ops, text(165, 20, "INVOICE", Font{"B", 16}, ColorWhite))
	} else {
		ops = append(ops, text(170, 20, "QUOTE", Font{"B", 16}, ColorWhite))
	}
	ops = append(ops,
		text(70, 15, models.SloganLine1, Font{"I", 8}, ColorWhite),
		text(70, 20, models.SloganLine2, Font{"I", 8}, ColorWhite),
	)

	// FROM block: fixed company identity.
	ops = append(ops,
		text(contentX, 60, "FROM:", Font{"B", 12}, ColorText),
		text(contentX, 68, models.CompanyName, Font{"", 10}, ColorText),
		text(contentX, 73, models.CompanyAddress, Font{"", 10}, ColorText),
		text(contentX, 78, models.CompanyPhone, Font{"", 10}, ColorText),
		text(contentX, 83, models.CompanyEmail, Font{"", 10}, ColorText),
		text(contentX, 88, models.CompanyWebsite, Font{"", 10}, ColorText),
	)

	// Details block: number, dates, invoice badge.
	title, numberLabel, secondaryLabel := "Quote Details", "Quote #: ", "Valid Until: "
	if invoice {
		title, numberLabel, secondaryLabel = "Invoice Details", "Invoice #: ", "Due Date: "
	}
	ops = append(ops,
		text(120, 60, title, Font{"B", 12}, ColorText),
		text(120, 68, numberLabel+doc.Number, Font{"", 10}, ColorText),
		text(120, 73, "Date: "+ShortDate(doc.IssueDate), Font{"", 10}, ColorText),
		text(120, 78, secondaryLabel+ShortDate(doc.SecondaryDate), Font{"", 10}, ColorText),
	)
	if invoice {
		ops = append(ops,
			band(120, 82, 30, 6, StatusColor(doc.Status)),
			text(125, 86, strings.ToUpper(string(doc.Status)), Font{"B", 8}, ColorWhite),
		)
	}

	// TO block: client identity, address split on line breaks.
	ops = append(ops,
		text(contentX, 105, "TO:", Font{"B", 12}, ColorText),
		text(contentX, 113, doc.ClientName, Font{"", 10}, ColorText),
		text(contentX, 118, doc.ClientEmail, Font{"", 10}, ColorText),
	)
	y := 123.0
	for _, line := range strings.Split(doc.ClientAddress, "\n") {
		ops = append(ops, text(contentX, y, line, Font{"", 10}, ColorText))
		y += lineStep
	}

	// Item table.
	tableStartY := y + 10
	if tableStartY < 140 {
		tableStartY = 140
	}
	ops = append(ops,
		band(contentX, tableStartY, contentWidth, 8, ColorLightGray),
		text(25, tableStartY+5, "Description", Font{"B", 10}, ColorText),
		text(120, tableStartY+5, "Qty", Font{"B", 10}, ColorText),
		text(140, tableStartY+5, "Unit Price", Font{"B", 10}, ColorText),
		text(170, tableStartY+5, "Amount", Font{"B", 10}, ColorText),
	)
	rowY := tableStartY + 15
	for i, item := range doc.Items {
		if i%2 == 1 {
			ops = append(ops, band(contentX, rowY-3, contentWidth, 8, ColorAltRow))
		}
		ops = append(ops,
			text(25, rowY, item.Description, Font{"", 10}, ColorText),
			text(125, rowY, Quantity(item.Quantity), Font{"", 10}, ColorText),
			text(145, rowY, Money(item.UnitPrice), Font{"", 10}, ColorText),
			text(175, rowY, Money(item.Amount), Font{"", 10}, ColorText),
		)
		rowY += rowStep
	}

	// Totals: subtotal always, tax when enabled, highlighted total.
	totalsY := rowY + 10
	ops = append(ops,
		text(140, totalsY, "Subtotal:", Font{"", 10}, ColorText),
		text(175, totalsY, Money(doc.Totals.Subtotal), Font{"", 10}, ColorText),
	)
	taxY := totalsY
	if doc.Tax.Enabled {
		taxY += 8
		ops = append(ops,
			text(140, taxY, doc.Tax.Label+" ("+Rate(doc.Tax.Rate)+"%):", Font{"", 10}, ColorText),
			text(175, taxY, Money(doc.Totals.Tax), Font{"", 10}, ColorText),
		)
	}
	totalY := taxY + 8
	highlight := ColorSecondary
	if invoice {
		highlight = ColorAccent
	}
	ops = append(ops,
		band(135, totalY-5, 55, 10, highlight),
		text(140, totalY, "Total:", Font{"B", 12}, ColorWhite),
		text(175, totalY, Money(doc.Totals.Total), Font{"B", 12}, ColorWhite),
	)

	// Invoice-only payment instructions, then optional notes.
	if invoice {
		ops = append(ops,
			text(contentX, totalY+20, "Payment Information:", Font{"B", 12}, ColorText),
			text(contentX, totalY+28, "Please remit payment within 30 days of invoice date.", Font{"", 10}, ColorText),
			text(contentX, totalY+33, "Wire Transfer: Contact us for banking details", Font{"", 10}, ColorText),
			text(contentX, totalY+38, "PayPal: jhbridgetranslation@gmail.com", Font{"", 10}, ColorText),
			text(contentX, totalY+43, "Check: Make payable to JH Bridge Translation", Font{"", 10}, ColorText),
		)
		if doc.Notes != "" {
			ops = append(ops,
				text(contentX, totalY+55, "Additional Notes:", Font{"B", 12}, ColorText),
				wrapped(contentX, totalY+63, contentWidth, doc.Notes, Font{"", 10}, ColorText),
			)
		}
	} else if doc.Notes != "" {
		ops = append(ops,
			text(contentX, totalY+20, "Notes:", Font{"B", 12}, ColorText),
			wrapped(contentX, totalY+28, contentWidth, doc.Notes, Font{"", 10}, ColorText),
		)
	}

	// Footer band.
	ops = append(ops,
		band(0, footerY, pageWidth, footerHeight, ColorPrimary),
		text(contentX, footerY+10, models.FooterThanks, Font{"", 10}, ColorWhite),
		text(120, footerY+10, models.FooterSlogan, Font{"", 10}, ColorWhite),
	)
	return ops
}
