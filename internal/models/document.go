package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentType distinguishes the two editor flavors.
type DocumentType string

const (
	DocumentTypeQuote   DocumentType = "quote"
	DocumentTypeInvoice DocumentType = "invoice"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// LineItem is one billable row. Amount is derived from Quantity and
// UnitPrice and is never set independently.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// TaxConfig controls the optional tax line.
type TaxConfig struct {
	Enabled bool    `json:"enabled"`
	Rate    float64 `json:"rate"` // percentage, e.g. 10 for 10%
	Label   string  `json:"label"`
}

// Totals are always recomputed from the items and tax config; they are
// never mutated directly.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Document is the mutable editor state for a quote or an invoice.
// It lives for the editing session only and is never persisted; export
// serializes a snapshot into a PDF download.
type Document struct {
	Type   DocumentType `json:"type"`
	Number string       `json:"number"`

	// Dates are stored as YYYY-MM-DD strings, the form wire format.
	IssueDate string `json:"issue_date"`
	// SecondaryDate is the valid-until date for quotes and the due date
	// for invoices.
	SecondaryDate string `json:"secondary_date"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientAddress string `json:"client_address"` // free text, may span lines

	Items []LineItem `json:"items"`
	Notes string     `json:"notes"`

	Tax    TaxConfig `json:"tax"`
	Totals Totals    `json:"totals"`

	// Status is only meaningful for invoices.
	Status InvoiceStatus `json:"status,omitempty"`
}

// NewQuote creates a quote with default numbering, dates, tax config
// and a single blank line item.
func NewQuote() *Document {
	d := newDocument(DocumentTypeQuote, "QUO")
	return d
}

// NewInvoice creates an invoice with default numbering, dates, tax
// config, pending status and a single blank line item.
func NewInvoice() *Document {
	d := newDocument(DocumentTypeInvoice, "INV")
	d.Status = StatusPending
	return d
}

func newDocument(t DocumentType, prefix string) *Document {
	now := time.Now()
	d := &Document{
		Type:          t,
		Number:        fmt.Sprintf("%s-%d", prefix, now.UnixMilli()),
		IssueDate:     now.Format("2006-01-02"),
		SecondaryDate: now.AddDate(0, 0, 30).Format("2006-01-02"),
		Items:         []LineItem{blankItem()},
		Tax:           TaxConfig{Enabled: true, Rate: 10, Label: "Tax"},
	}
	d.Recompute()
	return d
}

func blankItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// AddItem appends a fresh blank line item and returns it.
func (d *Document) AddItem() LineItem {
	item := blankItem()
	d.Items = append(d.Items, item)
	d.Recompute()
	return item
}

// RemoveItem removes the item with the given id. The document always
// keeps at least one line item; removing the last one is refused.
func (d *Document) RemoveItem(id string) bool {
	if len(d.Items) <= 1 {
		return false
	}
	for i, item := range d.Items {
		if item.ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.Recompute()
			return true
		}
	}
	return false
}

// Item fields accepted by UpdateItem.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unitPrice"
)

// UpdateItem sets one field on the item with the given id. Quantity and
// unit price are parsed with ParseNumber, so malformed input coerces to
// zero instead of rejecting the edit, and the amount is recomputed
// immediately. Returns false when no item matches id or the field name
// is unknown.
func (d *Document) UpdateItem(id, field, value string) bool {
	for i := range d.Items {
		if d.Items[i].ID != id {
			continue
		}
		switch field {
		case FieldDescription:
			d.Items[i].Description = value
		case FieldQuantity:
			d.Items[i].Quantity = ParseNumber(value)
		case FieldUnitPrice:
			d.Items[i].UnitPrice = ParseNumber(value)
		default:
			return false
		}
		d.Items[i].Amount = d.Items[i].Quantity * d.Items[i].UnitPrice
		d.Recompute()
		return true
	}
	return false
}

// Recompute derives the item amounts and the subtotal/tax/total block.
// It is idempotent and has no side effects beyond the derived fields.
func (d *Document) Recompute() {
	var subtotal float64
	for i := range d.Items {
		d.Items[i].Amount = d.Items[i].Quantity * d.Items[i].UnitPrice
		subtotal += d.Items[i].Amount
	}
	var tax float64
	if d.Tax.Enabled {
		tax = subtotal * d.Tax.Rate / 100
	}
	d.Totals = Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// Snapshot returns a deep copy of the document, safe to hand to the
// renderer while the original keeps being edited.
func (d *Document) Snapshot() Document {
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	copy(cp.Items, d.Items)
	return cp
}

// ParseNumber is the intentional parse-with-default policy for numeric
// form input: anything that does not parse as a non-negative number
// becomes 0. Invalid input is coerced, not rejected.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
