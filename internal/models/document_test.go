package models

import (
	"strings"
	"testing"
)

func TestNewQuote_Defaults(t *testing.T) {
	d := NewQuote()
	if d.Type != DocumentTypeQuote {
		t.Errorf("Type = %s, want quote", d.Type)
	}
	if !strings.HasPrefix(d.Number, "QUO-") {
		t.Errorf("Number = %q, want QUO- prefix", d.Number)
	}
	if len(d.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(d.Items))
	}
	item := d.Items[0]
	if item.ID == "" {
		t.Error("blank item must have a generated id")
	}
	if item.Description != "" || item.Quantity != 1 || item.UnitPrice != 0 || item.Amount != 0 {
		t.Errorf("unexpected blank item: %+v", item)
	}
	if !d.Tax.Enabled || d.Tax.Rate != 10 || d.Tax.Label != "Tax" {
		t.Errorf("unexpected tax defaults: %+v", d.Tax)
	}
	if d.Status != "" {
		t.Errorf("quote must not carry a status, got %q", d.Status)
	}
}

func TestNewInvoice_Defaults(t *testing.T) {
	d := NewInvoice()
	if d.Type != DocumentTypeInvoice {
		t.Errorf("Type = %s, want invoice", d.Type)
	}
	if !strings.HasPrefix(d.Number, "INV-") {
		t.Errorf("Number = %q, want INV- prefix", d.Number)
	}
	if d.Status != StatusPending {
		t.Errorf("Status = %q, want pending", d.Status)
	}
}

func TestDocument_AddItem(t *testing.T) {
	d := NewQuote()
	item := d.AddItem()
	if len(d.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(d.Items))
	}
	if item.ID == d.Items[0].ID {
		t.Error("new item must have a fresh id")
	}
	if item.Quantity != 1 || item.UnitPrice != 0 || item.Amount != 0 {
		t.Errorf("unexpected new item: %+v", item)
	}
}

func TestDocument_RemoveItem_KeepsAtLeastOne(t *testing.T) {
	d := NewQuote()
	only := d.Items[0].ID
	if d.RemoveItem(only) {
		t.Error("removing the last item must be refused")
	}
	if len(d.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(d.Items))
	}

	second := d.AddItem()
	if !d.RemoveItem(second.ID) {
		t.Fatal("removing one of two items must succeed")
	}
	if len(d.Items) != 1 {
		t.Fatalf("items = %d, want 1 after removal", len(d.Items))
	}
	if d.RemoveItem("no-such-id") {
		t.Error("unknown id must not remove anything")
	}
}

func TestDocument_UpdateItem(t *testing.T) {
	d := NewQuote()
	id := d.Items[0].ID

	if !d.UpdateItem(id, FieldDescription, "Website translation") {
		t.Fatal("update description failed")
	}
	if !d.UpdateItem(id, FieldQuantity, "3") {
		t.Fatal("update quantity failed")
	}
	if !d.UpdateItem(id, FieldUnitPrice, "25.50") {
		t.Fatal("update unit price failed")
	}
	item := d.Items[0]
	if item.Description != "Website translation" {
		t.Errorf("Description = %q", item.Description)
	}
	if item.Amount != 76.5 {
		t.Errorf("Amount = %f, want 76.5", item.Amount)
	}
	if d.UpdateItem("missing", FieldQuantity, "1") {
		t.Error("unknown id must fail")
	}
	if d.UpdateItem(id, "amount", "999") {
		t.Error("amount must not be settable directly")
	}
}

func TestDocument_UpdateItem_CoercesBadNumbers(t *testing.T) {
	d := NewQuote()
	id := d.Items[0].ID
	d.UpdateItem(id, FieldUnitPrice, "50")
	d.UpdateItem(id, FieldQuantity, "not a number")
	if got := d.Items[0].Quantity; got != 0 {
		t.Errorf("Quantity = %f, want 0 after bad input", got)
	}
	if got := d.Items[0].Amount; got != 0 {
		t.Errorf("Amount = %f, want 0 after bad input", got)
	}
	if got := d.Totals.Subtotal; got != 0 {
		t.Errorf("Subtotal = %f, want 0", got)
	}
}

func TestDocument_Recompute(t *testing.T) {
	d := NewQuote()
	d.Items = []LineItem{
		{ID: "a", Quantity: 2, UnitPrice: 50},
		{ID: "b", Quantity: 1, UnitPrice: 30},
	}
	d.Tax = TaxConfig{Enabled: true, Rate: 10, Label: "Tax"}
	d.Recompute()

	if d.Totals.Subtotal != 130 {
		t.Errorf("Subtotal = %f, want 130", d.Totals.Subtotal)
	}
	if d.Totals.Tax != 13 {
		t.Errorf("Tax = %f, want 13", d.Totals.Tax)
	}
	if d.Totals.Total != 143 {
		t.Errorf("Total = %f, want 143", d.Totals.Total)
	}

	// idempotent
	d.Recompute()
	if d.Totals.Total != 143 {
		t.Errorf("Total after second recompute = %f, want 143", d.Totals.Total)
	}
}

func TestDocument_Recompute_TaxDisabled(t *testing.T) {
	d := NewQuote()
	d.Items = []LineItem{{ID: "a", Quantity: 4, UnitPrice: 25}}
	d.Tax = TaxConfig{Enabled: false, Rate: 99, Label: "Tax"}
	d.Recompute()
	if d.Totals.Tax != 0 {
		t.Errorf("Tax = %f, want 0 when disabled regardless of rate", d.Totals.Tax)
	}
	if d.Totals.Total != d.Totals.Subtotal {
		t.Errorf("Total = %f, want subtotal %f", d.Totals.Total, d.Totals.Subtotal)
	}
}

func TestDocument_SubtotalTracksMutations(t *testing.T) {
	d := NewQuote()
	first := d.Items[0].ID
	d.UpdateItem(first, FieldQuantity, "2")
	d.UpdateItem(first, FieldUnitPrice, "50")

	second := d.AddItem()
	d.UpdateItem(second.ID, FieldUnitPrice, "30")

	if d.Totals.Subtotal != 130 {
		t.Fatalf("Subtotal = %f, want 130", d.Totals.Subtotal)
	}
	d.RemoveItem(second.ID)
	if d.Totals.Subtotal != 100 {
		t.Fatalf("Subtotal = %f, want 100 after removal", d.Totals.Subtotal)
	}
}

func TestDocument_Snapshot(t *testing.T) {
	d := NewQuote()
	snap := d.Snapshot()
	d.UpdateItem(d.Items[0].ID, FieldDescription, "changed")
	if snap.Items[0].Description == "changed" {
		t.Error("snapshot must not share item storage with the original")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"3.14", 3.14},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
