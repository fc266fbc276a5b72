package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jhbridge/billing/internal/models"
	"github.com/jhbridge/billing/internal/pdf"
	"github.com/jhbridge/billing/internal/services"
)

func newQuoteHandler(t *testing.T) (*DocumentHandler, *services.EditorService) {
	t.Helper()
	editors := services.NewEditorService(pdf.NewGenerator(""))
	return NewDocumentHandler(models.DocumentTypeQuote, editors), editors
}

func getJSON(t *testing.T, h http.HandlerFunc, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode: %v body=%s", err, w.Body.String())
		}
	}
	return w.Code
}

func postFormJSON(t *testing.T, h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestDocumentShow_JSON(t *testing.T) {
	h, _ := newQuoteHandler(t)
	var doc models.Document
	if code := getJSON(t, h.show, "/quote", &doc); code != http.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
	if doc.Type != models.DocumentTypeQuote || len(doc.Items) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestDocumentShow_NewResets(t *testing.T) {
	h, editors := newQuoteHandler(t)
	editors.AddItem(models.DocumentTypeQuote)

	var doc models.Document
	if code := getJSON(t, h.show, "/quote?new=1", &doc); code != http.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
	if len(doc.Items) != 1 {
		t.Errorf("reset document items = %d, want 1", len(doc.Items))
	}
}

func TestDocumentItemFlow(t *testing.T) {
	h, _ := newQuoteHandler(t)

	// add
	w := postFormJSON(t, h.addItem, "/quote/items", url.Values{})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var item models.LineItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	// update via field/value pair
	w = postFormJSON(t, h.updateItem, "/quote/items/update", url.Values{
		"id": {item.ID}, "field": {"quantity"}, "value": {"2"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	w = postFormJSON(t, h.updateItem, "/quote/items/update", url.Values{
		"id": {item.ID}, "field": {"unitPrice"}, "value": {"50"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update price: expected 200 got %d", w.Code)
	}
	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc.Totals.Subtotal != 100 {
		t.Errorf("Subtotal = %f, want 100", doc.Totals.Subtotal)
	}

	// update via row form (named fields, no field/value pair)
	w = postFormJSON(t, h.updateItem, "/quote/items/update", url.Values{
		"id": {item.ID}, "quantity": {"3"}, "unitPrice": {"10"}, "description": {"Proofreading"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("row update: expected 200 got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc.Totals.Subtotal != 30 {
		t.Errorf("Subtotal = %f, want 30", doc.Totals.Subtotal)
	}

	// remove down to one item, then refuse
	w = postFormJSON(t, h.removeItem, "/quote/items/remove", url.Values{"id": {item.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected 200 got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(doc.Items))
	}
	w = postFormJSON(t, h.removeItem, "/quote/items/remove", url.Values{"id": {doc.Items[0].ID}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("remove last: expected 400 got %d", w.Code)
	}
}

func TestDocumentUpdateItem_Errors(t *testing.T) {
	h, _ := newQuoteHandler(t)
	w := postFormJSON(t, h.updateItem, "/quote/items/update", url.Values{
		"id": {"ghost"}, "field": {"quantity"}, "value": {"1"},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404 got %d", w.Code)
	}

	var doc models.Document
	getJSON(t, h.show, "/quote", &doc)
	w = postFormJSON(t, h.updateItem, "/quote/items/update", url.Values{
		"id": {doc.Items[0].ID}, "field": {"amount"}, "value": {"9"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad field: expected 400 got %d", w.Code)
	}
}

func TestDocumentUpdate_Fields(t *testing.T) {
	h, _ := newQuoteHandler(t)
	w := postFormJSON(t, h.updateDocument, "/quote/update", url.Values{
		"client_name":         {"Acme Corp"},
		"client_address":      {"1 Main St\nSpringfield"},
		"notes":               {"Net 30"},
		"tax_rate":            {"8.5"},
		"tax_enabled_present": {"1"},
		"tax_enabled":         {"on"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ClientName != "Acme Corp" || doc.Notes != "Net 30" {
		t.Errorf("fields not applied: %+v", doc)
	}
	if doc.Tax.Rate != 8.5 || !doc.Tax.Enabled {
		t.Errorf("tax config not applied: %+v", doc.Tax)
	}

	// unchecking the box disables tax
	w = postFormJSON(t, h.updateDocument, "/quote/update", url.Values{
		"tax_enabled_present": {"1"},
	})
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Tax.Enabled {
		t.Error("tax must be disabled when the checkbox is absent but the marker is present")
	}
	if doc.Totals.Tax != 0 {
		t.Errorf("Tax = %f, want 0 after disabling", doc.Totals.Tax)
	}
}

func TestInvoiceStatusUpdate(t *testing.T) {
	editors := services.NewEditorService(pdf.NewGenerator(""))
	h := NewDocumentHandler(models.DocumentTypeInvoice, editors)

	w := postFormJSON(t, h.updateDocument, "/invoice/update", url.Values{"status": {"overdue"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Status != models.StatusOverdue {
		t.Errorf("Status = %q, want overdue", doc.Status)
	}
}

func TestDocumentExport(t *testing.T) {
	h, editors := newQuoteHandler(t)
	doc := editors.Document(models.DocumentTypeQuote)

	w := postFormJSON(t, h.export, "/quote/pdf", url.Values{})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "quote-"+doc.Number+".pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("body is not a PDF")
	}
}

func TestDocumentEndpoints_MethodGuards(t *testing.T) {
	h, _ := newQuoteHandler(t)
	for name, fn := range map[string]http.HandlerFunc{
		"addItem":    h.addItem,
		"removeItem": h.removeItem,
		"updateItem": h.updateItem,
		"update":     h.updateDocument,
		"export":     h.export,
	} {
		req := httptest.NewRequest(http.MethodGet, "/quote/x", nil)
		w := httptest.NewRecorder()
		fn(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405 got %d", name, w.Code)
		}
	}
}
