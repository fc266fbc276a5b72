package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/jhbridge/billing/internal/httpx"
	"github.com/jhbridge/billing/internal/models"
	"github.com/jhbridge/billing/internal/services"
)

// DocumentHandler serves one editor (quote or invoice): the page
// itself, the line-item operations, document-level field updates and
// the PDF export. Handlers are dual-format: JSON for API callers,
// redirect-back for plain form posts.
type DocumentHandler struct {
	Type    models.DocumentType
	Editors *services.EditorService
}

func NewDocumentHandler(t models.DocumentType, editors *services.EditorService) *DocumentHandler {
	return &DocumentHandler{Type: t, Editors: editors}
}

// Register wires the editor routes under the given prefix
// ("/quote" or "/invoice"), all behind the protect middleware.
func (h *DocumentHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	prefix := "/" + string(h.Type)
	mux.Handle(prefix, protect(http.HandlerFunc(h.show)))
	mux.Handle(prefix+"/items", protect(http.HandlerFunc(h.addItem)))
	mux.Handle(prefix+"/items/remove", protect(http.HandlerFunc(h.removeItem)))
	mux.Handle(prefix+"/items/update", protect(http.HandlerFunc(h.updateItem)))
	mux.Handle(prefix+"/update", protect(http.HandlerFunc(h.updateDocument)))
	mux.Handle(prefix+"/pdf", protect(http.HandlerFunc(h.export)))
}

func (h *DocumentHandler) editorPath() string { return "/" + string(h.Type) }

// redirectBack finishes a form mutation with PRG back to the editor.
func (h *DocumentHandler) redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.editorPath(), http.StatusSeeOther)
}

// show renders the editor. ?new=1 discards the current document and
// mounts a fresh one.
func (h *DocumentHandler) show(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var doc models.Document
	if r.URL.Query().Get("new") == "1" {
		doc = h.Editors.Reset(h.Type)
	} else {
		doc = h.Editors.Document(h.Type)
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, doc)
		return
	}
	renderTemplate(w, "editor", map[string]any{
		"Doc":       doc,
		"IsInvoice": h.Type == models.DocumentTypeInvoice,
		"Title":     title(h.Type),
	})
}

func title(t models.DocumentType) string {
	if t == models.DocumentTypeInvoice {
		return "Create Invoice"
	}
	return "Create Quote"
}

func (h *DocumentHandler) addItem(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	item := h.Editors.AddItem(h.Type)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, item)
		return
	}
	h.redirectBack(w, r)
}

func (h *DocumentHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.FormValue("id")
	err := h.Editors.RemoveItem(h.Type, id)
	switch {
	case errors.Is(err, services.ErrLastItem):
		// the UI disables the control; a direct post is a no-op
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "last_item", nil)
			return
		}
		h.redirectBack(w, r)
	case errors.Is(err, services.ErrItemNotFound):
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
			return
		}
		h.redirectBack(w, r)
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "remove_failed", nil)
	default:
		if httpx.WantsJSON(r) {
			httpx.JSON(w, http.StatusOK, h.Editors.Document(h.Type))
			return
		}
		h.redirectBack(w, r)
	}
}

func (h *DocumentHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.FormValue("id")
	field := r.FormValue("field")
	value := r.FormValue("value")
	var err error
	if field != "" {
		err = h.Editors.UpdateItem(h.Type, id, field, value)
	} else {
		// row form posts: apply whichever named fields are present
		if parseErr := r.ParseForm(); parseErr != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		for _, f := range []string{models.FieldDescription, models.FieldQuantity, models.FieldUnitPrice} {
			if _, ok := r.Form[f]; !ok {
				continue
			}
			if err = h.Editors.UpdateItem(h.Type, id, f, r.FormValue(f)); err != nil {
				break
			}
		}
	}
	switch {
	case errors.Is(err, services.ErrUnknownField):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_field", nil)
	case errors.Is(err, services.ErrItemNotFound):
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
	default:
		if httpx.WantsJSON(r) {
			httpx.JSON(w, http.StatusOK, h.Editors.Document(h.Type))
			return
		}
		h.redirectBack(w, r)
	}
}

// updateDocument applies the document-level form fields: client
// identity, dates, notes, tax configuration and (invoices) status.
// Only fields present in the form are touched.
func (h *DocumentHandler) updateDocument(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	doc := h.Editors.Update(h.Type, func(d *models.Document) {
		setIfPresent(r, "number", &d.Number)
		setIfPresent(r, "issue_date", &d.IssueDate)
		setIfPresent(r, "secondary_date", &d.SecondaryDate)
		setIfPresent(r, "client_name", &d.ClientName)
		setIfPresent(r, "client_email", &d.ClientEmail)
		setIfPresent(r, "client_address", &d.ClientAddress)
		setIfPresent(r, "notes", &d.Notes)
		setIfPresent(r, "tax_label", &d.Tax.Label)
		if _, ok := r.Form["tax_rate"]; ok {
			d.Tax.Rate = models.ParseNumber(r.FormValue("tax_rate"))
		}
		// the checkbox is absent from the form when unchecked, so the
		// template carries a marker field to distinguish "unchecked"
		// from "not submitted"
		_, marker := r.Form["tax_enabled_present"]
		if _, ok := r.Form["tax_enabled"]; ok || marker {
			d.Tax.Enabled = r.FormValue("tax_enabled") == "on" || r.FormValue("tax_enabled") == "true"
		}
		if h.Type == models.DocumentTypeInvoice {
			if v := r.FormValue("status"); v != "" {
				d.Status = models.InvoiceStatus(v)
			}
		}
	})
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, doc)
		return
	}
	h.redirectBack(w, r)
}

func setIfPresent(r *http.Request, key string, dst *string) {
	if _, ok := r.Form[key]; ok {
		*dst = r.FormValue(key)
	}
}

// export renders the current document and streams it as a download.
// Failures are logged and reported as a bare error envelope; the
// editor state is left untouched either way.
func (h *DocumentHandler) export(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	filename, data, err := h.Editors.Export(r.Context(), h.Type)
	if errors.Is(err, services.ErrExportInProgress) {
		httpx.JSONError(w, http.StatusConflict, "export_in_progress", nil)
		return
	}
	if err != nil {
		log.Printf("pdf generation failed: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.Attachment(w, filename, "application/pdf", data)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	return true
}
