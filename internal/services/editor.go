package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jhbridge/billing/internal/models"
	"github.com/jhbridge/billing/internal/pdf"
)

var (
	ErrItemNotFound = errors.New("item not found")
	// ErrLastItem is returned when removal would leave zero line items;
	// a document always keeps at least one.
	ErrLastItem = errors.New("document must keep at least one item")
	// ErrExportInProgress rejects a second export while one is pending.
	ErrExportInProgress = errors.New("export already in progress")
	ErrUnknownField     = errors.New("unknown item field")
)

// Renderer is the document-to-bytes function the editor exports with.
type Renderer interface {
	Generate(ctx context.Context, doc models.Document) ([]byte, error)
}

// EditorService owns the mutable document state for each editor view.
// One document per type; every mutation recomputes totals
// synchronously before returning, so reads never see stale derived
// fields. Documents are never persisted.
type EditorService struct {
	mu        sync.Mutex
	docs      map[models.DocumentType]*models.Document
	exporting map[models.DocumentType]bool
	renderer  Renderer
}

func NewEditorService(r Renderer) *EditorService {
	return &EditorService{
		docs:      make(map[models.DocumentType]*models.Document),
		exporting: make(map[models.DocumentType]bool),
		renderer:  r,
	}
}

func newDocument(t models.DocumentType) *models.Document {
	if t == models.DocumentTypeInvoice {
		return models.NewInvoice()
	}
	return models.NewQuote()
}

// Document returns the current document for the type, creating it with
// defaults on first access (the editor "mount").
func (s *EditorService) Document(t models.DocumentType) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.doc(t)
}

func (s *EditorService) doc(t models.DocumentType) *models.Document {
	d, ok := s.docs[t]
	if !ok {
		d = newDocument(t)
		s.docs[t] = d
	}
	return d
}

// Reset discards the current document and starts a fresh one.
func (s *EditorService) Reset(t models.DocumentType) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := newDocument(t)
	s.docs[t] = d
	return *d
}

// AddItem appends a blank line item and returns it.
func (s *EditorService) AddItem(t models.DocumentType) models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc(t).AddItem()
}

// RemoveItem removes the item with the given id, refusing to drop the
// last remaining item.
func (s *EditorService) RemoveItem(t models.DocumentType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.doc(t)
	if len(d.Items) <= 1 {
		return ErrLastItem
	}
	if !d.RemoveItem(id) {
		return ErrItemNotFound
	}
	return nil
}

// UpdateItem sets one field on the matching item; numeric fields go
// through the coerce-to-zero parse policy.
func (s *EditorService) UpdateItem(t models.DocumentType, id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.doc(t)
	switch field {
	case models.FieldDescription, models.FieldQuantity, models.FieldUnitPrice:
	default:
		return ErrUnknownField
	}
	if !d.UpdateItem(id, field, value) {
		return ErrItemNotFound
	}
	return nil
}

// Update applies fn to the document and recomputes totals afterwards,
// so document-level edits (client, dates, tax config, status) can
// never leave derived fields stale.
func (s *EditorService) Update(t models.DocumentType, fn func(*models.Document)) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.doc(t)
	fn(d)
	d.Recompute()
	return *d
}

// Export renders the current document to PDF and returns the download
// filename and bytes. Only one export per document type may be in
// flight; concurrent attempts get ErrExportInProgress. The document
// itself is untouched: export serializes a snapshot, it does not save
// or reset editor state.
func (s *EditorService) Export(ctx context.Context, t models.DocumentType) (string, []byte, error) {
	s.mu.Lock()
	if s.exporting[t] {
		s.mu.Unlock()
		return "", nil, ErrExportInProgress
	}
	s.exporting[t] = true
	snapshot := s.doc(t).Snapshot()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting[t] = false
		s.mu.Unlock()
	}()

	data, err := s.renderer.Generate(ctx, snapshot)
	if err != nil {
		return "", nil, err
	}
	return pdf.Filename(snapshot), data, nil
}
