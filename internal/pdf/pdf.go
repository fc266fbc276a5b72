// Package pdf turns a finalized document snapshot into a single-page
// PDF with the fixed brand template.
package pdf

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jhbridge/billing/internal/models"
)

// Generator renders documents. The zero value renders without a logo.
type Generator struct {
	// LogoPath is a file path or http(s) URL; empty disables the logo.
	LogoPath string
	// LogoTimeout bounds the asset fetch. Defaults to 10s.
	LogoTimeout time.Duration
}

func NewGenerator(logoPath string) *Generator {
	return &Generator{LogoPath: logoPath}
}

// Generate renders the document. The logo load is the only
// asynchronous step; it is awaited before the drawing sequence starts,
// and any load failure downgrades to the text header without error.
func (g *Generator) Generate(ctx context.Context, doc models.Document) ([]byte, error) {
	var logo []byte
	if g.LogoPath != "" {
		timeout := g.LogoTimeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		loadCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		ch := make(chan []byte, 1)
		go func() {
			data, err := LoadLogo(loadCtx, g.LogoPath)
			if err != nil {
				log.Printf("logo unavailable, using text header: %v", err)
				ch <- nil
				return
			}
			ch <- data
		}()
		logo = <-ch
	}
	return Render(Build(doc, logo))
}

// Filename returns the download name for a document,
// e.g. "invoice-INV-123.pdf".
func Filename(doc models.Document) string {
	return fmt.Sprintf("%s-%s.pdf", doc.Type, doc.Number)
}
