package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Render consumes a layout and emits the PDF bytes. Single page, no
// pagination: overflowing content simply draws past the page bounds.
func Render(ops []Op) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	for i, op := range ops {
		switch op.Kind {
		case OpBand:
			doc.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
			doc.Rect(op.X, op.Y, op.W, op.H, "F")
		case OpText:
			doc.SetFont("Helvetica", op.Font.Style, op.Font.Size)
			doc.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			doc.Text(op.X, op.Y, op.Text)
		case OpWrapped:
			doc.SetFont("Helvetica", op.Font.Style, op.Font.Size)
			doc.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			y := op.Y
			for _, line := range doc.SplitText(op.Text, op.W) {
				doc.Text(op.X, y, line)
				y += lineStep
			}
		case OpImage:
			name := fmt.Sprintf("img-%d", i)
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(op.Image))
			doc.ImageOptions(name, op.X, op.Y, op.W, op.H, false, opts, 0, "")
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("render pdf: %w", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("emit pdf: %w", err)
	}
	return buf.Bytes(), nil
}
