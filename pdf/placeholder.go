package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// placeholderDocument builds the fixed single-page document returned when the
// target size cannot be approached. Its three lines report the compression,
// the original page count and the content loss.
func placeholderDocument(originalPages int) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 24, "This document was compressed to the minimum possible size.", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 20, fmt.Sprintf("The original document contained %d pages.", originalPages), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 20, "Some content may have been removed to fit the size limit.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("build placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
