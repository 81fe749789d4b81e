package pdf

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	reader "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const lineAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomLine(rng *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(lineAlphabet[rng.Intn(len(lineAlphabet))])
	}
	return sb.String()
}

// buildFixture builds a document whose every page starts with "<marker> page
// <n>" followed by lines of pseudorandom text. Random content keeps pages
// distinct so they cannot collapse under stream deduplication.
func buildFixture(t *testing.T, pages, lines int, marker string, seed int64) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	doc := gofpdf.New("P", "pt", "A4", "")
	for p := 1; p <= pages; p++ {
		doc.AddPage()
		doc.SetFont("Courier", "", 9)
		doc.CellFormat(0, 12, fmt.Sprintf("%s page %d", marker, p), "", 1, "L", false, 0, "")
		for i := 0; i < lines; i++ {
			doc.CellFormat(0, 12, randomLine(rng, 80), "", 1, "L", false, 0, "")
		}
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return buf.Bytes()
}

// buildTailHeavyFixture builds a document whose first light pages carry a
// single short line each while the trailing heavy pages carry dense random
// text, so dropping the tail shrinks the document drastically.
func buildTailHeavyFixture(t *testing.T, light, heavy int, seed int64) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	doc := gofpdf.New("P", "pt", "A4", "")
	for p := 1; p <= light; p++ {
		doc.AddPage()
		doc.SetFont("Courier", "", 9)
		doc.CellFormat(0, 12, fmt.Sprintf("front page %d", p), "", 1, "L", false, 0, "")
	}
	for p := 1; p <= heavy; p++ {
		doc.AddPage()
		doc.SetFont("Courier", "", 9)
		doc.CellFormat(0, 12, fmt.Sprintf("tail page %d", p), "", 1, "L", false, 0, "")
		for i := 0; i < 55; i++ {
			doc.CellFormat(0, 12, randomLine(rng, 200), "", 1, "L", false, 0, "")
		}
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build tail-heavy fixture: %v", err)
	}
	return buf.Bytes()
}

// buildMetaFixture builds a two page document carrying document information
// fields.
func buildMetaFixture(t *testing.T) []byte {
	t.Helper()
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Quarterly Report", false)
	doc.SetAuthor("Finance Team", false)
	doc.SetSubject("Q3 figures", false)
	doc.SetKeywords("finance quarterly", false)
	doc.SetCreator("reportgen", false)
	for p := 1; p <= 2; p++ {
		doc.AddPage()
		doc.SetFont("Courier", "", 9)
		doc.CellFormat(0, 12, fmt.Sprintf("META page %d", p), "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build metadata fixture: %v", err)
	}
	return buf.Bytes()
}

// buildLinkFixture builds a single page document carrying a link annotation.
func buildLinkFixture(t *testing.T) []byte {
	t.Helper()
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Courier", "", 9)
	doc.CellFormat(0, 12, "LINK page 1", "", 1, "L", false, 0, "")
	doc.LinkString(40, 40, 120, 14, "https://example.com/")
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build link fixture: %v", err)
	}
	return buf.Bytes()
}

// parseForTest parses produced bytes back into a context for assertions.
func parseForTest(t *testing.T, b []byte) *model.Context {
	t.Helper()
	ctx, err := parseDocument(b, defaultConfiguration())
	if err != nil {
		t.Fatalf("parse produced document: %v", err)
	}
	return ctx
}

// pageContent returns the decoded content stream of one page as a string.
func pageContent(t *testing.T, ctx *model.Context, pageNr int) string {
	t.Helper()
	pageDict, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		t.Fatalf("page dict %d: %v", pageNr, err)
	}
	content, err := ctx.PageContent(pageDict, pageNr)
	if err != nil {
		t.Fatalf("page content %d: %v", pageNr, err)
	}
	return string(content)
}

// extractText pulls the plain text out of a document with an independent
// read-side library.
func extractText(t *testing.T, b []byte) string {
	t.Helper()
	r, err := reader.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("open document for text extraction: %v", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			t.Fatalf("extract text from page %d: %v", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String()
}
