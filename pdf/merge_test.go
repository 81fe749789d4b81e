package pdf

import (
	"errors"
	"strings"
	"testing"
)

func TestMergePreservesOrder(t *testing.T) {
	docA := buildFixture(t, 2, 3, "DOCA", 1)
	docB := buildFixture(t, 3, 3, "DOCB", 2)

	out, err := Merge([][]byte{docA, docB})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	ctx := parseForTest(t, out)
	if ctx.PageCount != 5 {
		t.Fatalf("page count = %d, want 5", ctx.PageCount)
	}
	wantMarkers := []string{
		"DOCA page 1",
		"DOCA page 2",
		"DOCB page 1",
		"DOCB page 2",
		"DOCB page 3",
	}
	for i, marker := range wantMarkers {
		content := pageContent(t, ctx, i+1)
		if !strings.Contains(content, marker) {
			t.Errorf("page %d: missing marker %q", i+1, marker)
		}
	}
}

func TestMergeSingleInput(t *testing.T) {
	doc := buildFixture(t, 2, 3, "SOLO", 3)

	out, err := Merge([][]byte{doc})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	ctx := parseForTest(t, out)
	if ctx.PageCount != 2 {
		t.Errorf("page count = %d, want 2", ctx.PageCount)
	}
	if !strings.Contains(pageContent(t, ctx, 1), "SOLO page 1") {
		t.Errorf("page 1 lost its content")
	}
}

func TestMergeNoInput(t *testing.T) {
	if _, err := Merge(nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("Merge(nil) error = %v, want ErrNoInput", err)
	}
	if _, err := Merge([][]byte{}); !errors.Is(err, ErrNoInput) {
		t.Errorf("Merge(empty) error = %v, want ErrNoInput", err)
	}
}

func TestMergeReportsFailingInput(t *testing.T) {
	good := buildFixture(t, 1, 3, "GOOD", 4)
	bad := []byte("%PDF-1.4 truncated garbage")

	_, err := Merge([][]byte{good, bad, good})
	if err == nil {
		t.Fatal("Merge with malformed input succeeded")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parseErr.Input != 1 {
		t.Errorf("ParseError.Input = %d, want 1", parseErr.Input)
	}
	if !strings.Contains(parseErr.Error(), "input 2") {
		t.Errorf("error message %q does not name the failing input", parseErr.Error())
	}
}
