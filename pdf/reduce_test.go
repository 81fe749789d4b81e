package pdf

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReduceIdentityWhenWithinTarget(t *testing.T) {
	doc := buildFixture(t, 2, 3, "TINY", 3)
	targetKB := float64(len(doc))/bytesPerKB + 1

	res, err := Reduce(doc, targetKB)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Errorf("outcome = %v, want success", res.Outcome)
	}
	if !bytes.Equal(res.Bytes, doc) {
		t.Error("document within target was rewritten")
	}
	if len(res.Trail) != 0 {
		t.Errorf("trail has %d entries, want 0", len(res.Trail))
	}
}

func TestReduceSucceedsOncePageSubsetKicksIn(t *testing.T) {
	doc := buildTailHeavyFixture(t, 24, 6, 11)
	targetKB := float64(len(doc)) / bytesPerKB * 0.25

	res, err := Reduce(doc, targetKB)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("outcome = %v, want success", res.Outcome)
	}
	if got := float64(len(res.Bytes)) / bytesPerKB; got > targetKB {
		t.Errorf("result is %.1f KB, above target %.1f KB", got, targetKB)
	}
	// The subset step starts at attempt 6 and keeps ceil(30*0.8) = 24 front
	// pages, which drops the heavy tail and lands under the target.
	if len(res.Trail) != 6 {
		t.Fatalf("trail has %d entries, want 6", len(res.Trail))
	}
	last := res.Trail[len(res.Trail)-1]
	if last.PagesKept != 24 {
		t.Errorf("final attempt kept %d pages, want 24", last.PagesKept)
	}
	if last.Profile != "deduped" {
		t.Errorf("final attempt profile = %q, want deduped", last.Profile)
	}
	if res.Pages != 24 {
		t.Errorf("result pages = %d, want 24", res.Pages)
	}
	ctx := parseForTest(t, res.Bytes)
	if ctx.PageCount != 24 {
		t.Errorf("produced document has %d pages, want 24", ctx.PageCount)
	}
	if !strings.Contains(pageContent(t, ctx, 1), "front page 1") {
		t.Error("first page lost its content")
	}
	for i, a := range res.Trail {
		if a.Number != i+1 {
			t.Errorf("trail[%d].Number = %d, want %d", i, a.Number, i+1)
		}
		if a.Size <= 0 {
			t.Errorf("trail[%d] recorded no output size", i)
		}
	}
}

func TestReduceDegradedKeepsBestAttempt(t *testing.T) {
	doc := buildFixture(t, 30, 55, "BULK", 7)
	targetKB := float64(len(doc)) / bytesPerKB * 0.2

	res, err := Reduce(doc, targetKB)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Outcome != OutcomeDegraded {
		t.Fatalf("outcome = %v, want degraded", res.Outcome)
	}
	if len(res.Trail) != MaxAttempts {
		t.Fatalf("trail has %d entries, want %d", len(res.Trail), MaxAttempts)
	}
	if len(res.Bytes) >= len(doc) {
		t.Errorf("degraded result (%d bytes) is not smaller than input (%d bytes)", len(res.Bytes), len(doc))
	}
	if got := float64(len(res.Bytes)) / bytesPerKB; got <= targetKB {
		t.Errorf("result %.1f KB meets target %.1f KB, should have been a success", got, targetKB)
	}
	best := 0
	for _, a := range res.Trail {
		if a.Size <= 0 {
			continue
		}
		if best == 0 || a.Size < best {
			best = a.Size
		}
	}
	if len(res.Bytes) != best {
		t.Errorf("result size = %d, want smallest attempt size %d", len(res.Bytes), best)
	}
	if res.Pages != 24 {
		t.Errorf("result pages = %d, want 24", res.Pages)
	}
	ctx := parseForTest(t, res.Bytes)
	if ctx.PageCount != 24 {
		t.Errorf("produced document has %d pages, want 24", ctx.PageCount)
	}
}

func TestReducePlaceholderForHopelessTarget(t *testing.T) {
	doc := buildFixture(t, 30, 55, "BULK", 9)
	targetKB := float64(len(doc)) / bytesPerKB * 0.05

	res, err := Reduce(doc, targetKB)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Outcome != OutcomePlaceholder {
		t.Fatalf("outcome = %v, want placeholder", res.Outcome)
	}
	if len(res.Trail) != MaxAttempts {
		t.Errorf("trail has %d entries, want %d", len(res.Trail), MaxAttempts)
	}
	if res.Pages != 1 {
		t.Errorf("result pages = %d, want 1", res.Pages)
	}
	ctx := parseForTest(t, res.Bytes)
	if ctx.PageCount != 1 {
		t.Errorf("placeholder has %d pages, want 1", ctx.PageCount)
	}
	text := extractText(t, res.Bytes)
	if !strings.Contains(text, "contained 30 pages") {
		t.Errorf("placeholder text %q does not name the original page count", text)
	}
}

func TestReduceMalformedInput(t *testing.T) {
	_, err := Reduce([]byte("not a document"), 100)
	if err == nil {
		t.Fatal("Reduce accepted garbage input")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parseErr.Input != -1 {
		t.Errorf("ParseError.Input = %d, want -1", parseErr.Input)
	}
}

func TestOutcomeString(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeDegraded, "degraded"},
		{OutcomePlaceholder, "placeholder"},
		{Outcome(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.outcome.String(); got != tc.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tc.outcome, got, tc.want)
		}
	}
}
