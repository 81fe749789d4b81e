package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// ParsePageRanges parses a page specification like "1", "1,3", "1-5" or
// "1,3-5,7" into a sorted, deduplicated list of page numbers.
func ParsePageRanges(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty page specification")
	}

	seen := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty element in page specification")
		}

		first, second, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", first)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(second))
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", second)
			}
		}
		if start > end {
			return nil, fmt.Errorf("invalid range: start > end (%d > %d)", start, end)
		}

		for p := start; p <= end; p++ {
			seen[p] = struct{}{}
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// ValidatePageNumbers checks that every page number fits a document with the
// given total page count.
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, p := range pages {
		if p < 1 {
			return fmt.Errorf("page numbers must be positive, got %d", p)
		}
		if p > totalPages {
			return fmt.Errorf("page %d exceeds total pages (%d)", p, totalPages)
		}
	}
	return nil
}

// RemovePages deletes the pages named by spec from the document and returns
// the reserialized bytes. Removing every page is rejected.
func RemovePages(b []byte, spec string) ([]byte, error) {
	drop, err := ParsePageRanges(spec)
	if err != nil {
		return nil, err
	}

	ctx, err := parseDocument(b, defaultConfiguration())
	if err != nil {
		return nil, &ParseError{Input: -1, Err: err}
	}
	if err := ValidatePageNumbers(drop, ctx.PageCount); err != nil {
		return nil, err
	}

	dropped := make(map[int]struct{}, len(drop))
	for _, p := range drop {
		dropped[p] = struct{}{}
	}
	keep := make([]int, 0, ctx.PageCount-len(dropped))
	for p := 1; p <= ctx.PageCount; p++ {
		if _, ok := dropped[p]; !ok {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("removing %d pages would leave an empty document", len(drop))
	}

	sub, err := pdfcpu.ExtractPages(ctx, keep, false)
	if err != nil {
		return nil, fmt.Errorf("extract remaining pages: %w", err)
	}
	return serializeDocument(sub)
}
