package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merge concatenates the given serialized documents into one, preserving the
// order of the inputs and the page order inside each input. Every buffer is
// parsed up front so a malformed input is reported with its position rather
// than as an anonymous merge failure.
func Merge(buffers [][]byte) ([]byte, error) {
	if len(buffers) == 0 {
		return nil, ErrNoInput
	}

	for i, b := range buffers {
		if _, err := parseDocument(b, defaultConfiguration()); err != nil {
			return nil, &ParseError{Input: i, Err: err}
		}
	}

	if len(buffers) == 1 {
		return Resave(buffers[0])
	}

	readers := make([]io.ReadSeeker, len(buffers))
	for i, b := range buffers {
		readers[i] = bytes.NewReader(b)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, defaultConfiguration()); err != nil {
		return nil, fmt.Errorf("merge %d documents: %w", len(buffers), err)
	}
	return out.Bytes(), nil
}
