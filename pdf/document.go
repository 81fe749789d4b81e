package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// parseDocument loads a serialized document into a pdfcpu context using the
// given configuration and ensures its page tree is countable.
func parseDocument(b []byte, conf *model.Configuration) (*model.Context, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(b), conf)
	if err != nil {
		return nil, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// serializeDocument writes a context back to a byte buffer.
func serializeDocument(ctx *model.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// defaultConfiguration returns the parser configuration used outside the
// attempt loop. Validation is relaxed so real-world files survive the round
// trip.
func defaultConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Resave parses a document and writes it back with default options. It serves
// as a normalization pass and as the merge path for a single input. Malformed
// input fails with a ParseError.
func Resave(b []byte) ([]byte, error) {
	ctx, err := parseDocument(b, defaultConfiguration())
	if err != nil {
		return nil, &ParseError{Input: -1, Err: err}
	}
	return serializeDocument(ctx)
}
