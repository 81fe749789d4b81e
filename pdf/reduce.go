package pdf

import (
	"math"

	"github.com/sirupsen/logrus"
)

// log carries the package's structured logger. Swallowed recoverable failures
// are reported here at debug level so the loop stays quiet in production.
var log = logrus.StandardLogger()

// Outcome classifies how a reduction terminated.
type Outcome int

const (
	// OutcomeSuccess means the returned bytes meet the target size.
	OutcomeSuccess Outcome = iota
	// OutcomeDegraded means attempts were exhausted and the smallest candidate
	// seen is returned even though it exceeds the target.
	OutcomeDegraded
	// OutcomePlaceholder means the target was unreachable and the fixed
	// single-page placeholder replaces every produced candidate.
	OutcomePlaceholder
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDegraded:
		return "degraded"
	case OutcomePlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// Attempt records one iteration of the reduction loop. A Size of zero marks an
// attempt that failed before producing serialized bytes.
type Attempt struct {
	Number    int     `json:"number"`
	Scale     float64 `json:"scale"`
	PagesKept int     `json:"pages_kept"`
	Profile   string  `json:"profile"`
	Size      int     `json:"size"`
}

// Result is the terminal state of a reduction.
type Result struct {
	Bytes   []byte
	Outcome Outcome
	// Pages is the page count of the returned document, or 0 when the input
	// was returned unchanged without being parsed.
	Pages int
	Trail []Attempt
}

// Reduce shrinks a serialized document until it fits targetKB kilobytes or
// MaxAttempts degradation attempts are exhausted. Each attempt transforms a
// fresh parse of the current source bytes; every third attempt's output
// becomes the new source so degradation compounds. Exhaustion is not an
// error: it yields either the smallest candidate seen or, for targets below
// PlaceholderRatioThreshold of the input size, the fixed placeholder
// document. Reduce fails only when the input does not parse (ParseError) or
// when no attempt produced serialized bytes (ReduceError).
func Reduce(b []byte, targetKB float64) (*Result, error) {
	currentKB := float64(len(b)) / bytesPerKB
	if currentKB <= targetKB {
		return &Result{Bytes: b, Outcome: OutcomeSuccess}, nil
	}

	src, err := parseDocument(b, defaultConfiguration())
	if err != nil {
		return nil, &ParseError{Input: -1, Err: err}
	}
	originalPages := src.PageCount
	ratio := targetKB / currentKB
	subsetKeep := int(math.Ceil(float64(originalPages) * SubsetKeepFraction))

	srcBytes := b
	trail := make([]Attempt, 0, MaxAttempts)
	var (
		best      []byte
		bestPages int
		lastErr   error
	)

	for a := 1; a <= MaxAttempts; a++ {
		policy := policyFor(a)
		out, pages, err := runAttempt(srcBytes, a, policy, ratio, subsetKeep)
		if err != nil {
			lastErr = err
			log.WithFields(logrus.Fields{"attempt": a, "error": err}).Debug("reduction attempt failed")
			trail = append(trail, Attempt{Number: a, Scale: policy.Scale, Profile: policy.Save.Name})
			continue
		}
		trail = append(trail, Attempt{
			Number:    a,
			Scale:     policy.Scale,
			PagesKept: pages,
			Profile:   policy.Save.Name,
			Size:      len(out),
		})

		if float64(len(out))/bytesPerKB <= targetKB {
			return &Result{Bytes: out, Outcome: OutcomeSuccess, Pages: pages, Trail: trail}, nil
		}
		if best == nil || len(out) < len(best) {
			best = out
			bestPages = pages
		}

		if a%CheckpointInterval == 0 {
			if _, err := parseDocument(out, defaultConfiguration()); err == nil {
				srcBytes = out
			} else {
				log.WithFields(logrus.Fields{"attempt": a, "error": err}).Debug("checkpoint reload failed, keeping previous source")
			}
		}
	}

	if best == nil {
		return nil, &ReduceError{Attempts: MaxAttempts, Err: lastErr}
	}
	if ratio < PlaceholderRatioThreshold {
		ph, err := placeholderDocument(originalPages)
		if err != nil {
			return nil, &ReduceError{Attempts: MaxAttempts, Err: err}
		}
		return &Result{Bytes: ph, Outcome: OutcomePlaceholder, Pages: 1, Trail: trail}, nil
	}
	return &Result{Bytes: best, Outcome: OutcomeDegraded, Pages: bestPages, Trail: trail}, nil
}

// runAttempt parses srcBytes fresh and applies the degradations scheduled for
// attempt a, returning the serialized candidate and its page count.
// Annotation and metadata stripping failures are recoverable and leave the
// working copy as it was; every other failure aborts the attempt.
func runAttempt(srcBytes []byte, a int, policy attemptPolicy, ratio float64, subsetKeep int) ([]byte, int, error) {
	ctx, err := parseDocument(srcBytes, policy.configuration())
	if err != nil {
		return nil, 0, err
	}

	if ratio < SubsetRatioThreshold && a > SubsetAfterAttempt {
		ctx, err = subsetPages(ctx, subsetKeep)
		if err != nil {
			return nil, 0, err
		}
	}

	if policy.Scale < 1 {
		if err := scalePageContent(ctx, policy.Scale); err != nil {
			return nil, 0, err
		}
	}

	if a > ShrinkAfterAttempt {
		factor := 1 - float64(a-ShrinkAfterAttempt)*ShrinkStep
		if factor < ShrinkFloor {
			factor = ShrinkFloor
		}
		if err := shrinkPageBoxes(ctx, factor); err != nil {
			return nil, 0, err
		}
	}

	if a > AnnotationsAfterAttempt {
		if err := stripAnnotations(ctx); err != nil {
			log.WithFields(logrus.Fields{"attempt": a, "error": err}).Debug("annotation strip failed")
		}
	}

	if a > MetadataAfterAttempt {
		if err := stripMetadata(ctx); err != nil {
			log.WithFields(logrus.Fields{"attempt": a, "error": err}).Debug("metadata strip failed")
		}
	}

	applySaveProfile(ctx.Configuration, policy.Save)
	out, err := serializeDocument(ctx)
	if err != nil {
		return nil, 0, err
	}
	return out, ctx.PageCount, nil
}
