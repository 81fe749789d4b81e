package pdf

const (
	// MaxAttempts bounds the reduction loop.
	MaxAttempts = 15

	// SubsetRatioThreshold gates page dropping: only targets below this
	// fraction of the current size are allowed to lose pages.
	SubsetRatioThreshold = 0.3

	// SubsetKeepFraction is the fraction of the original page count kept when
	// the subset rule fires.
	SubsetKeepFraction = 0.8

	// SubsetAfterAttempt is the last attempt that keeps all pages; page
	// dropping starts on the attempt after it.
	SubsetAfterAttempt = 5

	// ShrinkAfterAttempt is the last attempt with untouched page dimensions.
	ShrinkAfterAttempt = 7

	// ShrinkStep is the per-attempt dimension reduction past ShrinkAfterAttempt.
	ShrinkStep = 0.05

	// ShrinkFloor is the smallest fraction of the source page dimensions an
	// attempt may shrink to.
	ShrinkFloor = 0.7

	// MetadataAfterAttempt is the last attempt that keeps document metadata.
	MetadataAfterAttempt = 8

	// AnnotationsAfterAttempt is the last attempt that keeps page annotations.
	AnnotationsAfterAttempt = 10

	// CheckpointInterval is the attempt cadence at which the just-produced
	// bytes replace the source document for subsequent attempts.
	CheckpointInterval = 3

	// PlaceholderRatioThreshold marks targets considered unreachable: when the
	// target is below this fraction of the input size and all attempts are
	// exhausted, the fixed placeholder is returned instead of the best
	// candidate.
	PlaceholderRatioThreshold = 0.1
)

// bytesPerKB converts byte counts to the kilobyte scale used by targets.
const bytesPerKB = 1024.0
