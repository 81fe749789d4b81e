package pdf

import "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

// saveProfile names the serializer knobs applied when an attempt's candidate
// is written.
type saveProfile struct {
	Name          string
	ObjectStreams bool // group objects into compressed object streams
	XRefStream    bool // write the cross reference table as a stream
	DedupContent  bool // collapse duplicate content streams during optimization
}

var (
	profileCompact = saveProfile{Name: "compact", ObjectStreams: true, XRefStream: true}
	profileDeduped = saveProfile{Name: "deduped", ObjectStreams: true, XRefStream: true, DedupContent: true}
	profileFlat    = saveProfile{Name: "flat", XRefStream: true, DedupContent: true}
	profileMinimal = saveProfile{Name: "minimal", DedupContent: true}
)

// attemptPolicy is one row of the escalation table. A row applies to every
// attempt number up to and including MaxAttempt that no earlier row covered.
type attemptPolicy struct {
	MaxAttempt int
	Scale      float64
	Save       saveProfile
}

// policyTable drives the reduction loop. Scale factors for attempts 10 and
// beyond follow max(0.5, 0.9-0.03*attempt), precomputed per row.
var policyTable = []attemptPolicy{
	{MaxAttempt: 1, Scale: 1.0, Save: profileCompact},
	{MaxAttempt: 3, Scale: 0.95, Save: profileCompact},
	{MaxAttempt: 6, Scale: 0.85, Save: profileDeduped},
	{MaxAttempt: 9, Scale: 0.75, Save: profileFlat},
	{MaxAttempt: 10, Scale: 0.60, Save: profileMinimal},
	{MaxAttempt: 11, Scale: 0.57, Save: profileMinimal},
	{MaxAttempt: 12, Scale: 0.54, Save: profileMinimal},
	{MaxAttempt: 13, Scale: 0.51, Save: profileMinimal},
	{MaxAttempt: 14, Scale: 0.50, Save: profileMinimal},
	{MaxAttempt: 15, Scale: 0.50, Save: profileMinimal},
}

// policyFor returns the policy row for a 1-based attempt number. Attempts past
// the last row reuse it.
func policyFor(attempt int) attemptPolicy {
	for _, p := range policyTable {
		if attempt <= p.MaxAttempt {
			return p
		}
	}
	return policyTable[len(policyTable)-1]
}

// configuration builds the pdfcpu configuration for one attempt. Duplicate
// content elimination acts while the working copy is parsed and optimized; the
// stream grouping knobs act when it is written.
func (p attemptPolicy) configuration() *model.Configuration {
	conf := defaultConfiguration()
	applySaveProfile(conf, p.Save)
	return conf
}

// applySaveProfile sets the write knobs on a configuration. It is reapplied
// before serialization because page extraction hands back a context carrying
// its own configuration.
func applySaveProfile(conf *model.Configuration, p saveProfile) {
	conf.WriteObjectStream = p.ObjectStreams
	conf.WriteXRefStream = p.XRefStream
	conf.OptimizeDuplicateContentStreams = p.DedupContent
}
