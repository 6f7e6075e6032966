package types

import "context"

// RawSegment is one time-stamped span of recognized speech exactly as the
// transcription provider reported it. Nothing about it is trusted: order,
// bounds and text all get validated during normalization.
type RawSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptSegment is a normalized span. Index is a dense 1-based ordinal
// assigned after sorting by start time; Start/End are floored to whole
// seconds; Text is whitespace-trimmed. Immutable once produced.
type TranscriptSegment struct {
	Index int
	Start int64 // seconds from transcript start
	End   int64 // seconds, End >= Start >= 0
	Text  string
}

// SubtitleCue is one timed block of an SRT file, derived 1:1 from a
// non-empty TranscriptSegment.
type SubtitleCue struct {
	Index   int
	Start   int64
	End     int64
	Content string
}

// ExtractedEvent is one structured hit produced by pattern extraction,
// e.g. a spoken question number with the moment it was said.
type ExtractedEvent struct {
	SourceLabel string `json:"source"`
	EventValue  string `json:"value"`
	Timestamp   string `json:"timestamp"` // HH:MM:SS, hours unbounded
}

// ExtractStrategy selects how event timestamps are derived.
type ExtractStrategy string

const (
	// StrategySegment anchors each match to its segment's start time.
	StrategySegment ExtractStrategy = "segment"
	// StrategyFullText matches against the concatenated transcript and
	// estimates timestamps from character offsets.
	//
	// Deprecated: kept only for parity with old deployments; the estimate
	// assumes a fixed speaking rate and drifts on long lectures.
	StrategyFullText ExtractStrategy = "fulltext"
)

// Transcriber converts an audio file into raw speech segments. Implementations
// live under pkg/ and are selected by config; unintelligible audio yields an
// empty slice, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string, language string) ([]RawSegment, error)
}
