package transcript

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"lecture-scribe/internal/types"
	apperrors "lecture-scribe/pkg/errors"
)

// fullTextCharsPerSecond is the assumed speaking rate used by the legacy
// whole-text strategy to turn a character offset into a second offset.
const fullTextCharsPerSecond = 100

// CompilePattern compiles a user or preset pattern. Matching is always
// case-insensitive; that is policy, not an option. A pattern that fails to
// compile is rejected here, before any segment is scanned.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, apperrors.WrapWithDetail(apperrors.CodePatternInvalid,
			"Pattern failed to compile", expr, err)
	}
	return re, nil
}

// ExtractEvents scans each segment's text independently and emits one event
// per matching segment, stamped with that segment's start time. Only the
// first match within a segment counts.
//
// The event value comes from capture group 2 when the pattern defines one and
// it captured text, otherwise group 1; a match with no captured value is
// treated as a non-match rather than an error.
func ExtractEvents(segments []types.TranscriptSegment, re *regexp.Regexp, sourceLabel string) []types.ExtractedEvent {
	events := make([]types.ExtractedEvent, 0)
	for _, seg := range segments {
		m := re.FindStringSubmatch(seg.Text)
		if m == nil {
			continue
		}
		value := resolveCapture(m)
		if value == "" {
			continue
		}
		events = append(events, types.ExtractedEvent{
			SourceLabel: sourceLabel,
			EventValue:  value,
			Timestamp:   formatSeconds(seg.Start),
		})
	}
	return events
}

// ExtractEventsFullText matches against the whole concatenated transcript and
// estimates each timestamp from the match's character offset at an assumed
// speaking rate.
//
// Deprecated: the estimate drifts on long recordings; use ExtractEvents
// unless parity with old output is required.
func ExtractEventsFullText(segments []types.TranscriptSegment, re *regexp.Regexp, sourceLabel string) []types.ExtractedEvent {
	texts := lo.FilterMap(segments, func(seg types.TranscriptSegment, _ int) (string, bool) {
		return seg.Text, seg.Text != ""
	})
	full := strings.Join(texts, " ")

	events := make([]types.ExtractedEvent, 0)
	for _, idx := range re.FindAllStringSubmatchIndex(full, -1) {
		value := resolveCaptureIndex(full, idx)
		if value == "" {
			continue
		}
		offsetSeconds := float64(idx[0]) / fullTextCharsPerSecond
		events = append(events, types.ExtractedEvent{
			SourceLabel: sourceLabel,
			EventValue:  value,
			Timestamp:   FormatTimestamp(offsetSeconds),
		})
	}
	return events
}

// resolveCapture applies the group-2-then-group-1 preference to a submatch
// slice from FindStringSubmatch.
func resolveCapture(m []string) string {
	var value string
	if len(m) > 2 {
		value = m[2]
	}
	if value == "" && len(m) > 1 {
		value = m[1]
	}
	return value
}

// resolveCaptureIndex is resolveCapture for index pairs from
// FindAllStringSubmatchIndex. Pair 2i..2i+1 covers group i, -1 when the
// group did not participate.
func resolveCaptureIndex(text string, idx []int) string {
	var value string
	if len(idx) >= 6 && idx[4] >= 0 {
		value = text[idx[4]:idx[5]]
	}
	if value == "" && len(idx) >= 4 && idx[2] >= 0 {
		value = text[idx[2]:idx[3]]
	}
	return value
}

// EventsCSV renders events as comma-separated text with a header row and no
// index column, the shape consumers import into spreadsheets.
func EventsCSV(events []types.ExtractedEvent) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"source", "question", "timestamp"})
	for _, ev := range events {
		_ = w.Write([]string{ev.SourceLabel, ev.EventValue, ev.Timestamp})
	}
	w.Flush()
	return b.String()
}
