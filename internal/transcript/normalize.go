// Package transcript holds the pure transformation core: raw ASR segments in,
// normalized segments, SRT text and extracted events out. Nothing here does
// I/O or touches shared state, so every function is safe to call concurrently.
package transcript

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"lecture-scribe/internal/types"
	apperrors "lecture-scribe/pkg/errors"
)

// SkippedSegment reports one raw record dropped during normalization.
// Position is the 0-based index of the record in the raw input.
type SkippedSegment struct {
	Position int
	Err      *apperrors.AppError
}

// Normalize validates and orders raw ASR output. Records are sorted by start
// time ascending (stable, so provider order breaks ties), start/end are
// floored to whole seconds, text is trimmed and a dense 1-based index is
// assigned. A malformed record is skipped and reported; it never voids the
// rest of the transcript.
func Normalize(raw []types.RawSegment) ([]types.TranscriptSegment, []SkippedSegment) {
	if len(raw) == 0 {
		return []types.TranscriptSegment{}, nil
	}

	type positioned struct {
		pos int
		seg types.RawSegment
	}

	valid := make([]positioned, 0, len(raw))
	var skipped []SkippedSegment
	for i, seg := range raw {
		if reason := validateRaw(seg); reason != "" {
			skipped = append(skipped, SkippedSegment{
				Position: i,
				Err: apperrors.WrapWithDetail(apperrors.CodeMalformedSegment,
					"Malformed segment", fmt.Sprintf("position %d", i),
					fmt.Errorf("record %d: %s", i, reason)),
			})
			continue
		}
		valid = append(valid, positioned{pos: i, seg: seg})
	}

	// Stable sort keeps input order for segments with equal start times.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].seg.Start < valid[j].seg.Start
	})

	out := make([]types.TranscriptSegment, 0, len(valid))
	for i, p := range valid {
		out = append(out, types.TranscriptSegment{
			Index: i + 1,
			Start: int64(math.Floor(p.seg.Start)),
			End:   int64(math.Floor(p.seg.End)),
			Text:  strings.TrimSpace(p.seg.Text),
		})
	}
	return out, skipped
}

func validateRaw(seg types.RawSegment) string {
	if math.IsNaN(seg.Start) || math.IsInf(seg.Start, 0) ||
		math.IsNaN(seg.End) || math.IsInf(seg.End, 0) {
		return "non-finite time bound"
	}
	if seg.Start < 0 {
		return "negative start time"
	}
	if seg.End < seg.Start {
		return "end before start"
	}
	return ""
}
