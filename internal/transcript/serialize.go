package transcript

import (
	"strconv"
	"strings"

	"lecture-scribe/internal/types"
)

// Cues converts normalized segments into subtitle cues. Segments with empty
// text are dropped (every cue must have visible content) and the survivors
// are renumbered densely from 1 so filtering never leaves index gaps.
func Cues(segments []types.TranscriptSegment) []types.SubtitleCue {
	cues := make([]types.SubtitleCue, 0, len(segments))
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		cues = append(cues, types.SubtitleCue{
			Index:   len(cues) + 1,
			Start:   seg.Start,
			End:     seg.End,
			Content: seg.Text,
		})
	}
	return cues
}

// ComposeSRT serializes segments into SRT subtitle text. Output is
// deterministic: identical input yields byte-identical output. Cue content is
// passed through verbatim; an empty segment list yields an empty string.
func ComposeSRT(segments []types.TranscriptSegment) string {
	var b strings.Builder
	for _, cue := range Cues(segments) {
		b.WriteString(formatCue(cue))
	}
	return b.String()
}

func formatCue(cue types.SubtitleCue) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(cue.Index))
	b.WriteByte('\n')
	b.WriteString(formatSRTTime(cue.Start))
	b.WriteString(" --> ")
	b.WriteString(formatSRTTime(cue.End))
	b.WriteByte('\n')
	b.WriteString(cue.Content)
	b.WriteString("\n\n")
	return b.String()
}
