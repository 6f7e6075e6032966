package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-scribe/internal/types"
	apperrors "lecture-scribe/pkg/errors"
)

func TestCompilePatternInvalid(t *testing.T) {
	re, err := CompilePattern(`question (\d+`)
	assert.Nil(t, re)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePatternInvalid))
}

func TestFormatTimestamp(t *testing.T) {
	testCases := []struct {
		seconds float64
		want    string
	}{
		{seconds: 0, want: "00:00:00"},
		{seconds: 5, want: "00:00:05"},
		{seconds: 3725.8, want: "01:02:05"}, // floor truncation, not rounding
		{seconds: 59.999, want: "00:00:59"},
		{seconds: 90000, want: "25:00:00"}, // hours are not wrapped at 24
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatTimestamp(tc.seconds))
	}
}

func TestExtractEventsCaptureGroupFallback(t *testing.T) {
	segments := []types.TranscriptSegment{
		{Index: 1, Start: 5, End: 9, Text: "question 12"},
	}

	// Two groups: group 2 wins.
	re, err := CompilePattern(`(question)\s*(\d+)`)
	require.NoError(t, err)
	events := ExtractEvents(segments, re, "lecture01.mp4")
	require.Len(t, events, 1)
	assert.Equal(t, "12", events[0].EventValue)
	assert.Equal(t, "00:00:05", events[0].Timestamp)
	assert.Equal(t, "lecture01.mp4", events[0].SourceLabel)

	// One group: falls back to group 1.
	segments[0].Text = "q5"
	re, err = CompilePattern(`(q\d+)`)
	require.NoError(t, err)
	events = ExtractEvents(segments, re, "lecture01.mp4")
	require.Len(t, events, 1)
	assert.Equal(t, "q5", events[0].EventValue)

	// Zero groups: the match produces no event, no error.
	re, err = CompilePattern(`q\d+`)
	require.NoError(t, err)
	events = ExtractEvents(segments, re, "lecture01.mp4")
	assert.Empty(t, events)
}

func TestExtractEventsCaseInsensitive(t *testing.T) {
	re, err := CompilePattern(`question (\d+)`)
	require.NoError(t, err)

	events := ExtractEvents([]types.TranscriptSegment{
		{Index: 1, Start: 0, End: 3, Text: "QUESTION 7"},
	}, re, "v")
	require.Len(t, events, 1)
	assert.Equal(t, "7", events[0].EventValue)
}

func TestExtractEventsFirstMatchOnlyPerSegment(t *testing.T) {
	re, err := CompilePattern(`question (\d+)`)
	require.NoError(t, err)

	events := ExtractEvents([]types.TranscriptSegment{
		{Index: 1, Start: 0, End: 10, Text: "question 1 and question 2"},
	}, re, "v")
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].EventValue)
}

func TestExtractEventsNoMatchNoEvent(t *testing.T) {
	re, err := CompilePattern(`question (\d+)`)
	require.NoError(t, err)

	events := ExtractEvents([]types.TranscriptSegment{
		{Index: 1, Start: 0, End: 2, Text: "hello world"},
	}, re, "v")
	assert.Empty(t, events)

	events = ExtractEvents(nil, re, "v")
	assert.Empty(t, events, "zero segments yields zero events, not an error")
}

func TestExtractEventsFullTextOffsetEstimate(t *testing.T) {
	re, err := CompilePattern(`question (\d+)`)
	require.NoError(t, err)

	// 250 chars of padding puts the match at offset 250; at the assumed
	// 100 chars/sec rate that's 2 seconds in.
	padding := ""
	for len(padding) < 250 {
		padding += "x"
	}
	segments := []types.TranscriptSegment{
		{Index: 1, Start: 0, End: 100, Text: padding},
		{Index: 2, Start: 100, End: 110, Text: "question 4"},
	}

	events := ExtractEventsFullText(segments, re, "v")
	require.Len(t, events, 1)
	assert.Equal(t, "4", events[0].EventValue)
	assert.Equal(t, "00:00:02", events[0].Timestamp)
}

func TestExtractEventsFullTextAllMatches(t *testing.T) {
	re, err := CompilePattern(`question (\d+)`)
	require.NoError(t, err)

	events := ExtractEventsFullText([]types.TranscriptSegment{
		{Index: 1, Start: 0, End: 10, Text: "question 1 then question 2"},
	}, re, "v")
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].EventValue)
	assert.Equal(t, "2", events[1].EventValue)
}

func TestEventsCSV(t *testing.T) {
	csv := EventsCSV([]types.ExtractedEvent{
		{SourceLabel: "lecture01.mp4", EventValue: "3", Timestamp: "00:00:05"},
		{SourceLabel: "lecture02.mp4", EventValue: "4", Timestamp: "00:01:10"},
	})

	want := "source,question,timestamp\n" +
		"lecture01.mp4,3,00:00:05\n" +
		"lecture02.mp4,4,00:01:10\n"
	assert.Equal(t, want, csv)
}

func TestEventsCSVEmptyStillHasHeader(t *testing.T) {
	assert.Equal(t, "source,question,timestamp\n", EventsCSV(nil))
}

func TestPresetCatalog(t *testing.T) {
	presets := Presets()
	require.NotEmpty(t, presets)

	pattern, err := PresetPattern("question-number")
	require.NoError(t, err)
	re, err := CompilePattern(pattern)
	require.NoError(t, err)

	events := ExtractEvents([]types.TranscriptSegment{
		{Index: 1, Start: 5, End: 9, Text: "question number 3"},
	}, re, "v")
	require.Len(t, events, 1)
	assert.Equal(t, "3", events[0].EventValue)

	_, err = PresetPattern("no-such-preset")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePresetNotFound))
}

// End-to-end scenario from a raw transcript through both outputs.
func TestPipelineEndToEnd(t *testing.T) {
	raw := []types.RawSegment{
		{Start: 0, End: 5, Text: "Hello everyone"},
		{Start: 5, End: 9, Text: "question number 3"},
		{Start: 9, End: 9, Text: ""},
	}

	segments, skipped := Normalize(raw)
	require.Empty(t, skipped)
	require.Len(t, segments, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{segments[0].Index, segments[1].Index, segments[2].Index})

	srt := ComposeSRT(segments)
	cues := Cues(segments)
	require.Len(t, cues, 2)
	assert.Contains(t, srt, "2\n00:00:05,000 --> 00:00:09,000\nquestion number 3\n")

	pattern, err := PresetPattern("question-number")
	require.NoError(t, err)
	re, err := CompilePattern(pattern)
	require.NoError(t, err)

	events := ExtractEvents(segments, re, "lecture01.mp4")
	require.Len(t, events, 1)
	assert.Equal(t, "3", events[0].EventValue)
	assert.Equal(t, "00:00:05", events[0].Timestamp)
}
