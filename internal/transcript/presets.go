package transcript

import (
	"sort"

	apperrors "lecture-scribe/pkg/errors"
)

// Preset is a named, pre-defined pattern offered as a convenience so users
// don't have to write regular expressions for the common cases.
type Preset struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Label   string `json:"label"`
}

// Preset catalog. Lecture audio announces questions as "question number 12",
// "question 12", "q12" or, in Hindi-medium batches, "prashn 12".
var presetCatalog = map[string]Preset{
	"question-number": {
		Name:    "question-number",
		Pattern: `question\s*(?:number|no\.?)?\s*(\d+)`,
		Label:   "Question number (English)",
	},
	"question-short": {
		Name:    "question-short",
		Pattern: `\bq\s*(\d+)\b`,
		Label:   "Short form (q12)",
	},
	"prashn-number": {
		Name:    "prashn-number",
		Pattern: `prashn\s*(?:number|sankhya)?\s*(\d+)`,
		Label:   "Prashn number (Hindi, romanized)",
	},
}

// Presets returns the catalog sorted by name.
func Presets() []Preset {
	names := make([]string, 0, len(presetCatalog))
	for name := range presetCatalog {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Preset, 0, len(names))
	for _, name := range names {
		out = append(out, presetCatalog[name])
	}
	return out
}

// PresetPattern resolves a preset name to its pattern string.
func PresetPattern(name string) (string, error) {
	preset, ok := presetCatalog[name]
	if !ok {
		return "", apperrors.WrapWithDetail(apperrors.CodePresetNotFound,
			"Preset pattern not found", name, nil)
	}
	return preset.Pattern, nil
}
