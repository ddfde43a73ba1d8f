package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words that should not end up in a player name or a save label. The engine
// narration is fixed text, so only player-provided input needs filtering.
var blockedWords = []string{
	"fuck", "shit", "damn", "ass", "bitch", "bastard",
	"cock", "dick", "pussy", "whore", "slut", "asshole",
	"motherfucker", "goddamn", "bullshit", "dickhead", "prick",
}

var blockedReplacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"cock":         "[censored]",
	"dick":         "jerk",
	"pussy":        "[censored]",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"asshole":      "jerk",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"bullshit":     "baloney",
	"dickhead":     "jerk",
	"prick":        "jerk",
}

// NameFilter cleans player-provided names before they enter the story.
type NameFilter struct {
	regexes map[string]*regexp.Regexp
}

// NewNameFilter pre-compiles the word-boundary patterns.
func NewNameFilter() *NameFilter {
	nf := &NameFilter{
		regexes: make(map[string]*regexp.Regexp),
	}
	for _, word := range blockedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		nf.regexes[word] = regexp.MustCompile(pattern)
	}
	return nf
}

// Clean replaces blocked words in a name with tame alternatives, preserving
// the original casing pattern.
func (nf *NameFilter) Clean(name string) string {
	result := name
	for _, word := range blockedWords {
		regex := nf.regexes[word]
		replacement := blockedReplacements[word]
		result = regex.ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// ContainsBlocked reports whether the name contains any blocked word.
func (nf *NameFilter) ContainsBlocked(name string) bool {
	for _, word := range blockedWords {
		if nf.regexes[word].MatchString(name) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the replacement.
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: mirror the original character by character.
	result := make([]rune, 0, len(replacement))
	originalRunes := []rune(original)
	for i, r := range []rune(replacement) {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}
