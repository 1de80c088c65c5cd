package matcher

import (
	"VaniAssistant/pkg/action"
	"strings"
)

var (
	mediaWords = map[string]bool{
		"play": true, "song": true, "music": true, "video": true,
		"gaana": true, "bajao": true, "chalao": true,
	}
	questionWords = map[string]bool{
		"what": true, "who": true, "how": true, "why": true, "when": true,
		"where": true, "which": true, "kya": true, "kaun": true, "kaise": true,
		"kyun": true, "kab": true, "kahan": true,
	}
)

// Heuristic is the last keyword-based guess for free text that no other tier
// claimed. Only whole words count.
func Heuristic(utterance string) (Match, bool) {
	original := fold(utterance)
	words := strings.Fields(original)

	var rest []string
	media := false
	for _, w := range words {
		if mediaWords[strings.ToLower(trimPunct(w))] {
			media = true
			continue
		}
		rest = append(rest, w)
	}

	if media {
		return Match{
			Action:   action.PlayMedia,
			Argument: strings.Join(rest, " "),
			Context:  original,
			Tier:     TierHeuristic,
		}, true
	}

	for _, w := range words {
		if questionWords[strings.ToLower(trimPunct(w))] {
			return Match{
				Action:   action.SearchWeb,
				Argument: original,
				Context:  original,
				Tier:     TierHeuristic,
			}, true
		}
	}

	return Match{Tier: TierNone, Context: original}, false
}

func trimPunct(w string) string {
	return strings.Trim(w, ".,!?;:'\"")
}
