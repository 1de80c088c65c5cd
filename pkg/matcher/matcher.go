// Package matcher maps a transcribed utterance onto an action using custom
// commands, the built-in pattern table and structural prefix rules.
package matcher

import (
	"VaniAssistant/pkg/action"
	"regexp"
	"strings"
)

type Tier string

const (
	TierCustom    Tier = "custom"
	TierPattern   Tier = "pattern"
	TierPrefix    Tier = "prefix"
	TierAI        Tier = "ai"
	TierHeuristic Tier = "heuristic"
	TierNone      Tier = "none"
)

// CustomCommand is a user-defined trigger. Trigger is matched against the
// normalized utterance.
type CustomCommand struct {
	Trigger string
	Action  string
}

// Match is the outcome of one matching pass. Context always carries the
// original utterance.
type Match struct {
	Action   action.ID
	Argument string
	Context  string
	Tier     Tier
	Phrase   string
}

func (m Match) Invocation() action.Invocation {
	return action.Invocation{Action: m.Action, Argument: m.Argument, Context: m.Context}
}

// Collision reports a phrase that can never win because an earlier phrase is
// contained in it.
type Collision struct {
	Phrase     string    `json:"phrase"`
	Action     action.ID `json:"action"`
	ShadowedBy string    `json:"shadowed_by"`
	ByAction   action.ID `json:"by_action"`
}

type prefixRule struct {
	prefix string
	action action.ID
}

var defaultPrefixes = []prefixRule{
	{"open ", action.OpenWebsite},
	{"go to ", action.OpenWebsite},
	{"visit ", action.OpenWebsite},
	{"launch ", action.OpenWebsite},
	{"click ", action.ClickElement},
	{"press ", action.ClickElement},
	{"tap ", action.ClickElement},
}

type phrase struct {
	text   string
	action action.ID
	strip  *regexp.Regexp
}

// Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	table    []Pattern
	phrases  []phrase
	prefixes []prefixRule
}

func New(table []Pattern) *Matcher {
	m := &Matcher{table: table}

	inTable := map[string]bool{}
	for _, p := range table {
		for _, text := range p.Phrases {
			m.phrases = append(m.phrases, phrase{text: text, action: p.Action, strip: phrasePattern(text)})
			inTable[text] = true
		}
	}

	for _, rule := range defaultPrefixes {
		if inTable[strings.TrimSpace(rule.prefix)] {
			continue
		}
		m.prefixes = append(m.prefixes, rule)
	}

	return m
}

// Table returns the pattern table in match order.
func (m *Matcher) Table() []Pattern {
	out := make([]Pattern, len(m.table))
	for i, p := range m.table {
		out[i] = Pattern{Action: p.Action, Phrases: append([]string(nil), p.Phrases...)}
	}
	return out
}

// Match runs the custom, pattern and prefix tiers in that order and stops at
// the first hit.
func (m *Matcher) Match(utterance string, custom []CustomCommand) (Match, bool) {
	original := fold(utterance)
	normalized := strings.ToLower(original)
	if normalized == "" {
		return Match{Tier: TierNone, Context: original}, false
	}

	for _, c := range custom {
		trigger := Normalize(c.Trigger)
		if trigger == "" || !strings.Contains(normalized, trigger) {
			continue
		}
		return Match{
			Action:   action.RunCustom,
			Argument: c.Action,
			Context:  original,
			Tier:     TierCustom,
			Phrase:   trigger,
		}, true
	}

	for _, p := range m.phrases {
		if !strings.Contains(normalized, p.text) {
			continue
		}
		return Match{
			Action:   p.action,
			Argument: p.cut(original),
			Context:  original,
			Tier:     TierPattern,
			Phrase:   p.text,
		}, true
	}

	for _, rule := range m.prefixes {
		if !strings.HasPrefix(normalized, rule.prefix) {
			continue
		}
		arg := strings.TrimSpace(original[len(rule.prefix):])
		if arg == "" {
			continue
		}
		return Match{
			Action:   rule.action,
			Argument: arg,
			Context:  original,
			Tier:     TierPrefix,
			Phrase:   strings.TrimSpace(rule.prefix),
		}, true
	}

	return Match{Tier: TierNone, Context: original}, false
}

// Collisions lists every table phrase shadowed by an earlier phrase, in
// table order.
func (m *Matcher) Collisions() []Collision {
	var out []Collision
	for i, later := range m.phrases {
		for _, earlier := range m.phrases[:i] {
			if strings.Contains(later.text, earlier.text) {
				out = append(out, Collision{
					Phrase:     later.text,
					Action:     later.action,
					ShadowedBy: earlier.text,
					ByAction:   earlier.action,
				})
				break
			}
		}
	}
	return out
}

// cut removes the first occurrence of the phrase from s.
func (p phrase) cut(s string) string {
	loc := p.strip.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(s[:loc[0]]+" "+s[loc[1]:]), " ")
}

// phrasePattern matches the first occurrence of a phrase regardless of case
// and of the amount of whitespace between its words.
func phrasePattern(text string) *regexp.Regexp {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(words, `\s+`))
}
