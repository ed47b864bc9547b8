// Scores candidate strings against each locale's vocabulary to pick the
// locales worth attempting a parse with.
package detect

import (
	"sort"
	"strings"
	"unicode"

	"textdate/locales"
)

type Candidate struct {
	Locale *locales.Locale
	Score  int
}

// Detect scores text against every enabled locale and returns candidates in
// descending score order. Ties keep registration order, so the result is
// deterministic for a fixed input and enabled set. A hint that resolves to an
// enabled locale is placed first regardless of its score. Locales that
// match no token at all are omitted; an empty result means the text has no
// recognizable vocabulary and callers should still try locale-agnostic
// numeric patterns.
func Detect(text string, hint string, enabled []string) []Candidate {
	tokens := Tokenize(text)

	var pool []*locales.Locale
	if len(enabled) == 0 {
		pool = locales.All()
	} else {
		for _, code := range enabled {
			if locale, ok := locales.Match(code); ok {
				pool = append(pool, locale)
			}
		}
	}

	// A hint naming a locale outside the enabled pool is ignored, the pool is
	// a hard restriction.
	var hinted *locales.Locale
	if hint != "" {
		if locale, ok := locales.Match(hint); ok && poolContains(pool, locale) {
			hinted = locale
		}
	}

	var candidates []Candidate
	for _, locale := range pool {
		score := scoreLocale(locale, tokens)
		if score > 0 || locale == hinted {
			candidates = append(candidates, Candidate{Locale: locale, Score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if hinted != nil {
			if candidates[i].Locale == hinted {
				return candidates[j].Locale != hinted
			}
			if candidates[j].Locale == hinted {
				return false
			}
		}
		return candidates[i].Score > candidates[j].Score
	})

	if hinted != nil && !containsLocale(candidates, hinted) {
		candidates = append([]Candidate{{Locale: hinted, Score: 0}}, candidates...)
	}

	return candidates
}

func poolContains(pool []*locales.Locale, locale *locales.Locale) bool {
	for _, candidate := range pool {
		if candidate == locale {
			return true
		}
	}
	return false
}

func containsLocale(candidates []Candidate, locale *locales.Locale) bool {
	for _, candidate := range candidates {
		if candidate.Locale == locale {
			return true
		}
	}
	return false
}

func scoreLocale(locale *locales.Locale, tokens []string) int {
	score := 0
	score += scoreEntries(flatten(locale.Months[:]), tokens)
	score += scoreEntries(flatten(locale.Weekdays[:]), tokens)
	score += scoreEntries(locale.Relative.Now, tokens)
	score += scoreEntries(locale.Relative.Today, tokens)
	score += scoreEntries(locale.Relative.Yesterday, tokens)
	score += scoreEntries(locale.Relative.Tomorrow, tokens)
	score += scoreEntries(locale.Relative.Past, tokens)
	score += scoreEntries(locale.Relative.Future, tokens)
	score += scoreEntries(locale.Relative.Last, tokens)
	score += scoreEntries(locale.Relative.Next, tokens)
	score += scoreEntries(locale.Relative.This, tokens)
	for _, unit := range locales.Units {
		score += scoreEntries(locale.Units[unit], tokens)
	}
	return score
}

func flatten(groups [][]string) []string {
	var result []string
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// Longer, more specific entries score higher so that short abbreviations
// ("mar", "in") cannot outweigh a full month name from another locale.
func scoreEntries(entries []string, tokens []string) int {
	score := 0
	for _, entry := range entries {
		if hasTokenRun(tokens, strings.Fields(entry)) {
			score += len([]rune(entry))
		}
	}
	return score
}

func hasTokenRun(tokens []string, run []string) bool {
	if len(run) == 0 {
		return false
	}
	for i := 0; i+len(run) <= len(tokens); i++ {
		matched := true
		for j, word := range run {
			if tokens[i+j] != word {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// Tokenize lowercases text and splits it into letter/digit runs. Apostrophes
// inside words are kept so entries like "aujourd'hui" stay one token.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
	}
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
	for i, token := range tokens {
		tokens[i] = strings.Trim(token, "'")
	}
	return tokens
}
