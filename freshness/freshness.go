// Resolves relative date expressions ("3 days ago", "hace 2 meses",
// "через неделю", "last tuesday") against an anchor time.
package freshness

import (
	"strconv"
	"strings"
	"time"

	"textdate/detect"
	"textdate/locales"
)

type Result struct {
	Time time.Time
	// Finest calendar field the expression pinned down. Finer fields carry
	// over from the anchor and should be reported as inferred.
	Precision locales.Unit
}

// An upper bound on a single quantity. Anything larger is treated as a
// stray number in prose, not a date expression.
const maxQuantity = 100000

// Parse resolves a relative expression in the locale's vocabulary against
// now. Every token of the input must be consumed by the grammar (a number, a
// unit word, a direction marker or connective vocabulary), so prose that
// merely mentions "21 minutes" does not resolve.
func Parse(str string, locale *locales.Locale, now time.Time) (Result, bool) {
	tokens := dropSkipWords(detect.Tokenize(str), locale)
	if len(tokens) == 0 {
		return Result{}, false
	}

	if result, ok := parseFixedPhrase(tokens, locale, now); ok {
		return result, true
	}
	if result, ok := parseStep(tokens, locale, now); ok {
		return result, true
	}
	return parseQuantities(tokens, locale, now)
}

func parseFixedPhrase(tokens []string, locale *locales.Locale, now time.Time) (Result, bool) {
	switch {
	case equalsAny(tokens, locale.Relative.Now):
		return Result{Time: now, Precision: locales.UnitSecond}, true
	case equalsAny(tokens, locale.Relative.Today):
		return Result{Time: now, Precision: locales.UnitDay}, true
	case equalsAny(tokens, locale.Relative.Yesterday):
		return Result{Time: now.AddDate(0, 0, -1), Precision: locales.UnitDay}, true
	case equalsAny(tokens, locale.Relative.Tomorrow):
		return Result{Time: now.AddDate(0, 0, 1), Precision: locales.UnitDay}, true
	}
	return Result{}, false
}

// parseStep handles "last/next/this <unit|weekday>". The marker may precede
// or follow the noun ("last week", "la semana pasada").
func parseStep(tokens []string, locale *locales.Locale, now time.Time) (Result, bool) {
	markers := []struct {
		entries []string
		sign    int
	}{
		{locale.Relative.Last, -1},
		{locale.Relative.Next, 1},
		{locale.Relative.This, 0},
	}

	for _, marker := range markers {
		if rest, ok := stripRun(tokens, marker.entries); ok {
			if result, matched := applyStep(rest, marker.sign, locale, now); matched {
				return result, true
			}
		}
	}
	return Result{}, false
}

func applyStep(rest []string, sign int, locale *locales.Locale, now time.Time) (Result, bool) {
	if len(rest) != 1 {
		return Result{}, false
	}

	if unit, ok := locale.UnitFor(rest[0]); ok {
		return Result{
			Time:      shiftUnit(now, unit, sign),
			Precision: stepPrecision(unit),
		}, true
	}

	if weekday, ok := locale.WeekdayNumber(rest[0]); ok {
		anchorWeekday := int(now.Weekday())
		var days int
		switch {
		case sign < 0:
			days = -((anchorWeekday - weekday + 6) % 7) - 1
		case sign > 0:
			days = (weekday-anchorWeekday+6)%7 + 1
		default:
			// "this tuesday" counts today when the weekday matches.
			days = (weekday - anchorWeekday + 7) % 7
		}
		return Result{Time: now.AddDate(0, 0, days), Precision: locales.UnitDay}, true
	}

	return Result{}, false
}

func shiftUnit(now time.Time, unit locales.Unit, sign int) time.Time {
	switch unit {
	case locales.UnitSecond:
		return now.Add(time.Duration(sign) * time.Second)
	case locales.UnitMinute:
		return now.Add(time.Duration(sign) * time.Minute)
	case locales.UnitHour:
		return now.Add(time.Duration(sign) * time.Hour)
	case locales.UnitDay:
		return now.AddDate(0, 0, sign)
	case locales.UnitWeek:
		return now.AddDate(0, 0, 7*sign)
	case locales.UnitMonth:
		return addMonths(now, sign)
	case locales.UnitYear:
		return addMonths(now, 12*sign)
	case locales.UnitDecade:
		return addMonths(now, 120*sign)
	}
	return now
}

func parseQuantities(tokens []string, locale *locales.Locale, now time.Time) (Result, bool) {
	rest, pastFound := removeRun(tokens, locale.Relative.Past)
	rest, futureFound := removeRun(rest, locale.Relative.Future)
	if pastFound == futureFound {
		return Result{}, false
	}
	sign := -1
	if futureFound {
		sign = 1
	}

	deltas := make(map[locales.Unit]int)
	i := 0
	for i < len(rest) {
		if n, ok := runLengthAt(rest, i, locale.Relative.And); ok {
			i += n
			continue
		}

		// A bare unit word counts as one ("месяц назад").
		quantity := 1
		if value, ok := parseQuantity(rest[i], locale); ok {
			quantity = value
			i++
			if i >= len(rest) {
				return Result{}, false
			}
		}

		unit, ok := locale.UnitFor(rest[i])
		if !ok {
			return Result{}, false
		}
		i++
		deltas[unit] += quantity
	}
	if len(deltas) == 0 {
		return Result{}, false
	}

	return Result{
		Time:      applyDeltas(now, deltas, sign),
		Precision: finestUnit(deltas),
	}, true
}

func parseQuantity(token string, locale *locales.Locale) (int, bool) {
	if value, err := strconv.Atoi(token); err == nil {
		if value < 0 || value > maxQuantity {
			return 0, false
		}
		return value, true
	}
	if value, ok := locale.Numerals[token]; ok {
		return value, true
	}
	return 0, false
}

func applyDeltas(now time.Time, deltas map[locales.Unit]int, sign int) time.Time {
	months := 12*(deltas[locales.UnitYear]+10*deltas[locales.UnitDecade]) + deltas[locales.UnitMonth]
	days := 7*deltas[locales.UnitWeek] + deltas[locales.UnitDay]
	duration := time.Duration(deltas[locales.UnitHour])*time.Hour +
		time.Duration(deltas[locales.UnitMinute])*time.Minute +
		time.Duration(deltas[locales.UnitSecond])*time.Second

	t := addMonths(now, sign*months)
	t = t.AddDate(0, 0, sign*days)
	return t.Add(time.Duration(sign) * duration)
}

// addMonths shifts by calendar months and clamps the day to the target
// month's length, so one month before March 31 is the last day of February.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := year*12 + int(month) - 1 + months
	newYear := total / 12
	newMonth := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		newYear--
		newMonth = time.Month(total%12 + 13)
	}
	if last := daysInMonth(newYear, newMonth); day > last {
		day = last
	}
	hour, minute, second := t.Clock()
	return time.Date(newYear, newMonth, day, hour, minute, second, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func stepPrecision(unit locales.Unit) locales.Unit {
	switch unit {
	case locales.UnitWeek:
		return locales.UnitDay
	case locales.UnitDecade:
		return locales.UnitYear
	}
	return unit
}

func finestUnit(deltas map[locales.Unit]int) locales.Unit {
	for _, unit := range locales.Units {
		if deltas[unit] != 0 {
			return stepPrecision(unit)
		}
	}
	return locales.UnitDay
}

func dropSkipWords(tokens []string, locale *locales.Locale) []string {
	var result []string
	for _, token := range tokens {
		// A skip word that doubles as grammar vocabulary stays: "a" inside
		// "il y a", "em" as the Portuguese future marker, "г" as the Russian
		// year abbreviation.
		if isSkipWord(token, locale) && !isVocabWord(token, locale) {
			continue
		}
		result = append(result, token)
	}
	return result
}

func isVocabWord(token string, locale *locales.Locale) bool {
	if _, ok := locale.UnitFor(token); ok {
		return true
	}
	if _, ok := locale.Numerals[token]; ok {
		return true
	}
	relative := locale.Relative
	groups := [][]string{
		relative.Now, relative.Today, relative.Yesterday, relative.Tomorrow,
		relative.Past, relative.Future, relative.Last, relative.Next,
		relative.This, relative.And,
	}
	for _, group := range groups {
		for _, entry := range group {
			for _, word := range strings.Fields(entry) {
				if word == token {
					return true
				}
			}
		}
	}
	return false
}

func isSkipWord(token string, locale *locales.Locale) bool {
	for _, word := range locale.SkipWords {
		if word == token {
			return true
		}
	}
	return false
}

func equalsAny(tokens []string, entries []string) bool {
	for _, entry := range entries {
		words := strings.Fields(entry)
		if len(words) != len(tokens) {
			continue
		}
		matched := true
		for i, word := range words {
			if tokens[i] != word {
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

// runLengthAt reports the longest entry run matching at position i.
func runLengthAt(tokens []string, i int, entries []string) (int, bool) {
	best := 0
	for _, entry := range entries {
		words := strings.Fields(entry)
		if len(words) == 0 || len(words) <= best || i+len(words) > len(tokens) {
			continue
		}
		matched := true
		for j, word := range words {
			if tokens[i+j] != word {
				matched = false
				break
			}
		}
		if matched {
			best = len(words)
		}
	}
	return best, best > 0
}

// removeRun deletes the first occurrence of any entry run, wherever it sits.
// Prefix markers ("hace 3 días", "il y a 3 jours") and suffix markers
// ("3 days ago", "3 дня назад") both resolve this way.
func removeRun(tokens []string, entries []string) ([]string, bool) {
	for i := range tokens {
		if n, ok := runLengthAt(tokens, i, entries); ok {
			result := make([]string, 0, len(tokens)-n)
			result = append(result, tokens[:i]...)
			result = append(result, tokens[i+n:]...)
			return result, true
		}
	}
	return tokens, false
}

// stripRun removes an entry run from the start or the end of the token list.
func stripRun(tokens []string, entries []string) ([]string, bool) {
	if n, ok := runLengthAt(tokens, 0, entries); ok {
		return tokens[n:], true
	}
	for i := 1; i < len(tokens); i++ {
		if n, ok := runLengthAt(tokens, i, entries); ok && i+n == len(tokens) {
			return tokens[:i], true
		}
	}
	return tokens, false
}
