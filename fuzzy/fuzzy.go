// Grammar-driven extraction of date/time fields from free-form text.
//
// Parse runs an ordered list of pattern templates over the input. Each
// template is a pure match-and-extract step; a matched span is consumed
// (replaced by a space) so later templates only see the remainder. The
// result is a set of raw fields with per-field presence flags, calendar
// validation is the caller's business.
package fuzzy

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"textdate/locales"
	"textdate/tzabbr"
)

type Parts struct {
	Year          int
	HasYear       bool
	Month         int
	HasMonth      bool
	Day           int
	HasDay        bool
	Weekday       int // 0 is Sunday
	HasWeekday    bool
	Hour          int
	HasHour       bool
	Minute        int
	HasMinute     bool
	Second        int
	HasSecond     bool
	Nanosecond    int
	HasNanosecond bool
	Zone          string
	HasZone       bool
	OffsetSeconds int
	HasOffset     bool

	// Numeric field order was guessed from the locale preference and another
	// reading was possible.
	Ambiguous bool
	// Input was too long to be a date expression.
	TooLong bool

	// Digit count of the year as written, "02" expands to 2002 but "0002"
	// stays year 2.
	yearDigits int
}

func (p *Parts) HasDate() bool {
	return p.HasYear || p.HasMonth || p.HasDay
}

func (p *Parts) Empty() bool {
	return !p.HasDate() && !p.HasHour && !p.HasWeekday
}

const maxInputLength = 128

// Parse extracts date/time fields from str using the locale's vocabulary.
// expandTwoDigitYear maps two-digit years onto 1969-2068.
func Parse(str string, locale *locales.Locale, expandTwoDigitYear bool) Parts {
	if len(str) > maxInputLength {
		return Parts{TooLong: true}
	}

	var parts Parts
	set := patternSets[locale.Code]
	if set == nil {
		return parts
	}

	str, _ = invisibleRegex.Replace(str, " ", -1, -1)
	str = strings.TrimSpace(str)

	if parseTimestamp(str, &parts) {
		return parts
	}

	parseWeekday(&str, set, locale, &parts)
	parseTime(&str, &parts)

	templates := []func(*string, *patternSet, *locales.Locale, *Parts) bool{
		parseISO,
		parseTextual,
		parseNumeric,
	}
	matched := false
	for _, template := range templates {
		if template(&str, set, locale, &parts) {
			matched = true
			break
		}
	}
	if !matched {
		// Scraps: a lone month name, an ordinal day, a quoted or bare year.
		parseBareMonth(&str, set, locale, &parts)
		parseOrdinalDay(&str, set, &parts)
		parseYear(&str, &parts)
	}
	parseFragment(&str, &parts)

	if expandTwoDigitYear && parts.HasYear && parts.yearDigits <= 2 &&
		parts.Year >= 0 && parts.Year <= 99 {
		if parts.Year >= 69 {
			parts.Year += 1900
		} else {
			parts.Year += 2000
		}
	}

	if parts.HasZone && !parts.HasOffset {
		parts.OffsetSeconds, parts.HasOffset = tzabbr.ParseOffset(parts.Zone)
	}

	return parts
}

func consume(str *string, match *regexp2.Match) {
	*str = strings.Replace(*str, match.String(), " ", 1)
}

func parseTimestamp(str string, parts *Parts) bool {
	match, _ := timestampRegex.FindStringMatch(strings.TrimSpace(str))
	if match == nil {
		return false
	}
	groups := match.Groups()

	seconds, err := strconv.ParseInt(groups[1].String(), 10, 64)
	if err != nil {
		return false
	}
	nanos := 0
	if groups[2].Length > 0 {
		millis, _ := strconv.Atoi(groups[2].String())
		nanos += millis * 1_000_000
	}
	if groups[3].Length > 0 {
		micros, _ := strconv.Atoi(groups[3].String())
		nanos += micros * 1_000
	}

	t := time.Unix(seconds, int64(nanos)).UTC()
	parts.Year, parts.HasYear = t.Year(), true
	parts.yearDigits = 4
	parts.Month, parts.HasMonth = int(t.Month()), true
	parts.Day, parts.HasDay = t.Day(), true
	parts.Hour, parts.HasHour = t.Hour(), true
	parts.Minute, parts.HasMinute = t.Minute(), true
	parts.Second, parts.HasSecond = t.Second(), true
	parts.Nanosecond, parts.HasNanosecond = t.Nanosecond(), true
	parts.Zone, parts.HasZone = "UTC", true
	parts.OffsetSeconds, parts.HasOffset = 0, true
	return true
}

func parseWeekday(str *string, set *patternSet, locale *locales.Locale, parts *Parts) {
	match, err := set.weekday.FindStringMatch(*str)
	if err != nil || match == nil {
		return
	}
	weekday, ok := locale.WeekdayNumber(match.Groups()[1].String())
	if !ok {
		return
	}
	consume(str, match)
	parts.Weekday, parts.HasWeekday = weekday, true
}

func parseTime(str *string, parts *Parts) {
	match, err := timeRegex.FindStringMatch(*str)
	if err != nil {
		return
	}
	if match == nil {
		parseBareAmPm(str, parts)
		return
	}
	consume(str, match)
	groups := match.Groups()

	hour, _ := strconv.Atoi(groups[1].String())
	minute, _ := strconv.Atoi(groups[2].String())
	parts.Minute, parts.HasMinute = minute, true

	if groups[3].Length > 0 {
		second, _ := strconv.Atoi(groups[3].String())
		parts.Second, parts.HasSecond = second, true
	}
	if groups[4].Length > 0 {
		parseNanosecond(groups[4].String(), parts)
	}
	if groups[5].Length > 0 {
		hour = applyMeridiem(hour, groups[5].String())
	}
	parts.Hour, parts.HasHour = hour, true

	if groups[6].Length > 0 {
		parts.Zone, parts.HasZone = strings.TrimSpace(groups[6].String()), true
	}
}

func parseBareAmPm(str *string, parts *Parts) {
	match, err := bareAmPmRegex.FindStringMatch(*str)
	if err != nil || match == nil {
		return
	}
	consume(str, match)
	groups := match.Groups()

	hour, _ := strconv.Atoi(groups[1].String())
	parts.Hour, parts.HasHour = applyMeridiem(hour, groups[2].String()), true
	parts.Minute, parts.HasMinute = 0, true
}

func applyMeridiem(hour int, meridiem string) int {
	hour %= 12
	if meridiem == "p" || meridiem == "P" {
		hour += 12
	}
	return hour
}

func parseNanosecond(fraction string, parts *Parts) {
	if fraction == "" || len(fraction) > 9 {
		return
	}
	value, err := strconv.Atoi(fraction)
	if err != nil {
		return
	}
	for i := len(fraction); i < 9; i++ {
		value *= 10
	}
	parts.Nanosecond, parts.HasNanosecond = value, true
}

func parseISO(str *string, _ *patternSet, _ *locales.Locale, parts *Parts) bool {
	match, err := isoRegex.FindStringMatch(*str)
	if err != nil || match == nil {
		return false
	}
	consume(str, match)
	groups := match.Groups()

	year, _ := strconv.Atoi(groups[1].String())
	month, _ := strconv.Atoi(groups[2].String())
	day, _ := strconv.Atoi(groups[3].String())
	parts.Year, parts.HasYear = year, true
	parts.yearDigits = 4
	parts.Month, parts.HasMonth = month, true
	parts.Day, parts.HasDay = day, true
	return true
}

func parseTextual(str *string, set *patternSet, locale *locales.Locale, parts *Parts) bool {
	first, second := set.monthFirst, set.dayFirst
	firstExtract, secondExtract := extractMonthFirst, extractDayFirst
	if locale.DayFirst {
		first, second = second, first
		firstExtract, secondExtract = secondExtract, firstExtract
	}

	if match, err := first.FindStringMatch(*str); err == nil && match != nil {
		consume(str, match)
		return firstExtract(match, locale, parts)
	}
	if match, err := second.FindStringMatch(*str); err == nil && match != nil {
		consume(str, match)
		return secondExtract(match, locale, parts)
	}
	return false
}

func extractDayFirst(match *regexp2.Match, locale *locales.Locale, parts *Parts) bool {
	groups := match.Groups()
	return assignTextual(groups[1].String(), groups[2].String(), groups[3].String(), locale, parts)
}

func extractMonthFirst(match *regexp2.Match, locale *locales.Locale, parts *Parts) bool {
	groups := match.Groups()
	return assignTextual(groups[2].String(), groups[1].String(), groups[3].String(), locale, parts)
}

func assignTextual(dayStr, monthName, yearStr string, locale *locales.Locale, parts *Parts) bool {
	month, ok := locale.MonthNumber(monthName)
	if !ok {
		return false
	}

	// A quoted number ("'20") or a number too large for a day of month is the
	// year even when it sits in the day position.
	if yearStr == "" && (strings.HasPrefix(dayStr, "'") || numericLen(dayStr) > 2) {
		dayStr, yearStr = "", dayStr
	}
	if dayStr != "" && yearStr != "" && numericLen(dayStr) > 2 && numericLen(yearStr) <= 2 {
		dayStr, yearStr = yearStr, dayStr
	}

	parts.Month, parts.HasMonth = month, true
	if dayStr != "" {
		day, err := strconv.Atoi(strings.TrimPrefix(dayStr, "'"))
		if err == nil {
			parts.Day, parts.HasDay = day, true
		}
	}
	if yearStr != "" {
		year, err := strconv.Atoi(strings.TrimPrefix(yearStr, "'"))
		if err == nil {
			parts.Year, parts.HasYear = year, true
			parts.yearDigits = numericLen(yearStr)
		}
	}
	return true
}

func numericLen(s string) int {
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimPrefix(s, "-")
	return len(s)
}

// parseNumeric handles separator-delimited all-numeric dates: "2020/03/04",
// "3/4/2020", "04-05-2020", "3.4.20". Field order for the day/month pair
// follows the locale preference; when both readings are plausible the result
// is flagged ambiguous.
func parseNumeric(str *string, _ *patternSet, locale *locales.Locale, parts *Parts) bool {
	match, err := numericRegex.FindStringMatch(*str)
	if err != nil || match == nil {
		return false
	}
	groups := match.Groups()

	first := groups[1].String()
	second := groups[3].String()
	third := groups[4].String()

	var yearStr, dayStr, monthStr string
	if len(first) == 4 {
		// Big-endian: 2020/03/04.
		yearStr, monthStr, dayStr = first, second, third
		if len(third) > 2 {
			return false
		}
	} else {
		// d/m/y or m/d/y per locale preference, two- or four-digit year.
		yearStr = third
		dayStr, monthStr = orderDayMonth(first, second, locale, parts)
	}

	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	day, err3 := strconv.Atoi(dayStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}

	consume(str, match)
	parts.Year, parts.HasYear = year, true
	parts.yearDigits = len(yearStr)
	parts.Month, parts.HasMonth = month, true
	parts.Day, parts.HasDay = day, true
	return true
}

func orderDayMonth(first, second string, locale *locales.Locale, parts *Parts) (dayStr, monthStr string) {
	firstNum, _ := strconv.Atoi(first)
	secondNum, _ := strconv.Atoi(second)

	if locale.DayFirst {
		dayStr, monthStr = first, second
	} else {
		dayStr, monthStr = second, first
	}

	// One reading impossible: a value over 12 cannot be a month.
	dayNum, _ := strconv.Atoi(dayStr)
	monthNum, _ := strconv.Atoi(monthStr)
	if monthNum > 12 && dayNum <= 12 {
		dayStr, monthStr = monthStr, dayStr
		return dayStr, monthStr
	}

	if firstNum <= 12 && secondNum <= 12 && firstNum != secondNum {
		parts.Ambiguous = true
	}
	return dayStr, monthStr
}

func parseBareMonth(str *string, set *patternSet, locale *locales.Locale, parts *Parts) {
	match, err := set.bareMonth.FindStringMatch(*str)
	if err != nil || match == nil {
		return
	}
	month, ok := locale.MonthNumber(match.Groups()[1].String())
	if !ok {
		return
	}
	consume(str, match)
	parts.Month, parts.HasMonth = month, true
}

func parseOrdinalDay(str *string, set *patternSet, parts *Parts) {
	if set.ordinalDay == nil || parts.HasDay {
		return
	}
	match, err := set.ordinalDay.FindStringMatch(*str)
	if err != nil || match == nil {
		return
	}
	consume(str, match)
	day, err := strconv.Atoi(match.Groups()[1].String())
	if err == nil {
		parts.Day, parts.HasDay = day, true
	}
}

func parseYear(str *string, parts *Parts) {
	if parts.HasYear {
		return
	}
	if match, err := quotedYearRegex.FindStringMatch(*str); err == nil && match != nil {
		consume(str, match)
		year, convErr := strconv.Atoi(match.Groups()[1].String())
		if convErr == nil {
			parts.Year, parts.HasYear = year, true
			parts.yearDigits = 2
		}
		return
	}
	if match, err := bareYearRegex.FindStringMatch(*str); err == nil && match != nil {
		year, convErr := strconv.Atoi(match.Groups()[1].String())
		if convErr == nil && year >= 1000 && year < 2200 {
			consume(str, match)
			parts.Year, parts.HasYear = year, true
			parts.yearDigits = 4
		}
	}
}

// A leftover one-or-two-digit number completes a half-matched pair: it
// becomes the day when a time of day is already set ("15, 14:00") and the
// hour when a day is already set ("March 3, 14").
func parseFragment(str *string, parts *Parts) {
	match, err := fragmentRegex.FindStringMatch(*str)
	if err != nil || match == nil {
		return
	}
	num, convErr := strconv.Atoi(match.Groups()[1].String())
	if convErr != nil {
		return
	}

	if parts.HasHour && !parts.HasDay && num >= 1 && num <= 31 {
		consume(str, match)
		parts.Day, parts.HasDay = num, true
		return
	}
	if parts.HasDay && !parts.HasHour && num >= 0 && num <= 24 {
		consume(str, match)
		parts.Hour, parts.HasHour = num, true
	}
}
