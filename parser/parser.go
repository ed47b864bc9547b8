// Ties locale detection, absolute-date extraction, relative-date resolution
// and timezone handling into one entry point.
package parser

import (
	"errors"
	"strings"
	"time"

	"textdate/config"
	"textdate/detect"
	"textdate/freshness"
	"textdate/fuzzy"
	"textdate/locales"
	"textdate/oops"
	"textdate/tzabbr"
)

var (
	ErrNoMatch   = oops.New("no date found")
	ErrAmbiguous = oops.New("ambiguous date")
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type Config struct {
	// Anchor for relative expressions and inferred fields. Zero means ask the
	// clock.
	Now   time.Time
	Clock Clock
	// Locale codes to consider. Empty means the process default set.
	Locales []string
	// Preferred locale for ambiguous input, tried first ("en-US", "pt").
	LocaleHint string
	// Region for timezone abbreviation disambiguation ("US", "CN").
	RegionHint string
	// Refuse ambiguous readings instead of picking the locale preference.
	Strict bool
	// Resolve bare weekdays and missing years forward instead of backward.
	PreferFuture bool
}

type Fields uint8

const (
	FieldYear Fields = 1 << iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
)

func (f Fields) Has(field Fields) bool {
	return f&field != 0
}

func (f Fields) String() string {
	names := []struct {
		field Fields
		name  string
	}{
		{FieldYear, "year"}, {FieldMonth, "month"}, {FieldDay, "day"},
		{FieldHour, "hour"}, {FieldMinute, "minute"}, {FieldSecond, "second"},
	}
	var present []string
	for _, entry := range names {
		if f.Has(entry.field) {
			present = append(present, entry.name)
		}
	}
	return strings.Join(present, ",")
}

type Confidence int

const (
	ConfidenceFull Confidence = iota
	ConfidencePartial
)

func (c Confidence) String() string {
	if c == ConfidenceFull {
		return "full"
	}
	return "partial"
}

type Result struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int

	// Source zone token and its resolved offset, when the input carried one.
	Zone          string
	OffsetSeconds int
	HasOffset     bool

	// Fields filled in from the anchor rather than the input.
	Inferred Fields
	// Partial when any date field was inferred.
	Confidence Confidence
	// Locale preference or default timezone candidate decided a reading that
	// had alternatives.
	Ambiguous bool
	// Locale whose vocabulary produced the match.
	Locale string
}

// Time composes the result into a time.Time, in the resolved fixed-offset
// zone when one is known and UTC otherwise.
func (r *Result) Time() time.Time {
	location := time.UTC
	if r.HasOffset {
		location = time.FixedZone(r.Zone, r.OffsetSeconds)
	}
	return time.Date(r.Year, time.Month(r.Month), r.Day,
		r.Hour, r.Minute, r.Second, r.Nanosecond, location)
}

// Parse extracts a date/time from free-form text. It is pure over immutable
// vocabulary registries and safe for concurrent use.
func Parse(str string, cfg Config) (*Result, error) {
	now := cfg.Now
	if now.IsZero() {
		clock := cfg.Clock
		if clock == nil {
			clock = systemClock{}
		}
		now = clock.Now()
	}

	sanitized := sanitize(str)
	if sanitized == "" {
		return nil, oops.Wrap(ErrNoMatch)
	}
	if len(sanitized) > 128 {
		return nil, oops.Wrap(ErrNoMatch)
	}

	enabled := cfg.Locales
	if len(enabled) == 0 {
		enabled = config.Cfg.Locales
	}
	regionHint := cfg.RegionHint
	if regionHint == "" {
		regionHint = config.Cfg.RegionHint
	}
	strict := cfg.Strict || config.Cfg.Strict

	sanitized, trailingZone := splitTrailingZone(sanitized)

	candidates := detect.Detect(sanitized, cfg.LocaleHint, enabled)
	if len(candidates) == 0 {
		// Purely numeric input carries no vocabulary. The numeric templates
		// still need a field-order preference, so fall back to the enabled
		// locales in order.
		if len(enabled) == 0 {
			for _, locale := range locales.All() {
				candidates = append(candidates, detect.Candidate{Locale: locale})
			}
		}
		for _, code := range enabled {
			if locale, ok := locales.Match(code); ok {
				candidates = append(candidates, detect.Candidate{Locale: locale})
			}
		}
	}

	var ambiguousSeen bool
	for _, candidate := range candidates {
		result, err := parseWithLocale(sanitized, trailingZone, candidate.Locale, now, regionHint, strict, cfg.PreferFuture)
		if err != nil {
			if errors.Is(err, ErrAmbiguous) {
				ambiguousSeen = true
			}
			continue
		}
		if result != nil {
			return result, nil
		}
	}
	if ambiguousSeen {
		return nil, oops.Wrap(ErrAmbiguous)
	}
	return nil, oops.Wrap(ErrNoMatch)
}

func parseWithLocale(
	str string, trailingZone string, locale *locales.Locale, now time.Time,
	regionHint string, strict bool, preferFuture bool,
) (*Result, error) {
	parts := fuzzy.Parse(str, locale, true)
	if parts.TooLong {
		return nil, nil
	}

	if parts.Empty() {
		fresh, ok := freshness.Parse(str, locale, now)
		if !ok {
			return nil, nil
		}
		result := freshResult(fresh, locale)
		attachZone(result, trailingZone, regionHint)
		return result, nil
	}

	if parts.Ambiguous && strict {
		return nil, oops.Wrap(ErrAmbiguous)
	}

	result := &Result{
		Locale:    locale.Code,
		Ambiguous: parts.Ambiguous,
	}
	fillDate(result, &parts, now, preferFuture)
	fillTime(result, &parts)

	if !validCalendar(result) {
		return nil, nil
	}

	if parts.HasZone {
		result.Zone = parts.Zone
		if parts.HasOffset {
			result.OffsetSeconds, result.HasOffset = parts.OffsetSeconds, true
		} else {
			resolveAbbreviation(result, parts.Zone, regionHint)
		}
	} else {
		attachZone(result, trailingZone, regionHint)
	}

	if result.Inferred&(FieldYear|FieldMonth|FieldDay) != 0 {
		result.Confidence = ConfidencePartial
	}
	return result, nil
}

func fillDate(result *Result, parts *fuzzy.Parts, now time.Time, preferFuture bool) {
	if !parts.HasDate() {
		if parts.HasWeekday {
			resolveWeekday(result, parts.Weekday, now, preferFuture)
			return
		}
		year, month, day := now.Date()
		result.Year, result.Month, result.Day = year, int(month), day
		result.Inferred |= FieldYear | FieldMonth | FieldDay
		return
	}

	if parts.HasYear {
		result.Year = parts.Year
	} else {
		result.Year = now.Year()
		result.Inferred |= FieldYear
	}
	if parts.HasMonth {
		result.Month = parts.Month
	} else {
		result.Month = int(now.Month())
		result.Inferred |= FieldMonth
	}
	if parts.HasDay {
		result.Day = parts.Day
	} else {
		// Clamp so "February 2020" anchored on the 30th stays in February.
		result.Day = now.Day()
		if last := daysInMonth(result.Year, result.Month); result.Day > last {
			result.Day = last
		}
		result.Inferred |= FieldDay
	}

	if !parts.HasYear && preferFuture && validCalendar(result) {
		if asDate(result).Before(asDate(&Result{Year: now.Year(), Month: int(now.Month()), Day: now.Day()})) {
			result.Year++
			// Feb 29 only exists in leap years, so keep advancing until the
			// day is real again.
			for !validCalendar(result) {
				result.Year++
			}
		}
	}
}

func resolveWeekday(result *Result, weekday int, now time.Time, preferFuture bool) {
	anchorWeekday := int(now.Weekday())
	var days int
	if preferFuture {
		days = (weekday - anchorWeekday + 7) % 7
	} else {
		days = -((anchorWeekday - weekday + 7) % 7)
	}
	t := now.AddDate(0, 0, days)
	result.Year, result.Month, result.Day = t.Year(), int(t.Month()), t.Day()
	result.Inferred |= FieldYear | FieldMonth | FieldDay
}

func fillTime(result *Result, parts *fuzzy.Parts) {
	if parts.HasHour {
		result.Hour = parts.Hour
	}
	if parts.HasMinute {
		result.Minute = parts.Minute
	}
	if parts.HasSecond {
		result.Second = parts.Second
	}
	if parts.HasNanosecond {
		result.Nanosecond = parts.Nanosecond
	}
}

func freshResult(fresh freshness.Result, locale *locales.Locale) *Result {
	t := fresh.Time
	result := &Result{
		Year:       t.Year(),
		Month:      int(t.Month()),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
		Locale:     locale.Code,
	}
	result.Inferred = inferredBelow(fresh.Precision)
	if result.Inferred&(FieldYear|FieldMonth|FieldDay) != 0 {
		result.Confidence = ConfidencePartial
	}
	return result
}

// inferredBelow marks every field finer than the expression's precision as
// carried over from the anchor.
func inferredBelow(precision locales.Unit) Fields {
	order := []struct {
		unit  locales.Unit
		field Fields
	}{
		{locales.UnitYear, FieldYear},
		{locales.UnitMonth, FieldMonth},
		{locales.UnitDay, FieldDay},
		{locales.UnitHour, FieldHour},
		{locales.UnitMinute, FieldMinute},
		{locales.UnitSecond, FieldSecond},
	}
	var inferred Fields
	seen := false
	for _, entry := range order {
		if seen {
			inferred |= entry.field
		}
		if entry.unit == precision {
			seen = true
		}
	}
	return inferred
}

func validCalendar(result *Result) bool {
	if result.Year < 0 || result.Month < 1 || result.Month > 12 {
		return false
	}
	if result.Day < 1 || result.Day > daysInMonth(result.Year, result.Month) {
		return false
	}
	if result.Hour < 0 || result.Hour > 23 || result.Minute < 0 || result.Minute > 59 {
		return false
	}
	if result.Second < 0 || result.Second > 60 {
		return false
	}
	return true
}

func daysInMonth(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func asDate(result *Result) time.Time {
	return time.Date(result.Year, time.Month(result.Month), result.Day, 0, 0, 0, 0, time.UTC)
}

func resolveAbbreviation(result *Result, zone string, regionHint string) {
	resolution, ok := tzabbr.Resolve(strings.ToUpper(zone), regionHint)
	if !ok {
		// Unknown abbreviation degrades to a result without an offset.
		result.Zone = zone
		return
	}
	result.Zone = zone
	result.OffsetSeconds, result.HasOffset = resolution.OffsetSeconds, true
	if resolution.Ambiguous {
		result.Ambiguous = true
	}
}

func attachZone(result *Result, trailingZone string, regionHint string) {
	if trailingZone == "" {
		return
	}
	result.Zone = trailingZone
	if offset, ok := tzabbr.ParseOffset(trailingZone); ok {
		result.OffsetSeconds, result.HasOffset = offset, true
		return
	}
	resolveAbbreviation(result, trailingZone, regionHint)
}

var sanitizeReplacer = strings.NewReplacer(
	" ", " ", " ", " ", "​", "",
	"[", " ", "]", " ", "{", " ", "}", " ", "(", " ", ")", " ",
	"|", " ", "\"", " ",
)

func sanitize(str string) string {
	str = sanitizeReplacer.Replace(str)
	str = strings.Join(strings.Fields(str), " ")
	str = strings.TrimSuffix(str, ":")
	return strings.TrimSpace(str)
}

// splitTrailingZone peels a zone token off the end of the input so that
// "March 3, 2020 PST" resolves the same way as "March 3, 2020 10:00 PST".
// Spelled-out names ("Mountain Standard Time") and DST-marked abbreviations
// ("MET DST") span several words.
func splitTrailingZone(str string) (string, string) {
	fields := strings.Fields(str)
	for span := 4; span >= 1; span-- {
		if len(fields) <= span {
			continue
		}
		zone := strings.Join(fields[len(fields)-span:], " ")
		rest := strings.Join(fields[:len(fields)-span], " ")
		if span == 1 && tzabbr.IsKnown(zone) {
			return rest, zone
		}
		if _, ok := tzabbr.ParseOffset(zone); ok && !isPlainNumber(zone) {
			return rest, zone
		}
	}
	return str, ""
}

func isPlainNumber(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return len(s) > 0
}
