package tzabbr

import (
	"strconv"
	"strings"
)

// Offsets for spelled-out zone names, keyed by the name with
// "standard/daylight time" stripped.
var longNames = map[string]int{
	"gmt":               0,
	"greenwich":         0,
	"greenwich mean":    0,
	"eastern":           -5 * 3600,
	"central":           -6 * 3600,
	"mountain":          -7 * 3600,
	"pacific":           -8 * 3600,
	"atlantic":          -4 * 3600,
	"alaska":            -9 * 3600,
	"hawaii":            -10 * 3600,
	"mexico":            -6 * 3600,
	"w. europe":         1 * 3600,
	"central europe":    1 * 3600,
	"central european":  1 * 3600,
	"e. europe":         2 * 3600,
	"china":             8 * 3600,
	"india":             5*3600 + 1800,
	"tokyo":             9 * 3600,
	"korea":             9 * 3600,
	"new zealand":       12 * 3600,
	"e. australia":      10 * 3600,
	"w. central africa": 1 * 3600,
}

// ParseOffset turns a non-abbreviation zone spelling into a UTC offset in
// seconds: "Z", "GMT+9", "UTC-09:30", "+0900", "-09:01:02", "GMT+9.5",
// "Mountain Standard Time", "MET DST". Bare abbreviations are not handled
// here, callers resolve those against the table to keep the ambiguity
// information.
func ParseOffset(zone string) (int, bool) {
	s := collapseSpaces(strings.TrimSpace(zone))
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(s)

	switch lower {
	case "z", "ut", "utc", "gmt":
		return 0, true
	}

	// "<name> standard time" / "<name> daylight time"
	if name, dst, ok := stripTimeSuffix(lower); ok {
		if offset, found := longNames[name]; found {
			if dst {
				offset += 3600
			}
			return offset, true
		}
		return 0, false
	}

	// "<abbr> dst"
	if name, found := strings.CutSuffix(lower, " dst"); found {
		if resolution, ok := Resolve(strings.ToUpper(name), ""); ok {
			return resolution.OffsetSeconds + 3600, true
		}
		return 0, false
	}

	// Optional gmt/utc prefix before a signed numeric offset.
	for _, prefix := range []string{"gmt", "utc", "ut"} {
		if strings.HasPrefix(lower, prefix) && len(s) > len(prefix) {
			s = s[len(prefix):]
			break
		}
	}

	if s == "" || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	negative := s[0] == '-'
	body := s[1:]

	offset, ok := parseHourMinSec(body)
	if !ok {
		return 0, false
	}
	if negative {
		offset = -offset
	}
	return offset, true
}

func stripTimeSuffix(lower string) (name string, dst bool, ok bool) {
	base, found := strings.CutSuffix(lower, " time")
	if !found {
		return "", false, false
	}
	if name, found = strings.CutSuffix(base, " standard"); found {
		return name, false, true
	}
	if name, found = strings.CutSuffix(base, " daylight"); found {
		return name, true, true
	}
	return "", false, false
}

// Accepts "9", "09", "0930", "093015", "9:30", "09:30:15" and fractional
// hours "9.5".
func parseHourMinSec(body string) (int, bool) {
	if body == "" {
		return 0, false
	}

	if dot := strings.IndexAny(body, ".,"); dot >= 0 {
		hourStr := body[:dot]
		fracStr := body[dot+1:]
		hour, err := strconv.Atoi(hourStr)
		if err != nil || hour > 23 {
			return 0, false
		}
		frac, err := strconv.ParseFloat("0."+fracStr, 64)
		if err != nil {
			return 0, false
		}
		return hour*3600 + int(frac*3600+0.5), true
	}

	if strings.Contains(body, ":") {
		parts := strings.Split(body, ":")
		if len(parts) > 3 {
			return 0, false
		}
		values := [3]int{}
		for i, part := range parts {
			value, err := strconv.Atoi(part)
			if err != nil {
				return 0, false
			}
			values[i] = value
		}
		if values[0] > 23 || values[1] > 59 || values[2] > 60 {
			return 0, false
		}
		return values[0]*3600 + values[1]*60 + values[2], true
	}

	if len(body) > 6 {
		return 0, false
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, false
		}
	}
	hour, minute, second := 0, 0, 0
	// Odd lengths keep a single leading hour digit, like "930" for 9:30.
	headLen := 2 - len(body)%2
	hour, _ = strconv.Atoi(body[:headLen])
	if len(body) > headLen {
		minute, _ = strconv.Atoi(body[headLen : headLen+2])
	}
	if len(body) > headLen+2 {
		second, _ = strconv.Atoi(body[headLen+2 : headLen+4])
	}
	if hour > 23 || minute > 59 || second > 60 {
		return 0, false
	}
	return hour*3600 + minute*60 + second, true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
