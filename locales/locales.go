// Static per-locale vocabulary tables: month and weekday names, ordinal
// suffixes, relative-time words, numeral words and field order preferences.
// Tables are decoded from embedded YAML once at init and never mutated, so
// they are safe for concurrent reads from any number of parses.
package locales

import (
	"embed"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"textdate/oops"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Registration order doubles as detection tie-break order.
var localeOrder = []string{"en", "es", "fr", "de", "pt", "ru"}

type Unit string

const (
	UnitSecond Unit = "second"
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
	UnitDecade Unit = "decade"
)

var Units = []Unit{
	UnitSecond, UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear, UnitDecade,
}

type Locale struct {
	Code            string
	Name            string
	DayFirst        bool
	Months          [12][]string // names first, then abbreviations
	Weekdays        [7][]string  // Sunday first
	OrdinalSuffixes []string
	Relative        RelativeVocab
	Units           map[Unit][]string
	Numerals        map[string]int
	SkipWords       []string
}

type RelativeVocab struct {
	Now       []string
	Today     []string
	Yesterday []string
	Tomorrow  []string
	Past      []string // "ago", "hace", "назад"
	Future    []string // "in", "dans", "через"
	Last      []string
	Next      []string
	This      []string
	And       []string
}

// MonthNumber returns 1-12 for a month name or abbreviation, case-insensitively.
func (l *Locale) MonthNumber(name string) (int, bool) {
	name = strings.ToLower(name)
	for i, names := range l.Months {
		for _, candidate := range names {
			if candidate == name {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// WeekdayNumber returns 0-6 (Sunday first) for a weekday name or abbreviation.
func (l *Locale) WeekdayNumber(name string) (int, bool) {
	name = strings.ToLower(name)
	for i, names := range l.Weekdays {
		for _, candidate := range names {
			if candidate == name {
				return i, true
			}
		}
	}
	return 0, false
}

// UnitFor maps a vocabulary word to its time unit.
func (l *Locale) UnitFor(word string) (Unit, bool) {
	word = strings.ToLower(word)
	for _, unit := range Units {
		for _, candidate := range l.Units[unit] {
			if candidate == word {
				return unit, true
			}
		}
	}
	return "", false
}

type yamlLocale struct {
	Code            string     `yaml:"code"`
	Name            string     `yaml:"name"`
	DayFirst        bool       `yaml:"day_first"`
	Months          [][]string `yaml:"months"`
	Weekdays        [][]string `yaml:"weekdays"`
	OrdinalSuffixes []string   `yaml:"ordinal_suffixes"`
	Relative        struct {
		Now       []string `yaml:"now"`
		Today     []string `yaml:"today"`
		Yesterday []string `yaml:"yesterday"`
		Tomorrow  []string `yaml:"tomorrow"`
		Past      []string `yaml:"past"`
		Future    []string `yaml:"future"`
		Last      []string `yaml:"last"`
		Next      []string `yaml:"next"`
		This      []string `yaml:"this"`
		And       []string `yaml:"and"`
	} `yaml:"relative"`
	Units     map[string][]string `yaml:"units"`
	Numerals  map[string]int      `yaml:"numerals"`
	SkipWords []string            `yaml:"skip_words"`
}

var registry *orderedmap.OrderedMap[string, *Locale]

func init() {
	registry = orderedmap.New[string, *Locale]()
	for _, code := range localeOrder {
		locale, err := loadLocale(code)
		if err != nil {
			// Vocabulary data is baked into the binary, a load failure means
			// the build itself is broken.
			panic(err)
		}
		registry.Set(code, locale)
	}
}

func loadLocale(code string) (*Locale, error) {
	raw, err := dataFS.ReadFile(fmt.Sprintf("data/%s.yaml", code))
	if err != nil {
		return nil, oops.Wrapf(err, "locale %s: missing data file", code)
	}

	var y yamlLocale
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, oops.Wrapf(err, "locale %s: corrupt data file", code)
	}
	if y.Code != code {
		return nil, oops.Newf("locale %s: data file declares code %q", code, y.Code)
	}
	if len(y.Months) != 12 {
		return nil, oops.Newf("locale %s: expected 12 months, got %d", code, len(y.Months))
	}
	if len(y.Weekdays) != 7 {
		return nil, oops.Newf("locale %s: expected 7 weekdays, got %d", code, len(y.Weekdays))
	}

	locale := &Locale{
		Code:            y.Code,
		Name:            y.Name,
		DayFirst:        y.DayFirst,
		OrdinalSuffixes: lowerAll(y.OrdinalSuffixes),
		Relative: RelativeVocab{
			Now:       lowerAll(y.Relative.Now),
			Today:     lowerAll(y.Relative.Today),
			Yesterday: lowerAll(y.Relative.Yesterday),
			Tomorrow:  lowerAll(y.Relative.Tomorrow),
			Past:      lowerAll(y.Relative.Past),
			Future:    lowerAll(y.Relative.Future),
			Last:      lowerAll(y.Relative.Last),
			Next:      lowerAll(y.Relative.Next),
			This:      lowerAll(y.Relative.This),
			And:       lowerAll(y.Relative.And),
		},
		Units:     make(map[Unit][]string),
		Numerals:  make(map[string]int),
		SkipWords: lowerAll(y.SkipWords),
	}
	for i, names := range y.Months {
		if len(names) == 0 {
			return nil, oops.Newf("locale %s: month %d has no names", code, i+1)
		}
		locale.Months[i] = lowerAll(names)
	}
	for i, names := range y.Weekdays {
		if len(names) == 0 {
			return nil, oops.Newf("locale %s: weekday %d has no names", code, i)
		}
		locale.Weekdays[i] = lowerAll(names)
	}
	for _, unit := range Units {
		words, ok := y.Units[string(unit)]
		if !ok {
			return nil, oops.Newf("locale %s: no vocabulary for unit %s", code, unit)
		}
		locale.Units[unit] = lowerAll(words)
	}
	for word, value := range y.Numerals {
		locale.Numerals[strings.ToLower(word)] = value
	}

	return locale, nil
}

func lowerAll(words []string) []string {
	result := make([]string, len(words))
	for i, word := range words {
		result[i] = strings.ToLower(word)
	}
	return result
}

// Get returns the locale registered under the exact code.
func Get(code string) (*Locale, bool) {
	return registry.Get(code)
}

// Match resolves a possibly region-qualified code ("en-US", "pt_BR") to a
// registered locale by exact match first, then by base language.
func Match(code string) (*Locale, bool) {
	code = strings.ReplaceAll(code, "_", "-")
	if locale, ok := registry.Get(code); ok {
		return locale, true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return nil, false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return nil, false
	}
	return registry.Get(base.String())
}

// All returns registered locales in registration order.
func All() []*Locale {
	result := make([]*Locale, 0, registry.Len())
	for pair := registry.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// Codes returns registered locale codes in registration order.
func Codes() []string {
	result := make([]string, 0, registry.Len())
	for pair := registry.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Key)
	}
	return result
}
