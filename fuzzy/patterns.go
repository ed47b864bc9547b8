package fuzzy

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"textdate/locales"
)

const backtrackingRegexTimeout = 250 * time.Millisecond

// Patterns that do not depend on locale vocabulary.
var (
	invisibleRegex  *regexp2.Regexp
	timestampRegex  *regexp2.Regexp
	isoRegex        *regexp2.Regexp
	numericRegex    *regexp2.Regexp
	timeRegex       *regexp2.Regexp
	bareAmPmRegex   *regexp2.Regexp
	quotedYearRegex *regexp2.Regexp
	bareYearRegex   *regexp2.Regexp
	fragmentRegex   *regexp2.Regexp
)

// A zone token after a time of day: numeric offsets, uppercase
// abbreviations with an optional DST marker, or spelled-out
// "<name> Standard/Daylight Time". The alternation keeps inline
// case-sensitive groups so that capitalized prose words are not
// swallowed as zone abbreviations.
const zonePattern = "(" +
	/**/ "(?:gmt|utc?)?[-+]\\d{1,2}(?::?\\d{2}){0,2}" +
	/**/ "|" +
	/**/ "(?-i:[A-Za-z][A-Za-z. ]+)(?:standard|daylight)\\stime\\b" +
	/**/ "|" +
	/**/ "(?-i:[A-Z]{2,5})(?:\\s(?i:dst))?\\b" +
	/**/ "|" +
	/**/ "(?-i:Z)\\b" +
	")"

func init() {
	invisibleRegex = regexp2.MustCompile("[^-+',./:@\\[\\]\\p{L}\\p{N}]+", regexp2.None)
	timestampRegex = regexp2.MustCompile("^(-?\\d{10})(\\d{3})?(\\d{3})?$", regexp2.None)
	isoRegex = regexp2.MustCompile("(?<![-\\d])(\\d{4})-(\\d{1,2})-(\\d{1,2})(?![-\\d])", regexp2.None)
	numericRegex = regexp2.MustCompile(
		"(?<![-\\d./])(\\d{1,4})([-/.])(\\d{1,2})\\2(\\d{1,4})(?![-\\d./])",
		regexp2.None,
	)
	timeRegex = regexp2.MustCompile(""+
		/**/ "(?<!\\d)(\\d{1,2})\\s*:\\s*(\\d{2})"+
		/**/ "(?:\\s*:\\s*(\\d{2})(?:[.,](\\d{1,9}))?)?"+
		/**/ "(?:\\s*([ap])(?:m\\b|\\.m\\.))?"+
		/**/ "(?:\\s*"+zonePattern+")?",
		regexp2.IgnoreCase,
	)
	timeRegex.MatchTimeout = backtrackingRegexTimeout
	bareAmPmRegex = regexp2.MustCompile(
		"(?<!\\d)(\\d{1,2})\\s*([ap])(?:m\\b|\\.m\\.)",
		regexp2.IgnoreCase,
	)
	quotedYearRegex = regexp2.MustCompile("'(\\d{2})\\b", regexp2.None)
	bareYearRegex = regexp2.MustCompile("(?<!\\d)(\\d{4})(?!\\d)", regexp2.None)
	fragmentRegex = regexp2.MustCompile("^[\\s,]*(\\d{1,2})[\\s,]*$", regexp2.None)
	fragmentRegex.MatchTimeout = backtrackingRegexTimeout
}

// Vocabulary-derived patterns, compiled once per registered locale at init.
type patternSet struct {
	weekday    *regexp2.Regexp
	dayFirst   *regexp2.Regexp // "3 March 2020", "3. März 2020", "3 de marzo de 2020"
	monthFirst *regexp2.Regexp // "March 3, 2020", "Dec 15 '20"
	ordinalDay *regexp2.Regexp // "3rd", "3-го"
	bareMonth  *regexp2.Regexp
}

var patternSets map[string]*patternSet

func init() {
	patternSets = make(map[string]*patternSet)
	for _, locale := range locales.All() {
		patternSets[locale.Code] = compilePatterns(locale)
	}
}

func compilePatterns(locale *locales.Locale) *patternSet {
	months := alternation(flatten(locale.Months[:]))
	weekdays := alternation(flatten(locale.Weekdays[:]))

	var ordinal string
	if len(locale.OrdinalSuffixes) > 0 {
		ordinal = "(?:" + alternation(locale.OrdinalSuffixes) + ")?"
	}

	// Connector words between fields ("3rd of March", "3 de marzo de 2020").
	var connector string
	if len(locale.SkipWords) > 0 {
		connector = "(?:(?:" + alternation(locale.SkipWords) + ")\\s+)*"
	}

	dayFirst := mustCompileVocab("" +
		/**/ "(?<!\\d)('?\\d{1,2})(?!\\d)" + ordinal +
		/**/ "\\s*" + connector +
		/**/ "\\b(" + months + ")\\b\\.?,?" +
		/**/ "(?:" +
		/*  */ "\\s*" + connector +
		/*  */ "('?-?\\d{1,4})(?!\\d)" +
		/**/ ")?")

	monthFirst := mustCompileVocab("" +
		/**/ "\\b(" + months + ")\\b\\.?" +
		/**/ "\\s*('?\\d{1,2})(?!\\d)" + ordinal +
		/**/ "(?:" +
		/*  */ "\\s*,?\\s*" + connector +
		/*  */ "('?-?\\d{1,4})(?!\\d)" +
		/**/ ")?")

	var ordinalDay *regexp2.Regexp
	if len(locale.OrdinalSuffixes) > 0 {
		ordinalDay = mustCompileVocab(
			"(?<!\\d)(\\d{1,2})(?:" + alternation(locale.OrdinalSuffixes) + ")(?![\\p{L}\\d])")
	}

	return &patternSet{
		weekday:    mustCompileVocab("\\b(" + weekdays + ")\\b[^-/\\d\\s]*"),
		dayFirst:   dayFirst,
		monthFirst: monthFirst,
		ordinalDay: ordinalDay,
		bareMonth:  mustCompileVocab("\\b(" + months + ")\\b"),
	}
}

func mustCompileVocab(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	re.MatchTimeout = backtrackingRegexTimeout
	return re
}

// Longest first so abbreviations never shadow full names.
func alternation(words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	escaped := make([]string, len(sorted))
	for i, word := range sorted {
		escaped[i] = strings.ReplaceAll(regexp.QuoteMeta(word), " ", "\\s+")
	}
	return strings.Join(escaped, "|")
}

func flatten(groups [][]string) []string {
	var result []string
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
