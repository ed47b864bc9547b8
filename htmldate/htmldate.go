// Extracts publication dates from HTML for scraper pipelines. Candidates come
// from <time datetime=...> attributes, date-ish <meta> tags and text nodes,
// and go through the text parser with extra rejection heuristics tuned for
// noisy markup.
package htmldate

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"textdate/oops"
	"textdate/parser"
)

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func Compare(d1, d2 Date) int {
	switch {
	case d1.Year != d2.Year:
		return compareInt(d1.Year, d2.Year)
	case d1.Month != d2.Month:
		return compareInt(int(d1.Month), int(d2.Month))
	default:
		return compareInt(d1.Day, d2.Day)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type SourceKind int

const (
	SourceKindUnknown SourceKind = iota
	SourceKindTimeAttr
	SourceKindMeta
	SourceKindText
)

func (k SourceKind) String() string {
	switch k {
	case SourceKindUnknown:
		return "Ø"
	case SourceKindTimeAttr:
		return "time"
	case SourceKindMeta:
		return "meta"
	case SourceKindText:
		return "text"
	default:
		panic("unknown source kind")
	}
}

type Source struct {
	Date Date
	Kind SourceKind
}

type Options struct {
	// Accept dates with no year and fill it from the anchor.
	GuessYear bool
	// Anchor for year guessing. Zero means the current time.
	Now time.Time
	// Locale codes to consider. Empty means the process default set.
	Locales []string
}

// Meta tag names/properties that announce a publication date.
var metaDateKeys = []string{
	"article:published_time", "article:modified_time",
	"datepublished", "date", "dc.date", "dc.date.issued", "sailthru.date",
}

// Extract parses the document and returns the first date found in document
// order, preferring none over a wrong one.
func Extract(r io.Reader, opts Options) (*Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, oops.Wrap(err)
	}

	var found *Source
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if found != nil {
			return
		}
		if source := ExtractFromNode(node, opts); source != nil {
			found = source
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return found, nil
}

// ExtractFromNode inspects a single node: a <time> element's datetime
// attribute, a date-announcing <meta> tag's content, or a text node's text.
func ExtractFromNode(node *html.Node, opts Options) *Source {
	if node == nil {
		return nil
	}

	switch {
	case node.Type == html.ElementNode && node.Data == "time":
		if value, ok := attrValue(node, "datetime"); ok {
			if date := ExtractText(value, opts); date != nil {
				return &Source{Date: *date, Kind: SourceKindTimeAttr}
			}
		}
	case node.Type == html.ElementNode && node.Data == "meta":
		if !isDateMeta(node) {
			return nil
		}
		if value, ok := attrValue(node, "content"); ok {
			if date := ExtractText(value, opts); date != nil {
				return &Source{Date: *date, Kind: SourceKindMeta}
			}
		}
	case node.Type == html.TextNode:
		if date := ExtractText(node.Data, opts); date != nil {
			return &Source{Date: *date, Kind: SourceKindText}
		}
	}
	return nil
}

func attrValue(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func isDateMeta(node *html.Node) bool {
	for _, attr := range node.Attr {
		if attr.Key != "name" && attr.Key != "property" && attr.Key != "itemprop" {
			continue
		}
		value := strings.ToLower(attr.Val)
		for _, key := range metaDateKeys {
			if value == key {
				return true
			}
		}
	}
	return false
}

var (
	digitRegex           = regexp.MustCompile(`\d`)
	digitSlashDigitRegex = regexp.MustCompile(`\d/\d`)
	yyyymmddRegex        = regexp.MustCompile(`(?:\D|^)(\d\d\d\d)-(\d\d)-(\d\d)(?:\D|$)`)
	digitsRegex          = regexp.MustCompile(`\d+`)
)

// ExtractText extracts a full date from a text fragment. Markup text is
// mostly not dates, so beyond the parse itself the year and day must appear
// verbatim among the digit runs of the text, and digit/digit sequences are
// rejected outright as untellable MM/DD vs DD/MM.
func ExtractText(text string, opts Options) *Date {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if digitSlashDigitRegex.MatchString(text) {
		return nil
	}
	if !digitRegex.MatchString(text) {
		return nil
	}

	if date := matchBigEndian(text); date != nil {
		return date
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	result, err := parser.Parse(text, parser.Config{Now: now, Locales: opts.Locales})
	if err != nil {
		return nil
	}
	if result.Inferred.Has(parser.FieldMonth) || result.Inferred.Has(parser.FieldDay) {
		return nil
	}

	textNumbers := digitsRegex.FindAllString(text, -1)

	if result.Inferred.Has(parser.FieldYear) {
		if !opts.GuessYear {
			return nil
		}
	} else if !containsYear(textNumbers, result.Year) {
		return nil
	}

	if !containsDay(textNumbers, result.Day) {
		return nil
	}

	return &Date{Year: result.Year, Month: time.Month(result.Month), Day: result.Day}
}

// matchBigEndian fast-paths unambiguous YYYY-MM-DD text without a full parse.
func matchBigEndian(text string) *Date {
	match := yyyymmddRegex.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	if year < 1900 || year >= 2200 || month < 1 || month > 12 {
		return nil
	}
	if day < 1 || day > daysInMonth(year, time.Month(month)) {
		return nil
	}
	return &Date{Year: year, Month: time.Month(month), Day: day}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func containsYear(textNumbers []string, year int) bool {
	yearStr := strconv.Itoa(year)
	yearTwoDigitStr := yearStr
	if len(yearStr) >= 2 {
		yearTwoDigitStr = yearStr[len(yearStr)-2:]
	}
	for _, number := range textNumbers {
		if number == yearStr || number == yearTwoDigitStr {
			return true
		}
	}
	return false
}

func containsDay(textNumbers []string, day int) bool {
	dayStr := strconv.Itoa(day)
	dayStrPadded := fmt.Sprintf("%02d", day)
	for _, number := range textNumbers {
		if number == dayStr || number == dayStrPadded {
			return true
		}
	}
	return false
}
