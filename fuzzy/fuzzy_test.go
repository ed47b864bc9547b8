//go:build testing

package fuzzy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"textdate/locales"
)

func mustLocale(t *testing.T, code string) *locales.Locale {
	locale, ok := locales.Get(code)
	require.True(t, ok, code)
	return locale
}

func TestParse(t *testing.T) {
	type Test struct {
		Str        string
		LocaleCode string
		Expand     bool
		Year       int
		HasYear    bool
		Month      int
		HasMonth   bool
		Day        int
		HasDay     bool
		Hour       int
		HasHour    bool
		Minute     int
		HasMinute  bool
		Second     int
		HasSecond  bool
		Zone       string
		Offset     int
		HasOffset  bool
		Weekday    int
		HasWeekday bool
		Ambiguous  bool
	}

	tests := []Test{
		// ctime(3) shape
		{"Sat Aug 28 02:55:50 1999", "en", false, 1999, true, 8, true, 28, true, 2, true, 55, true, 50, true, "", 0, false, 6, true, false},
		{"Sat Aug 28 02:29:34 JST 1999", "en", false, 1999, true, 8, true, 28, true, 2, true, 29, true, 34, true, "JST", 0, false, 6, true, false},
		{"Sat Aug 28 02:29:34 MET DST 1999", "en", false, 1999, true, 8, true, 28, true, 2, true, 29, true, 34, true, "MET DST", 2 * 3600, true, 6, true, false},
		{"Sat Aug 28 02:29:34 GMT+09 1999", "en", false, 1999, true, 8, true, 28, true, 2, true, 29, true, 34, true, "GMT+09", 9 * 3600, true, 6, true, false},

		// textual, month first
		{"March 3, 2020", "en", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"March 3rd", "en", false, 0, false, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"Dec 15 '20", "en", true, 2020, true, 12, true, 15, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"March 2020", "en", false, 2020, true, 3, true, 0, false, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},

		// textual, day first
		{"3 de marzo de 2020", "es", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"lunes 3 de marzo de 2020", "es", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 1, true, false},
		{"3 mars 2020", "fr", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"3. März 2020", "de", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"15 de março de 2020", "pt", false, 2020, true, 3, true, 15, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"3 марта 2020", "ru", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"3-го марта", "ru", false, 0, false, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},

		// big-endian and separator-delimited numeric
		{"2020-03-03", "en", false, 2020, true, 3, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"03/04/2020", "en", false, 2020, true, 3, true, 4, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, true},
		{"03/04/2020", "es", false, 2020, true, 4, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, true},
		{"15/03/2020", "en", false, 2020, true, 3, true, 15, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"2020/03/04", "en", false, 2020, true, 3, true, 4, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"04.05.2020", "de", false, 2020, true, 5, true, 4, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, true},
		{"3.4.20", "de", true, 2020, true, 4, true, 3, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, true},

		// time of day
		{"10:30 pm", "en", false, 0, false, 0, false, 0, false, 22, true, 30, true, 0, false, "", 0, false, 0, false, false},
		{"5 pm", "en", false, 0, false, 0, false, 0, false, 17, true, 0, true, 0, false, "", 0, false, 0, false, false},
		{"12:00 am", "en", false, 0, false, 0, false, 0, false, 0, true, 0, true, 0, false, "", 0, false, 0, false, false},
		{"02:29:34 GMT+09", "en", false, 0, false, 0, false, 0, false, 2, true, 29, true, 34, true, "GMT+09", 9 * 3600, true, 0, false, false},
		{"14:30 Mountain Standard Time", "en", false, 0, false, 0, false, 0, false, 14, true, 30, true, 0, false, "Mountain Standard Time", -7 * 3600, true, 0, false, false},

		// unix timestamps
		{"1583193600", "en", false, 2020, true, 3, true, 3, true, 0, true, 0, true, 0, true, "UTC", 0, true, 0, false, false},

		// two-digit year expansion keeps explicit four-digit years alone
		{"Aug 28 0002", "en", true, 2, true, 8, true, 28, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"Aug 28 02", "en", true, 2002, true, 8, true, 28, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
		{"Aug 28 70", "en", true, 1970, true, 8, true, 28, true, 0, false, 0, false, 0, false, "", 0, false, 0, false, false},
	}

	for _, test := range tests {
		locale := mustLocale(t, test.LocaleCode)
		parts := Parse(test.Str, locale, test.Expand)
		msg := test.Str + " (" + test.LocaleCode + ")"
		require.Equal(t, test.HasYear, parts.HasYear, msg)
		if test.HasYear {
			require.Equal(t, test.Year, parts.Year, msg)
		}
		require.Equal(t, test.HasMonth, parts.HasMonth, msg)
		if test.HasMonth {
			require.Equal(t, test.Month, parts.Month, msg)
		}
		require.Equal(t, test.HasDay, parts.HasDay, msg)
		if test.HasDay {
			require.Equal(t, test.Day, parts.Day, msg)
		}
		require.Equal(t, test.HasHour, parts.HasHour, msg)
		if test.HasHour {
			require.Equal(t, test.Hour, parts.Hour, msg)
		}
		require.Equal(t, test.HasMinute, parts.HasMinute, msg)
		if test.HasMinute {
			require.Equal(t, test.Minute, parts.Minute, msg)
		}
		require.Equal(t, test.HasSecond, parts.HasSecond, msg)
		if test.HasSecond {
			require.Equal(t, test.Second, parts.Second, msg)
		}
		require.Equal(t, test.Zone, parts.Zone, msg)
		require.Equal(t, test.HasOffset, parts.HasOffset, msg)
		if test.HasOffset {
			require.Equal(t, test.Offset, parts.OffsetSeconds, msg)
		}
		require.Equal(t, test.HasWeekday, parts.HasWeekday, msg)
		if test.HasWeekday {
			require.Equal(t, test.Weekday, parts.Weekday, msg)
		}
		require.Equal(t, test.Ambiguous, parts.Ambiguous, msg)
	}
}

func TestParseNoMatch(t *testing.T) {
	en := mustLocale(t, "en")
	for _, str := range []string{"", "gibberish", "lorem ipsum dolor"} {
		parts := Parse(str, en, false)
		require.True(t, parts.Empty(), str)
	}
}

func TestParseTooLong(t *testing.T) {
	en := mustLocale(t, "en")
	parts := Parse(strings.Repeat("March 3, 2020 ", 20), en, false)
	require.True(t, parts.TooLong)
	require.True(t, parts.Empty())
}
