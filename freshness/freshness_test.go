//go:build testing

package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"textdate/locales"
)

func mustLocale(t *testing.T, code string) *locales.Locale {
	locale, ok := locales.Get(code)
	require.True(t, ok, code)
	return locale
}

func TestParse(t *testing.T) {
	// A Wednesday afternoon.
	now := time.Date(2020, 3, 11, 15, 30, 45, 0, time.UTC)

	type Test struct {
		Str        string
		LocaleCode string
		Expected   time.Time
		Precision  locales.Unit
	}

	tests := []Test{
		{"now", "en", now, locales.UnitSecond},
		{"just now", "en", now, locales.UnitSecond},
		{"today", "en", now, locales.UnitDay},
		{"yesterday", "en", now.AddDate(0, 0, -1), locales.UnitDay},
		{"tomorrow", "en", now.AddDate(0, 0, 1), locales.UnitDay},

		{"3 days ago", "en", time.Date(2020, 3, 8, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"two weeks ago", "en", time.Date(2020, 2, 26, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"a month ago", "en", time.Date(2020, 2, 11, 15, 30, 45, 0, time.UTC), locales.UnitMonth},
		{"1 year, 2 months ago", "en", time.Date(2019, 1, 11, 15, 30, 45, 0, time.UTC), locales.UnitMonth},
		{"2 decades ago", "en", time.Date(2000, 3, 11, 15, 30, 45, 0, time.UTC), locales.UnitYear},
		{"30 seconds ago", "en", time.Date(2020, 3, 11, 15, 30, 15, 0, time.UTC), locales.UnitSecond},

		{"in 2 weeks", "en", time.Date(2020, 3, 25, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"in 30 minutes", "en", time.Date(2020, 3, 11, 16, 0, 45, 0, time.UTC), locales.UnitMinute},

		{"last tuesday", "en", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"next friday", "en", time.Date(2020, 3, 13, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"last wednesday", "en", time.Date(2020, 3, 4, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"this wednesday", "en", now, locales.UnitDay},
		{"last month", "en", time.Date(2020, 2, 11, 15, 30, 45, 0, time.UTC), locales.UnitMonth},
		{"next year", "en", time.Date(2021, 3, 11, 15, 30, 45, 0, time.UTC), locales.UnitYear},
		{"last week", "en", time.Date(2020, 3, 4, 15, 30, 45, 0, time.UTC), locales.UnitDay},

		{"hace 2 meses", "es", time.Date(2020, 1, 11, 15, 30, 45, 0, time.UTC), locales.UnitMonth},
		{"dentro de 3 días", "es", time.Date(2020, 3, 14, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"la semana pasada", "es", time.Date(2020, 3, 4, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"ayer", "es", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},

		{"il y a 3 jours", "fr", time.Date(2020, 3, 8, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"dans 2 heures", "fr", time.Date(2020, 3, 11, 17, 30, 45, 0, time.UTC), locales.UnitHour},
		{"hier", "fr", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},

		{"vor 3 Tagen", "de", time.Date(2020, 3, 8, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"gestern", "de", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},

		{"há 2 semanas", "pt", time.Date(2020, 2, 26, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"ontem", "pt", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},

		{"2 дня назад", "ru", time.Date(2020, 3, 9, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"через неделю", "ru", time.Date(2020, 3, 18, 15, 30, 45, 0, time.UTC), locales.UnitDay},
		{"вчера", "ru", time.Date(2020, 3, 10, 15, 30, 45, 0, time.UTC), locales.UnitDay},
	}

	for _, test := range tests {
		locale := mustLocale(t, test.LocaleCode)
		result, ok := Parse(test.Str, locale, now)
		msg := test.Str + " (" + test.LocaleCode + ")"
		require.True(t, ok, msg)
		require.Equal(t, test.Expected, result.Time, msg)
		require.Equal(t, test.Precision, result.Precision, msg)
	}
}

func TestParseMonthClamping(t *testing.T) {
	en := mustLocale(t, "en")

	endOfMarch := time.Date(2020, 3, 31, 12, 0, 0, 0, time.UTC)
	result, ok := Parse("1 month ago", en, endOfMarch)
	require.True(t, ok)
	require.Equal(t, time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC), result.Time)

	nonLeap := time.Date(2019, 3, 31, 12, 0, 0, 0, time.UTC)
	result, ok = Parse("1 month ago", en, nonLeap)
	require.True(t, ok)
	require.Equal(t, time.Date(2019, 2, 28, 12, 0, 0, 0, time.UTC), result.Time)

	endOfJanuary := time.Date(2020, 1, 31, 12, 0, 0, 0, time.UTC)
	result, ok = Parse("in 1 month", en, endOfJanuary)
	require.True(t, ok)
	require.Equal(t, time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC), result.Time)
}

func TestParseRejectsProse(t *testing.T) {
	en := mustLocale(t, "en")
	now := time.Date(2020, 3, 11, 15, 30, 45, 0, time.UTC)

	for _, str := range []string{
		"",
		"21 minutes is a long time",
		"I read it 3 days ago",
		"3 days",
		"ago",
		"in the house",
		"next big thing",
	} {
		_, ok := Parse(str, en, now)
		require.False(t, ok, str)
	}
}
