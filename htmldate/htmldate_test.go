//go:build testing

package htmldate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"textdate/oops"
)

var anchor = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

func TestExtract(t *testing.T) {
	type Test struct {
		Html         string
		GuessYear    bool
		ExpectedDate string
		ExpectedKind SourceKind
		Found        bool
	}

	tests := []Test{
		{
			`<article><time datetime="2020-03-03">March 3</time></article>`,
			false, "2020-03-03", SourceKindTimeAttr, true,
		},
		{
			`<head><meta property="article:published_time" content="2020-03-03T10:20:30Z"></head>`,
			false, "2020-03-03", SourceKindMeta, true,
		},
		{
			`<head><meta name="date" content="March 3, 2020"></head>`,
			false, "2020-03-03", SourceKindMeta, true,
		},
		{
			`<div><p>Posted on March 3, 2020 by admin</p></div>`,
			false, "2020-03-03", SourceKindText, true,
		},
		{
			`<div><p>3 de marzo de 2020</p></div>`,
			false, "2020-03-03", SourceKindText, true,
		},
		// Slash-separated digits are untellable MM/DD vs DD/MM.
		{
			`<div><p>03/04/2020</p></div>`,
			false, "", SourceKindUnknown, false,
		},
		// No year: rejected unless guessing is on.
		{
			`<div><p>March 3</p></div>`,
			false, "", SourceKindUnknown, false,
		},
		{
			`<div><p>March 3</p></div>`,
			true, "2020-03-03", SourceKindText, true,
		},
		{
			`<div><p>lorem ipsum dolor sit amet</p></div>`,
			false, "", SourceKindUnknown, false,
		},
		// A count of things is not a date.
		{
			`<div><p>12345 comments</p></div>`,
			false, "", SourceKindUnknown, false,
		},
	}

	for _, test := range tests {
		source, err := Extract(strings.NewReader(test.Html), Options{
			GuessYear: test.GuessYear,
			Now:       anchor,
		})
		oops.RequireNoError(t, err, test.Html)
		if !test.Found {
			require.Nil(t, source, test.Html)
			continue
		}
		require.NotNil(t, source, test.Html)
		require.Equal(t, test.ExpectedDate, source.Date.String(), test.Html)
		require.Equal(t, test.ExpectedKind, source.Kind, test.Html)
	}
}

func TestExtractText(t *testing.T) {
	date := ExtractText("Published March 3, 2020", Options{Now: anchor})
	require.NotNil(t, date)
	require.Equal(t, Date{2020, time.March, 3}, *date)

	// No year in the text and no guessing: rejected.
	require.Nil(t, ExtractText("March 3rd", Options{Now: anchor}))

	// Feb 29 on a non-leap year never passes.
	require.Nil(t, ExtractText("2019-02-29", Options{Now: anchor}))
	date = ExtractText("2020-02-29", Options{Now: anchor})
	require.NotNil(t, date)
	require.Equal(t, Date{2020, time.February, 29}, *date)
}

func TestCompare(t *testing.T) {
	a := Date{2020, time.March, 3}
	b := Date{2020, time.March, 4}
	c := Date{2021, time.January, 1}
	require.Equal(t, 0, Compare(a, a))
	require.Equal(t, -1, Compare(a, b))
	require.Equal(t, 1, Compare(b, a))
	require.Equal(t, -1, Compare(b, c))
	require.Equal(t, "2020-03-03", a.String())
}
