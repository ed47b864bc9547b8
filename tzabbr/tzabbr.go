// Maps timezone abbreviations to known UTC offsets. Abbreviations are not
// unique worldwide ("CST" is US Central, China and Cuba), so every entry keeps
// its full candidate list and resolution reports ambiguity instead of
// silently guessing.
package tzabbr

import (
	"strings"
)

type Candidate struct {
	OffsetSeconds int
	Region        string
}

type Resolution struct {
	OffsetSeconds int
	Region        string
	Ambiguous     bool
}

// The first candidate of each entry is the designated default.
var table = map[string][]Candidate{
	"UT":  {{0, "UTC"}},
	"UTC": {{0, "UTC"}},
	"GMT": {{0, "UTC"}},
	"Z":   {{0, "UTC"}},

	"EST":  {{-5 * 3600, "US-Eastern"}},
	"EDT":  {{-4 * 3600, "US-Eastern"}},
	"CST":  {{-6 * 3600, "US-Central"}, {8 * 3600, "CN"}, {-5 * 3600, "CU"}},
	"CDT":  {{-5 * 3600, "US-Central"}, {-4 * 3600, "CU"}},
	"MST":  {{-7 * 3600, "US-Mountain"}},
	"MDT":  {{-6 * 3600, "US-Mountain"}},
	"PST":  {{-8 * 3600, "US-Pacific"}, {8 * 3600, "PH"}},
	"PDT":  {{-7 * 3600, "US-Pacific"}},
	"AKST": {{-9 * 3600, "US-Alaska"}},
	"AKDT": {{-8 * 3600, "US-Alaska"}},
	"HST":  {{-10 * 3600, "US-Hawaii"}},

	"AST": {{-4 * 3600, "CA-Atlantic"}, {3 * 3600, "SA"}},
	"ADT": {{-3 * 3600, "CA-Atlantic"}},
	"NST": {{-3*3600 - 1800, "CA-Newfoundland"}},
	"NDT": {{-2*3600 - 1800, "CA-Newfoundland"}},

	"WET":  {{0, "EU-Western"}},
	"WEST": {{1 * 3600, "EU-Western"}},
	"CET":  {{1 * 3600, "EU-Central"}},
	"CEST": {{2 * 3600, "EU-Central"}},
	"MET":  {{1 * 3600, "EU-Central"}},
	"MEST": {{2 * 3600, "EU-Central"}},
	"EET":  {{2 * 3600, "EU-Eastern"}},
	"EEST": {{3 * 3600, "EU-Eastern"}},
	"MSK":  {{3 * 3600, "RU-Moscow"}},
	"MSD":  {{4 * 3600, "RU-Moscow"}},
	"BST":  {{1 * 3600, "GB"}, {6 * 3600, "BD"}},
	"IST":  {{5*3600 + 1800, "IN"}, {1 * 3600, "IE"}, {2 * 3600, "IL"}},

	"WAT":  {{1 * 3600, "AF-Western"}},
	"CAT":  {{2 * 3600, "AF-Central"}},
	"EAT":  {{3 * 3600, "AF-Eastern"}},
	"SAST": {{2 * 3600, "ZA"}},

	"GST": {{4 * 3600, "AE"}},
	"PKT": {{5 * 3600, "PK"}},
	"ICT": {{7 * 3600, "TH"}},
	"WIB": {{7 * 3600, "ID-Western"}},
	"HKT": {{8 * 3600, "HK"}},
	"SGT": {{8 * 3600, "SG"}},
	"JST": {{9 * 3600, "JP"}},
	"KST": {{9 * 3600, "KR"}},

	"AWST": {{8 * 3600, "AU-Western"}},
	"ACST": {{9*3600 + 1800, "AU-Central"}},
	"AEST": {{10 * 3600, "AU-Eastern"}},
	"ACDT": {{10*3600 + 1800, "AU-Central"}},
	"AEDT": {{11 * 3600, "AU-Eastern"}},
	"NZST": {{12 * 3600, "NZ"}},
	"NZDT": {{13 * 3600, "NZ"}},

	"ART": {{-3 * 3600, "AR"}},
	"BRT": {{-3 * 3600, "BR"}},
	"CLT": {{-4 * 3600, "CL"}},
	"VET": {{-4 * 3600, "VE"}},
	"COT": {{-5 * 3600, "CO"}},
	"PET": {{-5 * 3600, "PE"}},
}

// Resolve looks up an abbreviation with a case-sensitive exact match. When
// several regions share the abbreviation, a region hint filters the
// candidates; with no hint, or a hint that matches none, the default
// candidate comes back with Ambiguous set so the caller can decide whether to
// trust it.
func Resolve(abbr string, regionHint string) (Resolution, bool) {
	candidates, ok := table[abbr]
	if !ok {
		return Resolution{}, false
	}

	if len(candidates) == 1 {
		only := candidates[0]
		return Resolution{OffsetSeconds: only.OffsetSeconds, Region: only.Region, Ambiguous: false}, true
	}

	if regionHint != "" {
		var matching []Candidate
		for _, candidate := range candidates {
			if regionMatches(candidate.Region, regionHint) {
				matching = append(matching, candidate)
			}
		}
		if len(matching) == 1 {
			only := matching[0]
			return Resolution{OffsetSeconds: only.OffsetSeconds, Region: only.Region, Ambiguous: false}, true
		}
		if len(matching) > 1 {
			first := matching[0]
			return Resolution{OffsetSeconds: first.OffsetSeconds, Region: first.Region, Ambiguous: true}, true
		}
	}

	first := candidates[0]
	return Resolution{OffsetSeconds: first.OffsetSeconds, Region: first.Region, Ambiguous: true}, true
}

// IsKnown reports whether the abbreviation has a table entry.
func IsKnown(abbr string) bool {
	_, ok := table[abbr]
	return ok
}

func regionMatches(region string, hint string) bool {
	if region == hint {
		return true
	}
	return strings.HasPrefix(region, hint+"-")
}
