package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// noise are filler terms removed from a query before matching: "nearby",
// "around", "related to", "shrine", "temple" and friends. Longer terms come
// first so that 周辺の神社 is removed whole.
var noise = strings.NewReplacer(
	"周辺の神社", "",
	"に関する", "",
	"について", "",
	"ゆかり", "",
	"周辺", "",
	"近く", "",
	"付近", "",
	"周り", "",
	"神社", "",
	"寺", "",
	"nearby", "",
	"around", "",
	"shrine", "",
	"temple", "",
)

// Normalize folds width and case and removes all whitespace, so that
// "ＫＵＳＨＩＤＡ Shrine" and "kushidashrine" compare equal.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Keyword turns a raw query into the string the containment tiers match
// against: the normalized query with noise terms stripped, or the normalized
// query itself when stripping leaves nothing.
func Keyword(query string) string {
	normalized := Normalize(query)
	if kw := noise.Replace(normalized); kw != "" {
		return kw
	}
	return normalized
}
