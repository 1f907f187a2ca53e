// Package address derives the canonical matching key for postal
// addresses. The key is the sole basis for tenant auto-assignment, so
// every write path must derive it through Key, never inline.
package address

import (
	"strings"
	"unicode"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// Street suffix abbreviations applied after case/punctuation/whitespace
// normalization, so "Main Street" and "main st" produce the same key.
var streetSuffixes = [...][2]string{
	{"street", "st"},
	{"avenue", "ave"},
	{"boulevard", "blvd"},
	{"drive", "dr"},
	{"road", "rd"},
	{"lane", "ln"},
	{"court", "ct"},
}

// Key returns the canonical matching key for an address: the four
// normalized components concatenated with no separator. All four
// components are required; a missing one returns
// domain.ErrIncompleteAddress rather than a partial key.
//
// Key is pure and deterministic, and idempotent over its own output:
// feeding the normalized components back through yields the same key.
func Key(a domain.Address) (string, error) {
	if strings.TrimSpace(a.Street) == "" ||
		strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.State) == "" ||
		strings.TrimSpace(a.ZipCode) == "" {
		return "", domain.ErrIncompleteAddress
	}

	street := stripNonAlnum(strings.ToLower(a.Street))
	for _, s := range streetSuffixes {
		street = strings.ReplaceAll(street, s[0], s[1])
	}

	city := stripNonAlnum(strings.ToLower(a.City))
	state := stripNonAlnum(strings.ToLower(a.State))
	zip := digitsOnly(a.ZipCode)
	if len(zip) > 5 {
		zip = zip[:5]
	}

	return street + city + state + zip, nil
}

// stripNonAlnum removes everything except letters and digits,
// collapsing whitespace and punctuation to nothing.
func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
