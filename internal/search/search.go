// Package search implements the vault's keyword filter and render-safe
// highlighting. Matching is a case-insensitive substring test over a
// kind-specific concatenation of fields; highlighting is applied per
// displayed field and always HTML-escapes its input, keyword or not.
package search

import (
	"html"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/records"
)

// Normalize trims and lower-cases a raw keyword the way the filter expects.
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// matchTarget concatenates the searchable fields for the record's kind.
// The order is irrelevant to the verdict; only containment matters.
func matchTarget(r records.Record) string {
	switch r.Kind {
	case records.KindAccount:
		return r.SiteURL + r.ServiceName + r.Username + r.Password + r.Notes
	case records.KindBank:
		return r.ServiceName + r.Username + r.Password + r.Notes
	case records.KindInsurance:
		return r.ServiceName + r.InsuranceCompany + r.InsuranceNumber + r.Username + r.Password + r.Notes
	case records.KindExtra:
		return r.ServiceName + r.Notes
	case records.KindWifi:
		return r.ServiceName + r.Password + r.Notes
	}
	return ""
}

// Matches reports whether the record matches the normalized keyword.
// An empty keyword matches everything.
func Matches(keyword string, r records.Record) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(matchTarget(r)), keyword)
}

func filterList(keyword string, list []records.Record) []records.Record {
	if keyword == "" {
		return list
	}
	var out []records.Record
	for _, r := range list {
		if Matches(keyword, r) {
			out = append(out, r)
		}
	}
	return out
}

// Filter returns the collection with non-matching records removed. The raw
// keyword is normalized first. Order among survivors is preserved.
func Filter(keyword string, c records.Collection) records.Collection {
	kw := Normalize(keyword)
	return records.Collection{
		Accounts:  filterList(kw, c.Accounts),
		Banks:     filterList(kw, c.Banks),
		Insurance: filterList(kw, c.Insurance),
		Extras:    filterList(kw, c.Extras),
		Wifi:      filterList(kw, c.Wifi),
	}
}

// Highlight HTML-escapes text and wraps every case-insensitive occurrence of
// keyword in a highlight span, preserving the original case of the matched
// text. Regex metacharacters in the keyword are treated literally. With an
// empty keyword the text is escaped and returned as is.
func Highlight(text, keyword string) string {
	escaped := html.EscapeString(text)

	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return escaped
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(kw))
	if err != nil {
		return escaped
	}

	return re.ReplaceAllString(escaped, `<span class="highlight">$0</span>`)
}
