// Package grouping buckets account records by site domain for the accordion
// view. Groups are recomputed from scratch on every call; the only state they
// depend on besides the records is the user's alias map and display-order
// overrides, which the caller injects.
package grouping

import (
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/lockbox/internal/records"
)

// FallbackKey is the sentinel group for accounts without a site URL. It is
// compared verbatim, so it must never collide with a real hostname.
const FallbackKey = "Other"

// Group is a display-time bucket of account records.
//
// DomainKey is the stable identity derived from the site URL and is what
// alias and order lookups are keyed by; DisplayKey is what gets rendered.
// Renaming a group changes DisplayKey only.
type Group struct {
	DomainKey  string           `json:"domainKey"`
	DisplayKey string           `json:"displayKey"`
	SiteURL    string           `json:"siteUrl,omitempty"`
	Accounts   []records.Record `json:"accounts"`
	Order      int              `json:"order"`
}

// ExtractDomain derives the group key from a raw site URL. It prepends a
// scheme when missing, lowercases the host and strips a leading "www.".
// It never fails: unparseable input is returned unchanged and an empty
// input maps to FallbackKey.
func ExtractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FallbackKey
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}

	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// GroupAccounts buckets accounts by aliased domain key and returns groups in
// display order. aliases maps DomainKey to a user-chosen display name; order
// maps DomainKey to a display-order override (absent keys rank as 0).
// Accounts whose domains share a display name merge into one group, which
// keeps the first-seen DomainKey as its identity.
//
// Sorting is two-level and stable: override order first, then a
// case-insensitive comparison of display keys.
func GroupAccounts(accounts []records.Record, aliases map[string]string, order map[string]int) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, acc := range accounts {
		domainKey := ExtractDomain(acc.SiteURL)
		displayKey := domainKey
		if alias, ok := aliases[domainKey]; ok && alias != "" {
			displayKey = alias
		}

		i, ok := index[displayKey]
		if !ok {
			i = len(groups)
			index[displayKey] = i
			groups = append(groups, Group{
				DomainKey:  domainKey,
				DisplayKey: displayKey,
				SiteURL:    acc.SiteURL,
				Order:      order[domainKey],
			})
		}
		groups[i].Accounts = append(groups[i].Accounts, acc)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		a, b := strings.ToLower(groups[i].DisplayKey), strings.ToLower(groups[j].DisplayKey)
		if a != b {
			return a < b
		}
		return groups[i].DisplayKey < groups[j].DisplayKey
	})

	return groups
}

// Flatten returns the accounts of all groups in group order. Grouping a
// flattened result again yields the same groups.
func Flatten(groups []Group) []records.Record {
	var out []records.Record
	for _, g := range groups {
		out = append(out, g.Accounts...)
	}
	return out
}
