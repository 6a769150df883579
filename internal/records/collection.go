package records

import "sort"

// Collection holds the five per-kind record lists in display order
// (most recently updated first).
type Collection struct {
	Accounts  []Record `json:"accounts"`
	Banks     []Record `json:"banks"`
	Insurance []Record `json:"insurance"`
	Extras    []Record `json:"extras"`
	Wifi      []Record `json:"wifi"`
}

// Partition buckets records by kind and sorts each bucket by UpdatedAt
// descending. The sort is stable, so records sharing a timestamp keep
// their arrival order. Records with an unknown kind are dropped.
func Partition(recs []Record) Collection {
	var c Collection
	for _, r := range recs {
		switch r.Kind {
		case KindAccount:
			c.Accounts = append(c.Accounts, r)
		case KindBank:
			c.Banks = append(c.Banks, r)
		case KindInsurance:
			c.Insurance = append(c.Insurance, r)
		case KindExtra:
			c.Extras = append(c.Extras, r)
		case KindWifi:
			c.Wifi = append(c.Wifi, r)
		}
	}
	for _, list := range [][]Record{c.Accounts, c.Banks, c.Insurance, c.Extras, c.Wifi} {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].UpdatedAt > list[j].UpdatedAt
		})
	}
	return c
}

// ByKind returns the list for the given kind (nil for unknown kinds).
func (c *Collection) ByKind(kind Kind) []Record {
	switch kind {
	case KindAccount:
		return c.Accounts
	case KindBank:
		return c.Banks
	case KindInsurance:
		return c.Insurance
	case KindExtra:
		return c.Extras
	case KindWifi:
		return c.Wifi
	}
	return nil
}

// Total returns the number of records across all kinds.
func (c *Collection) Total() int {
	return len(c.Accounts) + len(c.Banks) + len(c.Insurance) + len(c.Extras) + len(c.Wifi)
}
