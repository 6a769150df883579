package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition_BucketsAndSortsByUpdatedAtDesc(t *testing.T) {
	recs := []Record{
		{ID: "a1", Kind: KindAccount, UpdatedAt: 100},
		{ID: "w1", Kind: KindWifi, UpdatedAt: 500},
		{ID: "a2", Kind: KindAccount, UpdatedAt: 300},
		{ID: "b1", Kind: KindBank, UpdatedAt: 200},
		{ID: "a3", Kind: KindAccount, UpdatedAt: 300}, // tie with a2, must stay after it
		{ID: "x1", Kind: Kind("bogus"), UpdatedAt: 900},
	}

	c := Partition(recs)

	ids := func(list []Record) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a2", "a3", "a1"}, ids(c.Accounts))
	assert.Equal(t, []string{"b1"}, ids(c.Banks))
	assert.Equal(t, []string{"w1"}, ids(c.Wifi))
	assert.Empty(t, c.Insurance)
	assert.Empty(t, c.Extras)
	assert.Equal(t, 5, c.Total())
}

func TestCollection_ByKind(t *testing.T) {
	c := Collection{Banks: []Record{{ID: "b"}}}
	assert.Len(t, c.ByKind(KindBank), 1)
	assert.Nil(t, c.ByKind(Kind("nope")))
}
