package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(raw string) Criteria {
	v, err := url.ParseQuery(raw)
	if err != nil {
		panic(err)
	}
	return Build(v)
}

func hasField(rs []Restriction, field string) bool {
	for _, r := range rs {
		for _, f := range r.Fields {
			if f == field {
				return true
			}
		}
	}
	return false
}

func TestBuildEmptyParams(t *testing.T) {
	c := build("")
	assert.Empty(t, c.Restrictions())
	assert.Equal(t, DefaultSort(), c.Sort)
	assert.Equal(t, 9, c.Limit)
	assert.Equal(t, 0, c.StartIndex)
}

func TestTypeAllImposesNothing(t *testing.T) {
	for _, raw := range []string{"type=all", "type=all&category=Plow", "type=all&offer=true"} {
		c := build(raw)
		assert.False(t, hasField(c.Restrictions(), FieldType), raw)
	}
	c := build("type=rent")
	require.Len(t, c.Restrictions(), 1)
	assert.Equal(t, Restriction{Op: OpEquals, Fields: []string{FieldType}, Value: "rent"}, c.Restrictions()[0])
}

func TestOfferOnlyForLiteralTrue(t *testing.T) {
	for _, raw := range []string{"", "offer=false", "offer=TRUE", "offer=1", "offer=yes", "offer=", "offer=true%20"} {
		c := build(raw)
		assert.False(t, hasField(c.Restrictions(), FieldOffer), "offer restriction for %q", raw)
	}
	c := build("offer=true")
	require.Len(t, c.Restrictions(), 1)
	assert.Equal(t, true, c.Restrictions()[0].Value)
}

func TestPaginationFailsClosed(t *testing.T) {
	cases := map[string][2]int{
		"":                               {9, 0},
		"limit=abc&startIndex=xyz":       {9, 0},
		"limit=&startIndex=":             {9, 0},
		"limit=0":                        {9, 0},
		"limit=-4&startIndex=-2":         {9, 0},
		"limit=4&startIndex=8":           {4, 8},
		"limit=%204%20":                  {4, 0},
		"limit=12abc&startIndex=3.5":     {9, 0},
		"limit=100000&startIndex=100000": {MaxLimit, 100000},
	}
	for raw, want := range cases {
		c := build(raw)
		assert.Equal(t, want[0], c.Limit, raw)
		assert.Equal(t, want[1], c.StartIndex, raw)
	}
}

func TestSearchTermMatchesThreeFields(t *testing.T) {
	c := build("searchTerm=tractor")
	rs := c.Restrictions()
	require.Len(t, rs, 1)
	assert.Equal(t, OpContainsAny, rs[0].Op)
	assert.Equal(t, []string{"name", "description", "location"}, rs[0].Fields)
	assert.Equal(t, "tractor", rs[0].Value)
}

func TestEmptyCategoryAndCondition(t *testing.T) {
	c := build("category=&condition=")
	assert.Empty(t, c.Restrictions())
}

func TestSortDirective(t *testing.T) {
	cases := map[string]Sort{
		"":                             {SortCreatedAt, Desc},
		"order=asc":                    {SortCreatedAt, Desc},
		"sort=createdAt":               {SortCreatedAt, Asc},
		"sort=createdAt&order=desc":    {SortCreatedAt, Desc},
		"sort=rentalPrice&order=desc":  {SortRentalPrice, Desc},
		"sort=rentalPrice":             {SortRentalPrice, Asc},
		"sort=createdAt_desc":          {SortRentalPrice, Asc},
		"sort=bogus&order=DESC":        {SortRentalPrice, Asc},
		"sort=regularPrice&order=desc": {SortRentalPrice, Desc},
	}
	for raw, want := range cases {
		assert.Equal(t, want, build(raw).Sort, raw)
	}
}

func TestRestrictionsDoNotAlias(t *testing.T) {
	c := build("searchTerm=plow")
	rs := c.Restrictions()
	rs[0].Fields[0] = "userRef"
	assert.Equal(t, FieldName, c.Restrictions()[0].Fields[0])
}

func TestEncodeRoundTrip(t *testing.T) {
	c := build("category=Plow&condition=Good")
	enc := Encode(c)
	assert.Equal(t, "category=Plow&condition=Good", enc.Encode())

	again := Build(enc)
	assert.Equal(t, c, again)
	assert.Equal(t, c.Restrictions(), again.Restrictions())

	for _, raw := range []string{
		"",
		"searchTerm=John+Deere&type=sale&offer=true",
		"sort=rentalPrice&order=desc&limit=3&startIndex=6",
		"sort=createdAt&order=asc",
		"type=all&limit=junk",
		"sort=weird",
	} {
		c := build(raw)
		assert.Equal(t, c, Build(Encode(c)), raw)
		assert.Equal(t, c.Key(), Build(Encode(c)).Key(), raw)
	}
}
