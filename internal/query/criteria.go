// Package query turns listing search parameters into a Criteria value and
// back. Building never fails: anything malformed falls back to a default.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 9
	MaxLimit     = 100
)

// Searchable fields matched by a search term.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldCondition   = "condition"
	FieldOffer       = "offer"
)

type SortField string

const (
	SortCreatedAt   SortField = "createdAt"
	SortRentalPrice SortField = "rentalPrice"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is newest first.
func DefaultSort() Sort { return Sort{Field: SortCreatedAt, Order: Desc} }

// Criteria is the derived form of a listing search request. It is a plain
// value; copies can be handed around freely.
type Criteria struct {
	SearchTerm string
	Type       string // "" means any type
	Category   string
	Condition  string
	Offer      bool // true restricts to discounted listings; false means no restriction
	Sort       Sort
	Limit      int
	StartIndex int
}

// Params is the subset of url.Values the builder reads.
type Params interface {
	Get(key string) string
}

// Build maps raw parameters onto Criteria.
func Build(p Params) Criteria {
	c := Criteria{
		SearchTerm: p.Get("searchTerm"),
		Category:   p.Get("category"),
		Condition:  p.Get("condition"),
		Offer:      p.Get("offer") == "true",
		Limit:      parseLimit(p.Get("limit")),
		StartIndex: parseStart(p.Get("startIndex")),
		Sort:       parseSort(p.Get("sort"), p.Get("order")),
	}
	if t := p.Get("type"); t != "all" {
		c.Type = t
	}
	return c
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func parseStart(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseSort keeps the upstream quirk: once sort is given, anything other than
// "createdAt" sorts by rental price, and anything other than "desc" is
// ascending. Only a missing sort yields the createdAt/desc default.
func parseSort(field, order string) Sort {
	if field == "" {
		return DefaultSort()
	}
	s := Sort{Field: SortRentalPrice, Order: Asc}
	if field == string(SortCreatedAt) {
		s.Field = SortCreatedAt
	}
	if order == string(Desc) {
		s.Order = Desc
	}
	return s
}

// Encode is the inverse of Build: Build(Encode(c)) == c for any c that Build
// can produce. Defaults are omitted so equal criteria encode identically.
func Encode(c Criteria) url.Values {
	v := url.Values{}
	if c.SearchTerm != "" {
		v.Set("searchTerm", c.SearchTerm)
	}
	if c.Type != "" {
		v.Set("type", c.Type)
	}
	if c.Category != "" {
		v.Set("category", c.Category)
	}
	if c.Condition != "" {
		v.Set("condition", c.Condition)
	}
	if c.Offer {
		v.Set("offer", "true")
	}
	if c.Sort != DefaultSort() {
		v.Set("sort", string(c.Sort.Field))
		v.Set("order", string(c.Sort.Order))
	}
	if c.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(c.Limit))
	}
	if c.StartIndex != 0 {
		v.Set("startIndex", strconv.Itoa(c.StartIndex))
	}
	return v
}

// Key is a stable string form of c, suitable as a cache key.
func (c Criteria) Key() string { return Encode(c).Encode() }
