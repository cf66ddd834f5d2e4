package query

type Op int

const (
	// OpEquals restricts Fields[0] to exactly Value.
	OpEquals Op = iota
	// OpContainsAny matches when any of Fields contains Value as a
	// case-insensitive substring.
	OpContainsAny
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "eq"
	case OpContainsAny:
		return "contains_any"
	}
	return "unknown"
}

// Restriction is one conjunct of the filter a store must apply.
type Restriction struct {
	Op     Op
	Fields []string
	Value  any
}

var searchFields = []string{FieldName, FieldDescription, FieldLocation}

// Restrictions returns the conjunction of filters implied by c, in a fixed
// order. Empty or absent parameters contribute nothing.
func (c Criteria) Restrictions() []Restriction {
	var out []Restriction
	if c.SearchTerm != "" {
		fields := make([]string, len(searchFields))
		copy(fields, searchFields)
		out = append(out, Restriction{Op: OpContainsAny, Fields: fields, Value: c.SearchTerm})
	}
	if c.Type != "" {
		out = append(out, eq(FieldType, c.Type))
	}
	if c.Category != "" {
		out = append(out, eq(FieldCategory, c.Category))
	}
	if c.Condition != "" {
		out = append(out, eq(FieldCondition, c.Condition))
	}
	if c.Offer {
		out = append(out, eq(FieldOffer, true))
	}
	return out
}

func eq(field string, v any) Restriction {
	return Restriction{Op: OpEquals, Fields: []string{field}, Value: v}
}
