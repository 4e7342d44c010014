package store

import "time"

// Filter narrows a query. It is a closed set: exact match on a metadata field
// or an inclusive created-at range.
type Filter interface {
	filter()
}

type FieldEquals struct {
	Field string
	Value string
}

func (FieldEquals) filter() {}

type CreatedBetween struct {
	Start time.Time
	End   time.Time
}

func (CreatedBetween) filter() {}
