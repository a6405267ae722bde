package core

// Specification is a composable filter expressed over domain field names.
// Storage implementations translate field names to their own schema and
// compile the tree into a native query; an unknown field is a configuration
// error surfaced as ErrFieldMapping, never a silent mismatch.
type Specification interface {
	specification()
}

// EqualSpec matches records whose field equals Value.
type EqualSpec struct {
	Field string
	Value any
}

// ContainsSpec matches records whose string field contains Value.
type ContainsSpec struct {
	Field string
	Value string
}

// AndSpec matches records that satisfy every child specification.
// An empty AndSpec matches everything.
type AndSpec struct {
	Specs []Specification
}

// OrSpec matches records that satisfy at least one child specification.
// An empty OrSpec matches nothing.
type OrSpec struct {
	Specs []Specification
}

// AllSpec matches every record. It is the translation of "no filter": a nil
// Specification is treated identically.
type AllSpec struct{}

func (EqualSpec) specification()    {}
func (ContainsSpec) specification() {}
func (AndSpec) specification()      {}
func (OrSpec) specification()       {}
func (AllSpec) specification()      {}

// Equal builds a field equality filter.
func Equal(field string, value any) Specification {
	return EqualSpec{Field: field, Value: value}
}

// Contains builds a substring filter over a string field.
func Contains(field string, value string) Specification {
	return ContainsSpec{Field: field, Value: value}
}

// And combines specifications conjunctively.
func And(specs ...Specification) Specification {
	return AndSpec{Specs: specs}
}

// Or combines specifications disjunctively.
func Or(specs ...Specification) Specification {
	return OrSpec{Specs: specs}
}

// All matches every record.
func All() Specification {
	return AllSpec{}
}
