// Filters and the fluent query-style builder used to construct them.
package entropy

// Filter is a (require, reject) pair of component bitmasks plus the
// derived mask = require | reject.
type Filter struct {
	Require Bitset
	Reject  Bitset
	mask    Bitset
}

// NewFilter builds a Filter from explicit require/reject bitmasks.
func NewFilter(require, reject Bitset) Filter {
	return Filter{Require: require, Reject: reject, mask: require.Or(reject)}
}

// Match reports whether a component bitmask satisfies the filter:
// (m & mask) == require.
func (f Filter) Match(components Bitset) bool {
	return components.And(f.mask).Equal(f.Require)
}

// Component is the type-erased handle every ComponentToken[T]
// implements, letting filters and group lookups accept a mix of
// component types.
type Component interface {
	componentID() int
	typeName() string
}

// RequireOf ORs the bit for every given component into a fresh
// bitmask, for use as a Filter's Require side.
func RequireOf(components ...Component) Bitset {
	b := NewBitset(Config.maxComponents)
	for _, c := range components {
		b.SetBit(c.componentID())
	}
	return b
}

// RejectOf is RequireOf's counterpart for a Filter's Reject side.
func RejectOf(components ...Component) Bitset {
	return RequireOf(components...)
}

// Query is a small fluent builder over Filter. A filter is always one
// require mask and one reject mask, never a nested And/Or/Not of
// sub-filters, so the builder has exactly two sides.
type Query struct {
	require []Component
	reject  []Component
}

// NewQuery returns an empty query builder.
func NewQuery() *Query {
	return &Query{}
}

// Require adds components to the query's require side.
func (q *Query) Require(components ...Component) *Query {
	q.require = append(q.require, components...)
	return q
}

// Reject adds components to the query's reject side.
func (q *Query) Reject(components ...Component) *Query {
	q.reject = append(q.reject, components...)
	return q
}

// Build produces the Filter described by this query.
func (q *Query) Build() Filter {
	return NewFilter(RequireOf(q.require...), RejectOf(q.reject...))
}
