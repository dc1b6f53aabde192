package inferred

import "slices"

// Update records next as a new fact about an expression currently
// annotated with current, and returns the new annotation.
//
// Facts are only ever accumulated: two different facts become an all-of
// holding both, and a hard requirement arriving while a one-of is pending
// is recorded next to it rather than replacing it. Whether the facts agree
// is decided later, by UnifyAndVerify.
func Update(current, next *Type) *Type {
	if next.IsUnknown() || Equal(current, next) {
		if current == nil {
			return Unknown
		}
		return current
	}
	if current.IsUnknown() {
		return next
	}

	var merged *Type
	switch {
	case current.Kind == AllOfKind && next.Kind == AllOfKind:
		merged, _ = AllOf(slices.Concat(current.Elems, next.Elems)...)
	case current.Kind == AllOfKind:
		merged, _ = AllOf(slices.Concat(current.Elems, []*Type{next})...)
	case next.Kind == AllOfKind:
		merged, _ = AllOf(slices.Concat(next.Elems, []*Type{current})...)
	case current.Kind == OneOfKind && next.Kind == OneOfKind:
		merged, _ = OneOf(slices.Concat(current.Elems, next.Elems)...)
	default:
		merged, _ = AllOf(current, next)
	}
	return merged
}
