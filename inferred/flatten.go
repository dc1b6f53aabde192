package inferred

import (
	"github.com/hashicorp/go-set/v3"
)

// FlattenAllOf rewrites types, to be combined as conjuncts, into the
// canonical two-level form: nested all-of members are spliced in, and
// every one-of found on the way is flattened and grouped into a single
// one-of appended last.
//
// Nothing is dropped or de-duplicated, see AllOf for that.
func FlattenAllOf(types []*Type) []*Type {
	return flatten(types, AllOfKind)
}

// FlattenOneOf is FlattenAllOf with the roles of one-of and all-of swapped.
func FlattenOneOf(types []*Type) []*Type {
	return flatten(types, OneOfKind)
}

func flatten(types []*Type, kind Kind) []*Type {
	if !anyCombinator(types) {
		return types
	}
	opposite := AllOfKind
	if kind == AllOfKind {
		opposite = OneOfKind
	}

	var same, other []*Type
	for _, t := range types {
		switch {
		case t == nil:
			same = append(same, t)
		case t.Kind == kind:
			for _, member := range flatten(t.Elems, kind) {
				// a spliced node brings its own group of the opposite kind,
				// which joins ours so that there is only ever one
				if member != nil && member.Kind == opposite {
					other = append(other, member.Elems...)
				} else {
					same = append(same, member)
				}
			}
		case t.Kind == opposite:
			other = append(other, flatten(t.Elems, opposite)...)
		default:
			same = append(same, t)
		}
	}
	if len(other) > 0 {
		same = append(same, &Type{Kind: opposite, Elems: other})
	}
	return same
}

func anyCombinator(types []*Type) bool {
	for _, t := range types {
		if t != nil && t.Kind.isCombinator() {
			return true
		}
	}
	return false
}

// distinct drops unknown types and structural duplicates from types,
// keeping the first occurrence of each.
func distinct(types []*Type) []*Type {
	seen := set.NewHashSet[*Type, uint64](len(types))
	res := make([]*Type, 0, len(types))
	for _, t := range types {
		if t.IsUnknown() {
			continue
		}
		if seen.Insert(t) {
			res = append(res, t)
		}
	}
	return res
}
