package inferred

import "slices"

// UnResolved looks for the first part of t which is not fully known: an
// unknown type, or a one-of or all-of left over after unification. It
// returns a description of the path to it, and false when t is resolved.
//
// A result with one resolved arm is considered resolved even if the other
// arm is not: a literal such as ok(1) says nothing about the error type.
func UnResolved(t *Type) (string, bool) {
	if t == nil {
		return "", false
	}
	switch t.Kind {
	case UnknownKind:
		return "unknown type", true
	case OneOfKind:
		return "cannot resolve " + t.String(), true
	case AllOfKind:
		return "cannot be " + t.String(), true
	case ListKind, OptionKind:
		return UnResolved(t.Elem)
	case TupleKind, SequenceKind:
		for _, e := range t.Elems {
			if msg, ok := UnResolved(e); ok {
				return msg, true
			}
		}
	case RecordKind:
		for _, f := range t.Fields {
			msg, ok := UnResolved(f.T)
			if f.T == nil {
				msg, ok = "unknown type", true
			}
			if ok {
				return "un-inferred type for field " + f.Name + " in record: " + msg, true
			}
		}
	case VariantKind:
		for _, c := range t.Fields {
			if msg, ok := UnResolved(c.T); ok {
				return msg, true
			}
		}
	case ResultKind:
		okMsg, okUnresolved := UnResolved(t.Ok)
		errMsg, errUnresolved := UnResolved(t.Err)
		switch {
		case okUnresolved && errUnresolved:
			return okMsg, true
		case okUnresolved && t.Err == nil:
			return okMsg, true
		case errUnresolved && t.Ok == nil:
			return errMsg, true
		}
	}
	return "", false
}

// TypeCheck is a shallow consistency check, weaker than UnResolved: the
// members of an all-of must be pairwise compatible, and a one-of is only
// accepted when all its alternatives are numbers, as picking the width of
// a numeric literal is left to a later stage.
func TypeCheck(t *Type) error {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case AllOfKind:
		for i := range t.Elems {
			for j := i + 1; j < len(t.Elems); j++ {
				if !AreCompatible(t.Elems[i], t.Elems[j]) {
					return errorf("incompatible types: %s", t)
				}
			}
		}
	case OneOfKind:
		for _, alt := range t.Elems {
			if !alt.IsNumber() {
				return errorf("ambiguous type %s", t)
			}
		}
	}
	return nil
}

// AreCompatible tells whether a and b could describe the same value. It
// tolerates unknown types anywhere, and only compares the fields and cases
// known to both sides.
func AreCompatible(a, b *Type) bool {
	switch {
	case a.IsUnknown() || b.IsUnknown():
		return true
	case a.Kind == OneOfKind && b.Kind == OneOfKind:
		return slices.ContainsFunc(a.Elems, func(t *Type) bool { return contains(b.Elems, t) })
	case a.Kind == AllOfKind && b.Kind == OneOfKind:
		return allAlternatives(a, b)
	case a.Kind == OneOfKind && b.Kind == AllOfKind:
		return allAlternatives(b, a)
	case a.Kind == AllOfKind:
		return compatibleWithAll(a.Elems, b)
	case b.Kind == AllOfKind:
		return compatibleWithAll(b.Elems, a)
	case a.Kind == OneOfKind:
		return contains(a.Elems, b)
	case b.Kind == OneOfKind:
		return contains(b.Elems, a)
	case a.Kind == OptionKind && b.Kind != OptionKind:
		return AreCompatible(a.Elem, b)
	case b.Kind == OptionKind && a.Kind != OptionKind:
		return AreCompatible(a, b.Elem)
	case a.Kind != b.Kind:
		return a.IsNumber() && b.IsNumber()
	}

	switch a.Kind {
	case ListKind, OptionKind:
		return AreCompatible(a.Elem, b.Elem)
	case TupleKind, SequenceKind:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !AreCompatible(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case RecordKind, VariantKind:
		for _, f := range a.Fields {
			bt, ok := b.Field(f.Name)
			if !ok {
				continue
			}
			if (f.T == nil) != (bt == nil) {
				return false
			}
			if f.T != nil && !AreCompatible(f.T, bt) {
				return false
			}
		}
		return true
	case ResultKind:
		return (a.Ok == nil || b.Ok == nil || AreCompatible(a.Ok, b.Ok)) &&
			(a.Err == nil || b.Err == nil || AreCompatible(a.Err, b.Err))
	}
	return Equal(a, b) || (a.IsNumber() && b.IsNumber())
}

// allAlternatives tells whether every conjunct of all is one of the alternatives of one.
func allAlternatives(all, one *Type) bool {
	for _, t := range all.Elems {
		if !contains(one.Elems, t) {
			return false
		}
	}
	return true
}

func compatibleWithAll(members []*Type, t *Type) bool {
	for _, m := range members {
		if !AreCompatible(m, t) {
			return false
		}
	}
	return true
}
