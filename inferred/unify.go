package inferred

import (
	"github.com/golemcloud/rib/internal/log"
)

var logger = log.DefaultLogger.With("section", "unify")

// UnifyTypes collapses the all-of and one-of nodes found in t.
//
// The members of an all-of are folded with UnifyWithRequired, the
// alternatives of a one-of with UnifyWithAlternative; containers are
// rebuilt from their unified children. The result may still hold
// ambiguity which no merge step could decide, such as the
// all-of(u32 & u64) left by two numeric facts. Use UnifyAndVerify to
// reject such results.
func UnifyTypes(t *Type) (*Type, error) {
	if t == nil {
		return Unknown, nil
	}
	switch t.Kind {
	case AllOfKind:
		return unifyAllRequired(t.Elems)
	case OneOfKind:
		return unifyAllAlternative(t.Elems)
	case ListKind, OptionKind:
		elem, err := UnifyTypes(t.Elem)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: t.Kind, Elem: elem}, nil
	case TupleKind, SequenceKind:
		elems := make([]*Type, len(t.Elems))
		for i, e := range t.Elems {
			u, err := UnifyTypes(e)
			if err != nil {
				return nil, err
			}
			elems[i] = u
		}
		return &Type{Kind: t.Kind, Elems: elems}, nil
	case RecordKind, VariantKind:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			u, err := unifyArm(f.T)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Name: f.Name, T: u}
		}
		return &Type{Kind: t.Kind, Fields: fields}, nil
	case ResultKind:
		ok, err := unifyArm(t.Ok)
		if err != nil {
			return nil, err
		}
		errType, err := unifyArm(t.Err)
		if err != nil {
			return nil, err
		}
		return Result(ok, errType), nil
	}
	return t, nil
}

// unifyArm unifies an optional child, keeping absent ones absent.
func unifyArm(t *Type) (*Type, error) {
	if t == nil {
		return nil, nil
	}
	return UnifyTypes(t)
}

// UnifyAndVerify unifies t and checks that the result is fully resolved.
// When it is not, the returned error describes the first unresolved part.
func UnifyAndVerify(t *Type) (*Type, error) {
	unified, err := UnifyTypes(t)
	if err != nil {
		return nil, err
	}
	if unresolved, ok := UnResolved(unified); ok {
		return nil, errorf("%s", unresolved)
	}
	return unified, nil
}

// unifyAllRequired folds the flattened conjuncts of types with UnifyWithRequired.
func unifyAllRequired(types []*Type) (*Type, error) {
	acc := Unknown
	for _, t := range FlattenAllOf(types) {
		u, err := UnifyTypes(t)
		if err != nil {
			return nil, err
		}
		acc, err = UnifyWithRequired(acc, u)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// unifyAllAlternative folds the flattened alternatives of types with
// UnifyWithAlternative. Candidates that cannot be reconciled with what was
// folded so far are kept side by side in a one-of, the ambiguity is reported
// by UnResolved or TypeCheck instead. An alternative which does not unify on
// its own is an error.
func unifyAllAlternative(types []*Type) (*Type, error) {
	acc := Unknown
	for _, t := range FlattenOneOf(types) {
		candidate, err := UnifyTypes(t)
		if err != nil {
			return nil, err
		}
		merged, err := UnifyWithAlternative(acc, candidate)
		if err == nil {
			acc = merged
			continue
		}
		logger.Debug("keeping alternatives apart", "folded", acc, "candidate", candidate, "reason", err)
		acc, _ = OneOf(acc, candidate)
	}
	return acc, nil
}
