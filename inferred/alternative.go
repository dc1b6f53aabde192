package inferred

var alternativeRules map[Kind]rule

func init() {
	alternativeRules = map[Kind]rule{
		RecordKind:   alternativeRecord,
		TupleKind:    alternativeElems,
		SequenceKind: alternativeElems,
		ListKind:     alternativeList,
		OptionKind:   alternativeOption,
		FlagsKind:    alternativeFlags,
		EnumKind:     alternativeEnum,
		ResultKind:   alternativeResult,
		VariantKind:  alternativeVariant,
		ResourceKind: requiredResource,
	}
}

// UnifyWithAlternative checks that two candidate types for the same
// expression, found along different lines of reasoning, describe the same
// structure, and returns it.
//
// Unlike UnifyWithRequired nothing is widened: records, tuples and
// variants must have the same shape and their unified children must be
// equal. Flags are the exception, the longer list of flags wins.
func UnifyWithAlternative(a, b *Type) (*Type, error) {
	switch {
	case a.IsUnknown():
		if b == nil {
			return Unknown, nil
		}
		return b, nil
	case b.IsUnknown() || Equal(a, b):
		return a, nil
	case a.Kind == AllOfKind:
		return alternativeAllOf(a, b)
	case b.Kind == AllOfKind:
		return alternativeAllOf(b, a)
	}
	if a.Kind == b.Kind {
		if merge, ok := alternativeRules[a.Kind]; ok {
			return merge(a, b)
		}
	}
	return nil, errorf("type mismatch: inferred to be both %s and %s", a, b)
}

// alternativeAllOf resolves the conjunction first, then compares it with
// the other candidate.
func alternativeAllOf(all, other *Type) (*Type, error) {
	resolved, err := unifyAllRequired(all.Elems)
	if err != nil {
		return nil, err
	}
	o, err := UnifyTypes(other)
	if err != nil {
		return nil, err
	}
	if resolved.Kind != AllOfKind && o.Kind != AllOfKind {
		return UnifyWithAlternative(resolved, o)
	}
	if Equal(resolved, o) {
		return resolved, nil
	}
	return nil, errorf("type mismatch: %s is not compatible with %s", resolved, o)
}

// sameUnified unifies both types and requires the results to be equal.
func sameUnified(a, b *Type) (*Type, error) {
	ua, err := UnifyTypes(a)
	if err != nil {
		return nil, err
	}
	ub, err := UnifyTypes(b)
	if err != nil {
		return nil, err
	}
	if !Equal(ua, ub) {
		return nil, errorf("type mismatch: %s and %s", ua, ub)
	}
	return ua, nil
}

func alternativeRecord(a, b *Type) (*Type, error) {
	if len(a.Fields) != len(b.Fields) {
		return nil, errorf("record fields do not match: %s and %s", a, b)
	}
	fields := make([]Field, len(a.Fields))
	for i, f := range a.Fields {
		bt, ok := b.Field(f.Name)
		if !ok {
			return nil, errorf("record fields do not match: %s and %s", a, b)
		}
		t, err := sameUnified(f.T, bt)
		if err != nil {
			return nil, errorf("record fields do not match: %s and %s", a, b)
		}
		fields[i] = Field{Name: f.Name, T: t}
	}
	return Record(fields...), nil
}

func alternativeElems(a, b *Type) (*Type, error) {
	if len(a.Elems) != len(b.Elems) {
		return nil, errorf("%s lengths do not match: %s and %s", a.Kind, a, b)
	}
	elems := make([]*Type, len(a.Elems))
	for i := range a.Elems {
		t, err := sameUnified(a.Elems[i], b.Elems[i])
		if err != nil {
			return nil, errorf("%s items do not match: %s and %s", a.Kind, a, b)
		}
		elems[i] = t
	}
	return &Type{Kind: a.Kind, Elems: elems}, nil
}

func alternativeList(a, b *Type) (*Type, error) {
	elem, err := sameUnified(a.Elem, b.Elem)
	if err != nil {
		return nil, errorf("list elements do not match: %s and %s", a, b)
	}
	return List(elem), nil
}

func alternativeOption(a, b *Type) (*Type, error) {
	merged, err := alternativeArm(a.Elem, b.Elem)
	if err != nil {
		return nil, err
	}
	return Option(merged), nil
}

// alternativeFlags picks the longer list. Flags cannot be combined from
// both sides as their order matters, and a longer list is taken to be
// a more complete view of the same flags.
func alternativeFlags(a, b *Type) (*Type, error) {
	if len(a.Names) >= len(b.Names) {
		return a, nil
	}
	return b, nil
}

func alternativeEnum(a, b *Type) (*Type, error) {
	if !equalNames(a.Names, b.Names) {
		return nil, errorf("enum cases do not match: %s and %s", a, b)
	}
	return a, nil
}

func alternativeResult(a, b *Type) (*Type, error) {
	ok, err := alternativeArm(a.Ok, b.Ok)
	if err != nil {
		return nil, err
	}
	errType, err := alternativeArm(a.Err, b.Err)
	if err != nil {
		return nil, err
	}
	return Result(ok, errType), nil
}

// alternativeArm unifies both children before comparing them, a present
// child wins over an absent one.
func alternativeArm(a, b *Type) (*Type, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	ua, err := UnifyTypes(a)
	if err != nil {
		return nil, err
	}
	ub, err := UnifyTypes(b)
	if err != nil {
		return nil, err
	}
	return UnifyWithAlternative(ua, ub)
}

func alternativeVariant(a, b *Type) (*Type, error) {
	if len(a.Fields) != len(b.Fields) {
		return nil, errorf("variant cases do not match: %s and %s", a, b)
	}
	cases := make([]Field, len(a.Fields))
	for i, c := range a.Fields {
		bt, ok := b.Field(c.Name)
		if !ok || (c.T == nil) != (bt == nil) {
			return nil, errorf("variant cases do not match: %s and %s", a, b)
		}
		cases[i] = Field{Name: c.Name}
		if c.T == nil {
			continue
		}
		t, err := sameUnified(c.T, bt)
		if err != nil {
			return nil, errorf("variant cases do not match: %s and %s", a, b)
		}
		cases[i].T = t
	}
	return Variant(cases...), nil
}
