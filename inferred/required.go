package inferred

import (
	"slices"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/xtgo/set"
)

// A rule merges two types of the same kind.
type rule func(a, b *Type) (*Type, error)

var requiredRules map[Kind]rule

func init() {
	requiredRules = map[Kind]rule{
		RecordKind:   requiredRecord,
		TupleKind:    requiredElems,
		SequenceKind: requiredElems,
		ListKind:     requiredElem,
		OptionKind:   requiredElem,
		FlagsKind:    requiredNames,
		EnumKind:     requiredNames,
		ResultKind:   requiredResult,
		VariantKind:  requiredVariant,
		ResourceKind: requiredResource,
	}
}

// UnifyWithRequired merges two facts about the same expression, both of
// which must hold.
//
// Records merge field-wise, keeping fields known to only one side, and
// come out with their fields sorted by name. An option absorbs a bare
// type on the other side. Two different numeric types are not an error:
// the choice of width is deferred by returning all-of(a & b). Every other
// disagreement is.
func UnifyWithRequired(a, b *Type) (*Type, error) {
	switch {
	case b.IsUnknown():
		return UnifyTypes(a)
	case a.IsUnknown():
		return UnifyTypes(b)
	case Equal(a, b):
		return UnifyTypes(a)
	}
	res, err := required(a, b)
	if err != nil {
		logger.Debug("required unification failed", "lhs", a, "rhs", b, "err", err)
		return nil, err
	}
	return res, nil
}

func required(a, b *Type) (*Type, error) {
	switch {
	case a.Kind == AllOfKind && b.Kind == OneOfKind:
		return requiredAllOfOneOf(a, b)
	case a.Kind == OneOfKind && b.Kind == AllOfKind:
		return requiredAllOfOneOf(b, a)
	case a.Kind == OneOfKind && b.Kind == OneOfKind:
		return requiredOneOfs(a, b)
	case a.Kind == OneOfKind:
		return requiredOneOf(a, b)
	case b.Kind == OneOfKind:
		return requiredOneOf(b, a)
	case a.Kind == AllOfKind || b.Kind == AllOfKind:
		return requiredAllOf(a, b)
	}

	if a.Kind == b.Kind {
		if merge, ok := requiredRules[a.Kind]; ok {
			return merge(a, b)
		}
	}
	switch {
	case a.Kind == OptionKind:
		return requiredOption(a, b)
	case b.Kind == OptionKind:
		return requiredOption(b, a)
	case a.IsNumber() && b.IsNumber():
		return &Type{Kind: AllOfKind, Elems: []*Type{a, b}}, nil
	}
	return nil, errorf("type mismatch: inferred to be both %s and %s", a, b)
}

// requiredAllOfOneOf pins down a disjunction with a conjunction: every
// conjunct must be one of the alternatives.
func requiredAllOfOneOf(all, one *Type) (*Type, error) {
	for _, t := range all.Elems {
		if t.IsUnknown() {
			continue
		}
		if !containsUnified(one.Elems, t) {
			return nil, errorf("type mismatch: %s is not part of %s", t, one)
		}
	}
	return unifyAllRequired(all.Elems)
}

func requiredOneOf(one, t *Type) (*Type, error) {
	if containsUnified(one.Elems, t) {
		return t, nil
	}
	return nil, errorf("type mismatch: inferred to be any of {%s}, but found (or used as) %s", joinTypes(one.Elems, ", "), t)
}

// requiredOneOfs keeps the alternatives both disjunctions agree on.
func requiredOneOfs(a, b *Type) (*Type, error) {
	var common []*Type
	for _, t := range a.Elems {
		if containsUnified(b.Elems, t) {
			common = append(common, t)
		}
	}
	if res, ok := OneOf(common...); ok {
		return res, nil
	}
	return nil, errorf("type mismatch: none of {%s} is any of {%s}", joinTypes(a.Elems, ", "), joinTypes(b.Elems, ", "))
}

// containsUnified tells whether t is one of alts, comparing unified types
// when the plain ones differ.
func containsUnified(alts []*Type, t *Type) bool {
	if contains(alts, t) {
		return true
	}
	ut, err := UnifyTypes(t)
	if err != nil {
		return false
	}
	for _, alt := range alts {
		if ualt, err := UnifyTypes(alt); err == nil && Equal(ualt, ut) {
			return true
		}
	}
	return false
}

func requiredAllOf(a, b *Type) (*Type, error) {
	all, other := a, b
	if all.Kind != AllOfKind {
		all, other = b, a
	}
	if other.Kind == AllOfKind {
		return unifyAllRequired([]*Type{all, other})
	}

	members := FlattenAllOf(all.Elems)
	// numeric facts only ever widen the set of candidate widths
	if other.IsNumber() && !slices.ContainsFunc(members, func(m *Type) bool { return !m.IsNumber() }) {
		res, _ := AllOf(slices.Concat(members, []*Type{other})...)
		return res, nil
	}
	results := make([]*Type, 0, len(members))
	for _, m := range members {
		if m.IsUnknown() {
			continue
		}
		res, err := UnifyWithRequired(m, other)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return unifyAllRequired(results)
}

func requiredOption(opt, t *Type) (*Type, error) {
	inner, err := UnifyTypes(opt.Elem)
	if err != nil {
		return nil, err
	}
	other, err := UnifyTypes(t)
	if err != nil {
		return nil, err
	}
	merged, err := UnifyWithRequired(inner, other)
	if err != nil {
		return nil, err
	}
	return Option(merged), nil
}

type nameComparer struct{}

func (nameComparer) Compare(a, b string) int { return strings.Compare(a, b) }

func requiredRecord(a, b *Type) (*Type, error) {
	fields := immutable.NewSortedMap[string, *Type](nameComparer{})
	for _, f := range a.Fields {
		bt, ok := b.Field(f.Name)
		if !ok {
			fields = fields.Set(f.Name, f.T)
			continue
		}
		merged, err := UnifyWithRequired(f.T, bt)
		if err != nil {
			return nil, err
		}
		fields = fields.Set(f.Name, merged)
	}
	for _, f := range b.Fields {
		if _, ok := fields.Get(f.Name); !ok {
			fields = fields.Set(f.Name, f.T)
		}
	}

	res := make([]Field, 0, fields.Len())
	itr := fields.Iterator()
	for !itr.Done() {
		name, t, _ := itr.Next()
		res = append(res, Field{Name: name, T: t})
	}
	return Record(res...), nil
}

func requiredElems(a, b *Type) (*Type, error) {
	if len(a.Elems) != len(b.Elems) {
		return nil, errorf("%s lengths do not match: %s and %s", a.Kind, a, b)
	}
	elems := make([]*Type, len(a.Elems))
	for i := range a.Elems {
		merged, err := UnifyWithRequired(a.Elems[i], b.Elems[i])
		if err != nil {
			return nil, err
		}
		elems[i] = merged
	}
	return &Type{Kind: a.Kind, Elems: elems}, nil
}

func requiredElem(a, b *Type) (*Type, error) {
	merged, err := UnifyWithRequired(a.Elem, b.Elem)
	if err != nil {
		return nil, err
	}
	return &Type{Kind: a.Kind, Elem: merged}, nil
}

// requiredNames never merges partially: the position of a flag or an
// enum case is part of its encoding.
func requiredNames(a, b *Type) (*Type, error) {
	if !equalNames(a.Names, b.Names) {
		return nil, errorf("%s do not match: %s and %s", namesOf(a.Kind), a, b)
	}
	return a, nil
}

func namesOf(k Kind) string {
	if k == EnumKind {
		return "enum cases"
	}
	return "flags"
}

func requiredResult(a, b *Type) (*Type, error) {
	ok, err := requiredArm(a.Ok, b.Ok)
	if err != nil {
		return nil, err
	}
	errType, err := requiredArm(a.Err, b.Err)
	if err != nil {
		return nil, err
	}
	return Result(ok, errType), nil
}

// requiredArm merges optional children. An absent child is not yet
// constrained, so the present one wins.
func requiredArm(a, b *Type) (*Type, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	return UnifyWithRequired(a, b)
}

// requiredVariant keeps the cases both sides agree on: cases known to one
// side only, and cases with a payload on one side only, are dropped.
func requiredVariant(a, b *Type) (*Type, error) {
	common := intersectNames(caseNames(a), caseNames(b))
	var cases []Field
	for _, c := range a.Fields {
		if _, found := slices.BinarySearch(common, c.Name); !found {
			continue
		}
		bt, _ := b.Field(c.Name)
		switch {
		case c.T == nil && bt == nil:
			cases = append(cases, Field{Name: c.Name})
		case c.T != nil && bt != nil:
			merged, err := UnifyWithRequired(c.T, bt)
			if err != nil {
				return nil, err
			}
			cases = append(cases, Field{Name: c.Name, T: merged})
		}
	}
	if len(cases) == 0 {
		return nil, errorf("variant cases do not intersect: no case of %s agrees with %s", a, b)
	}
	return Variant(cases...), nil
}

func caseNames(t *Type) []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// intersectNames returns the sorted names present in both ns and ms.
func intersectNames(ns, ms []string) []string {
	a, b := sortedSet(ns), sortedSet(ms)
	data := sort.StringSlice(slices.Concat(a, b))
	return data[:set.Inter(data, len(a))]
}

func sortedSet(names []string) []string {
	data := sort.StringSlice(slices.Clone(names))
	data.Sort()
	return data[:set.Uniq(data)]
}

func requiredResource(a, b *Type) (*Type, error) {
	if a.Resource != b.Resource || a.Mode != b.Mode {
		return nil, errorf("resource id or mode do not match: %s and %s", a, b)
	}
	return a, nil
}
