// Package inferred holds what type inference currently knows about the
// type of a Rib expression, and the algorithms that reconcile several
// pieces of such knowledge into a single type.
//
// An inferred type is one of:
//
//	unknown                          nothing is known yet
//	bool, s8 ... u64, f32, f64       scalars
//	char, string
//	list<t>                          lists with element type t
//	tuple<t1, ..., tn>               positional tuples
//	record{k1: t1, ..., kn: tn}      records, field identity is by name
//	flags<n1, ..., nn>               flags, order significant
//	enum<c1, ..., cn>                enums, order significant
//	option<t>
//	result<ok, err>                  either arm may be absent
//	variant{c1(t1), c2, ...}         cases with optional payloads
//	handle<id, owned|borrowed>       resource handles
//	sequence(t1, ..., tn)            the values returned by a function
//	one-of(t1 | ... | tn)            exactly one of the alternatives holds
//	all-of(t1 & ... & tn)            all of the facts hold at once
//
// one-of and all-of only exist during inference: they are introduced when
// independent passes record facts about the same expression (see Update)
// and are collapsed by UnifyTypes and UnifyAndVerify.
//
// Types are immutable values. Functions in this package never modify
// their arguments, and the package level scalar types may be shared freely.
package inferred

import (
	"fmt"
	"hash"
	"hash/fnv"
	"strconv"
	"strings"
)

// Kind is the discriminant of a Type.
type Kind int

const (
	// UnknownKind is the bottom of the lattice: no information yet.
	UnknownKind Kind = iota

	BoolKind
	S8Kind
	U8Kind
	S16Kind
	U16Kind
	S32Kind
	U32Kind
	S64Kind
	U64Kind
	F32Kind
	F64Kind
	ChrKind
	StrKind

	ListKind
	TupleKind
	RecordKind
	FlagsKind
	EnumKind
	OptionKind
	ResultKind
	VariantKind
	ResourceKind

	// SequenceKind is the multi-value result of a function call. It is
	// not a tuple.
	SequenceKind

	// OneOfKind is a disjunction of alternatives.
	OneOfKind
	// AllOfKind is a conjunction of facts.
	AllOfKind

	kindMax
)

var kindStrings = [kindMax]string{
	UnknownKind:  "unknown",
	BoolKind:     "bool",
	S8Kind:       "s8",
	U8Kind:       "u8",
	S16Kind:      "s16",
	U16Kind:      "u16",
	S32Kind:      "s32",
	U32Kind:      "u32",
	S64Kind:      "s64",
	U64Kind:      "u64",
	F32Kind:      "f32",
	F64Kind:      "f64",
	ChrKind:      "char",
	StrKind:      "string",
	ListKind:     "list",
	TupleKind:    "tuple",
	RecordKind:   "record",
	FlagsKind:    "flags",
	EnumKind:     "enum",
	OptionKind:   "option",
	ResultKind:   "result",
	VariantKind:  "variant",
	ResourceKind: "handle",
	SequenceKind: "sequence",
	OneOfKind:    "one-of",
	AllOfKind:    "all-of",
}

func (k Kind) String() string {
	if k < 0 || k >= kindMax {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindStrings[k]
}

// IsNumber tells whether k is one of the integer or floating point kinds.
func (k Kind) IsNumber() bool {
	return k >= S8Kind && k <= F64Kind
}

func (k Kind) isCombinator() bool {
	return k == OneOfKind || k == AllOfKind
}

type ResourceID uint64

// ResourceMode is the ownership of a resource handle.
type ResourceMode uint8

const (
	Owned ResourceMode = iota
	Borrowed
)

func (m ResourceMode) String() string {
	if m == Borrowed {
		return "borrowed"
	}
	return "owned"
}

// A Field is a named type, used for record fields and variant cases.
// T is nil for variant cases without a payload. A record field with a nil T
// is treated as unknown.
type Field struct {
	Name string
	T    *Type
}

// A Type is the current knowledge about the type of an expression.
// The zero Type is unknown.
type Type struct {
	Kind Kind
	// Elem is the inner type of lists and options.
	Elem *Type
	// Elems holds tuple items, sequence values, and the members of
	// one-of and all-of.
	Elems []*Type
	// Fields holds record fields and variant cases.
	Fields []Field
	// Names holds flag names and enum cases.
	Names []string
	// Ok and Err are the arms of a result, nil when absent.
	Ok, Err *Type

	Resource ResourceID
	Mode     ResourceMode
}

// Convenience vars for the types without children.
var (
	Unknown = &Type{Kind: UnknownKind}
	Bool    = &Type{Kind: BoolKind}
	S8      = &Type{Kind: S8Kind}
	U8      = &Type{Kind: U8Kind}
	S16     = &Type{Kind: S16Kind}
	U16     = &Type{Kind: U16Kind}
	S32     = &Type{Kind: S32Kind}
	U32     = &Type{Kind: U32Kind}
	S64     = &Type{Kind: S64Kind}
	U64     = &Type{Kind: U64Kind}
	F32     = &Type{Kind: F32Kind}
	F64     = &Type{Kind: F64Kind}
	Chr     = &Type{Kind: ChrKind}
	Str     = &Type{Kind: StrKind}
)

func List(elem *Type) *Type {
	return &Type{Kind: ListKind, Elem: elem}
}

func Tuple(items ...*Type) *Type {
	return &Type{Kind: TupleKind, Elems: items}
}

func Record(fields ...Field) *Type {
	return &Type{Kind: RecordKind, Fields: fields}
}

func Flags(names ...string) *Type {
	return &Type{Kind: FlagsKind, Names: names}
}

func Enum(cases ...string) *Type {
	return &Type{Kind: EnumKind, Names: cases}
}

func Option(inner *Type) *Type {
	return &Type{Kind: OptionKind, Elem: inner}
}

// Result returns a result type. Either arm may be nil.
func Result(ok, err *Type) *Type {
	return &Type{Kind: ResultKind, Ok: ok, Err: err}
}

func Variant(cases ...Field) *Type {
	return &Type{Kind: VariantKind, Fields: cases}
}

func Resource(id ResourceID, mode ResourceMode) *Type {
	return &Type{Kind: ResourceKind, Resource: id, Mode: mode}
}

func Sequence(values ...*Type) *Type {
	return &Type{Kind: SequenceKind, Elems: values}
}

// Unit is the result of a function returning nothing.
func Unit() *Type {
	return &Type{Kind: SequenceKind}
}

// AllOf returns the conjunction of types. The members are flattened,
// unknown members are dropped and duplicates removed, keeping the first
// occurrence. ok is false when no member is left; a single member is
// returned as is.
func AllOf(types ...*Type) (t *Type, ok bool) {
	members := distinct(FlattenAllOf(types))
	switch len(members) {
	case 0:
		return nil, false
	case 1:
		return members[0], true
	}
	return &Type{Kind: AllOfKind, Elems: members}, true
}

// OneOf returns the disjunction of types, normalised like AllOf.
func OneOf(types ...*Type) (t *Type, ok bool) {
	members := distinct(FlattenOneOf(types))
	switch len(members) {
	case 0:
		return nil, false
	case 1:
		return members[0], true
	}
	return &Type{Kind: OneOfKind, Elems: members}, true
}

func (t *Type) IsUnknown() bool {
	return t == nil || t.Kind == UnknownKind
}

func (t *Type) IsNumber() bool {
	return t != nil && t.Kind.IsNumber()
}

func (t *Type) IsString() bool {
	return t != nil && t.Kind == StrKind
}

func (t *Type) IsOneOf() bool {
	return t != nil && t.Kind == OneOfKind
}

func (t *Type) IsAllOf() bool {
	return t != nil && t.Kind == AllOfKind
}

// IsUnit tells whether t is the empty sequence.
func (t *Type) IsUnit() bool {
	return t != nil && t.Kind == SequenceKind && len(t.Elems) == 0
}

// Field returns the type of the record field or variant case called name.
func (t *Type) Field(name string) (*Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.T, true
		}
	}
	return nil, false
}

// Equal tells whether t and u are structurally identical. A nil type is
// only equal to another nil type.
func Equal(t, u *Type) bool {
	if t == u {
		return true
	}
	if t == nil || u == nil || t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case ListKind, OptionKind:
		return Equal(t.Elem, u.Elem)
	case TupleKind, SequenceKind, OneOfKind, AllOfKind:
		return equalTypes(t.Elems, u.Elems)
	case RecordKind, VariantKind:
		if len(t.Fields) != len(u.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != u.Fields[i].Name || !Equal(t.Fields[i].T, u.Fields[i].T) {
				return false
			}
		}
		return true
	case FlagsKind, EnumKind:
		return equalNames(t.Names, u.Names)
	case ResultKind:
		return Equal(t.Ok, u.Ok) && Equal(t.Err, u.Err)
	case ResourceKind:
		return t.Resource == u.Resource && t.Mode == u.Mode
	}
	return true
}

func equalTypes(ts, us []*Type) bool {
	if len(ts) != len(us) {
		return false
	}
	for i := range ts {
		if !Equal(ts[i], us[i]) {
			return false
		}
	}
	return true
}

func equalNames(ns, ms []string) bool {
	if len(ns) != len(ms) {
		return false
	}
	for i := range ns {
		if ns[i] != ms[i] {
			return false
		}
	}
	return true
}

// contains tells whether t is structurally equal to one of types.
func contains(types []*Type, t *Type) bool {
	for _, u := range types {
		if Equal(u, t) {
			return true
		}
	}
	return false
}

// Hash is consistent with Equal, so that types can be stored in a go-set HashSet.
func (t *Type) Hash() uint64 {
	h := fnv.New64a()
	t.writeHash(h)
	return h.Sum64()
}

func (t *Type) writeHash(h hash.Hash64) {
	if t == nil {
		_, _ = h.Write([]byte{0xff})
		return
	}
	_, _ = h.Write([]byte{byte(t.Kind)})
	writeLen := func(n int) {
		_, _ = h.Write([]byte(strconv.Itoa(n) + ";"))
	}
	switch t.Kind {
	case ListKind, OptionKind:
		t.Elem.writeHash(h)
	case TupleKind, SequenceKind, OneOfKind, AllOfKind:
		writeLen(len(t.Elems))
		for _, e := range t.Elems {
			e.writeHash(h)
		}
	case RecordKind, VariantKind:
		writeLen(len(t.Fields))
		for _, f := range t.Fields {
			writeLen(len(f.Name))
			_, _ = h.Write([]byte(f.Name))
			f.T.writeHash(h)
		}
	case FlagsKind, EnumKind:
		writeLen(len(t.Names))
		for _, n := range t.Names {
			writeLen(len(n))
			_, _ = h.Write([]byte(n))
		}
	case ResultKind:
		t.Ok.writeHash(h)
		t.Err.writeHash(h)
	case ResourceKind:
		writeLen(int(t.Resource))
		_, _ = h.Write([]byte{byte(t.Mode)})
	}
}

func (t *Type) String() string {
	if t == nil {
		return "_"
	}
	switch t.Kind {
	case ListKind, OptionKind:
		return fmt.Sprintf("%s<%s>", t.Kind, t.Elem)
	case TupleKind:
		return "tuple<" + joinTypes(t.Elems, ", ") + ">"
	case SequenceKind:
		return "sequence(" + joinTypes(t.Elems, ", ") + ")"
	case OneOfKind:
		return "one-of(" + joinTypes(t.Elems, " | ") + ")"
	case AllOfKind:
		return "all-of(" + joinTypes(t.Elems, " & ") + ")"
	case RecordKind:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = f.Name + ": " + f.T.String()
		}
		return "record{" + strings.Join(fields, ", ") + "}"
	case VariantKind:
		cases := make([]string, len(t.Fields))
		for i, c := range t.Fields {
			cases[i] = c.Name
			if c.T != nil {
				cases[i] += "(" + c.T.String() + ")"
			}
		}
		return "variant{" + strings.Join(cases, ", ") + "}"
	case FlagsKind, EnumKind:
		return fmt.Sprintf("%s<%s>", t.Kind, strings.Join(t.Names, ", "))
	case ResultKind:
		switch {
		case t.Ok == nil && t.Err == nil:
			return "result"
		case t.Err == nil:
			return fmt.Sprintf("result<%s>", t.Ok)
		}
		return fmt.Sprintf("result<%s, %s>", t.Ok, t.Err)
	case ResourceKind:
		return fmt.Sprintf("handle<%d, %s>", t.Resource, t.Mode)
	}
	return t.Kind.String()
}

func joinTypes(types []*Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
