package inferred

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnResolved(t *testing.T) {
	testCases := []struct {
		name       string
		typ        *Type
		unresolved bool
		msg        string
	}{
		{name: "scalar", typ: U8},
		{name: "unknown", typ: Unknown, unresolved: true, msg: "unknown type"},
		{name: "one-of", typ: rawOneOf(U8, U16), unresolved: true, msg: "cannot resolve one-of(u8 | u16)"},
		{name: "all-of", typ: rawAllOf(U8, U16), unresolved: true, msg: "cannot be all-of(u8 & u16)"},
		{name: "list of unknown", typ: List(Unknown), unresolved: true, msg: "unknown type"},
		{name: "tuple", typ: Tuple(U8, Option(rawOneOf(Str, Chr))), unresolved: true, msg: "cannot resolve one-of(string | char)"},
		{
			name:       "record field",
			typ:        Record(field("a", U8), field("b", List(Unknown))),
			unresolved: true,
			msg:        "un-inferred type for field b in record: unknown type",
		},
		{
			name:       "record field without a type",
			typ:        Record(field("a", nil)),
			unresolved: true,
			msg:        "un-inferred type for field a in record: unknown type",
		},
		{name: "variant without payloads", typ: Variant(field("a", nil), field("b", nil))},
		{name: "variant payload", typ: Variant(field("a", nil), field("b", Unknown)), unresolved: true, msg: "unknown type"},
		{name: "result with a resolved ok arm", typ: Result(U8, Unknown)},
		{name: "result with a resolved err arm", typ: Result(Unknown, Str)},
		{name: "result with only an unresolved arm", typ: Result(Unknown, nil), unresolved: true, msg: "unknown type"},
		{name: "result with two unresolved arms", typ: Result(rawOneOf(U8, U16), Unknown), unresolved: true, msg: "cannot resolve one-of(u8 | u16)"},
		{name: "unit", typ: Unit()},
		{name: "resource", typ: Resource(2, Borrowed)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, unresolved := UnResolved(tc.typ)
			assert.Equal(t, tc.unresolved, unresolved)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestTypeCheck(t *testing.T) {
	testCases := []struct {
		name string
		typ  *Type
		err  string
	}{
		{name: "nil", typ: nil},
		{name: "scalar", typ: Str},
		{name: "numeric one-of", typ: rawOneOf(U8, U16)},
		{name: "mixed one-of", typ: rawOneOf(U8, Str), err: "ambiguous type one-of(u8 | string)"},
		{name: "numeric all-of", typ: rawAllOf(U32, U64)},
		{name: "records with other fields", typ: rawAllOf(Record(field("a", U8)), Record(field("b", Str)))},
		{name: "incompatible all-of", typ: rawAllOf(U8, Str), err: "incompatible types: all-of(u8 & string)"},
		{name: "optional and bare", typ: rawAllOf(Option(Str), Str)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := TypeCheck(tc.typ)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTypeCheckIsWeakerThanUnResolved(t *testing.T) {
	typ := rawOneOf(U8, U16)
	assert.NoError(t, TypeCheck(typ))
	_, unresolved := UnResolved(typ)
	assert.True(t, unresolved)
}

func TestAreCompatible(t *testing.T) {
	testCases := []struct {
		name       string
		a, b       *Type
		compatible bool
	}{
		{"unknown", Unknown, Record(field("a", U8)), true},
		{"numbers", U8, F64, true},
		{"number and string", U8, Str, false},
		{"option and bare", Option(U8), U8, true},
		{"option and other bare", Option(U8), Str, false},
		{"records with a common field", Record(field("a", U8)), Record(field("a", Str)), false},
		{"records without common fields", Record(field("a", U8)), Record(field("b", Str)), true},
		{"variant payload presence", Variant(field("a", U8)), Variant(field("a", nil)), false},
		{"result arms", Result(U8, nil), Result(nil, Str), true},
		{"tuple lengths", Tuple(U8), Tuple(U8, U8), false},
		{"lists", List(Unknown), List(Str), true},
		{"one-of and member", rawOneOf(U8, Str), Str, true},
		{"one-of and non member", rawOneOf(U8, Str), Bool, false},
		{"overlapping one-ofs", rawOneOf(U8, Str), rawOneOf(Bool, Str), true},
		{"disjoint one-ofs", rawOneOf(U8, Str), rawOneOf(Bool, Chr), false},
		{"all-of within one-of", rawAllOf(U8, U16), rawOneOf(U8, U16, U32), true},
		{"all-of outside one-of", rawAllOf(U8, Str), rawOneOf(U8, U16), false},
		{"all-of and compatible type", rawAllOf(Record(field("a", U8)), Record(field("b", Str))), Record(field("a", U8)), true},
		{"all-of and incompatible type", rawAllOf(Record(field("a", U8))), Record(field("a", Bool)), false},
		{"enums", Enum("a"), Enum("b"), false},
		{"resources", Resource(1, Owned), Resource(1, Owned), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.compatible, AreCompatible(tc.a, tc.b))
			assert.Equal(t, tc.compatible, AreCompatible(tc.b, tc.a))
		})
	}
}
