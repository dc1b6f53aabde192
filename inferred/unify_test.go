package inferred

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifyTypes(t *testing.T) {
	testCases := []struct {
		name     string
		typ      *Type
		expected *Type
		err      string
	}{
		{
			name:     "nil",
			typ:      nil,
			expected: Unknown,
		},
		{
			name:     "scalar",
			typ:      Str,
			expected: Str,
		},
		{
			name:     "all-of of records",
			typ:      rawAllOf(Record(field("a", U8)), Record(field("b", Str))),
			expected: Record(field("a", U8), field("b", Str)),
		},
		{
			name:     "all-of of numbers stays ambiguous",
			typ:      rawAllOf(U32, U64),
			expected: rawAllOf(U32, U64),
		},
		{
			name: "contradicting all-of",
			typ:  rawAllOf(Str, Bool),
			err:  "type mismatch: inferred to be both string and bool",
		},
		{
			name:     "one-of of equal alternatives",
			typ:      rawOneOf(Record(field("a", U8)), Record(field("a", U8))),
			expected: Record(field("a", U8)),
		},
		{
			name:     "one-of of numbers is kept",
			typ:      rawOneOf(U8, U16),
			expected: rawOneOf(U8, U16),
		},
		{
			name: "one-of with a contradicting alternative",
			typ:  rawOneOf(U8, rawAllOf(Str, Bool)),
			err:  "type mismatch: inferred to be both string and bool",
		},
		{
			name: "lone contradicting alternative",
			typ:  rawOneOf(Unknown, rawAllOf(U16, Bool)),
			err:  "type mismatch: inferred to be both u16 and bool",
		},
		{
			name: "contradicting alternative nested in a result",
			typ:  Result(rawOneOf(rawAllOf(Bool, U32, U8), Unknown), nil),
			err:  "type mismatch: inferred to be both bool and u32",
		},
		{
			name:     "nested in a list",
			typ:      List(rawAllOf(Str, Str)),
			expected: List(Str),
		},
		{
			name:     "nested in a record",
			typ:      Record(field("a", rawAllOf(Option(Unknown), U8))),
			expected: Record(field("a", Option(U8))),
		},
		{
			name:     "nested in a variant",
			typ:      Variant(field("a", nil), field("b", rawOneOf(Str, Str))),
			expected: Variant(field("a", nil), field("b", Str)),
		},
		{
			name:     "nested in a result",
			typ:      Result(nil, rawAllOf(List(Unknown), List(Chr))),
			expected: Result(nil, List(Chr)),
		},
		{
			name: "error inside a tuple",
			typ:  Tuple(U8, rawAllOf(Tuple(U8), Tuple(U8, U8))),
			err:  "tuple lengths do not match: tuple<u8> and tuple<u8, u8>",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := UnifyTypes(tc.typ)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assertType(t, tc.expected, actual)
		})
	}
}

func TestUnifyTypesIsIdempotent(t *testing.T) {
	types := []*Type{
		rawAllOf(U32, U64),
		rawOneOf(U8, U16),
		rawOneOf(U8, rawAllOf(Str, Bool)),
		rawOneOf(Unknown, rawAllOf(U16, Bool)),
		Tuple(Option(U8), rawOneOf(Unknown, rawAllOf(U16, U16, Bool))),
		Record(field("a", rawAllOf(Option(Unknown), U8)), field("b", rawOneOf(Str, Str))),
		List(rawAllOf(Record(field("x", U8)), Record(field("y", Str)))),
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			once, err := UnifyTypes(typ)
			if err != nil {
				_, again := UnifyTypes(typ)
				assert.EqualError(t, again, err.Error())
				return
			}
			twice, err := UnifyTypes(once)
			assert.NoError(t, err)
			assertType(t, once, twice)
		})
	}
}

func TestUnifyAndVerify(t *testing.T) {
	testCases := []struct {
		name     string
		typ      *Type
		expected *Type
		err      string
	}{
		{
			name:     "resolved",
			typ:      rawAllOf(Record(field("a", U32), field("b", Unknown)), Record(field("b", Str), field("c", Bool))),
			expected: Record(field("a", U32), field("b", Str), field("c", Bool)),
		},
		{
			name: "ambiguous width",
			typ:  rawAllOf(U32, U64),
			err:  "cannot be all-of(u32 & u64)",
		},
		{
			name: "ambiguous alternatives",
			typ:  rawOneOf(U8, Str),
			err:  "cannot resolve one-of(u8 | string)",
		},
		{
			name: "unknown record field",
			typ:  Record(field("a", Unknown)),
			err:  "un-inferred type for field a in record: unknown type",
		},
		{
			name: "unification error",
			typ:  rawAllOf(Str, Bool),
			err:  "type mismatch: inferred to be both string and bool",
		},
		{
			name: "contradicting alternative is a mismatch, not an ambiguity",
			typ:  rawOneOf(Unknown, rawAllOf(U16, Bool)),
			err:  "type mismatch: inferred to be both u16 and bool",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := UnifyAndVerify(tc.typ)
			if tc.err != "" {
				var errs *Errors
				assert.ErrorAs(t, err, &errs)
				assert.EqualError(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assertType(t, tc.expected, actual)
		})
	}
}

func TestUnifyAccumulatedFacts(t *testing.T) {
	facts := []*Type{
		Record(field("name", Str)),
		rawOneOf(Record(field("age", U8)), Record(field("age", U8))),
		Record(field("tags", List(Unknown))),
		Record(field("tags", List(Str)), field("name", Str)),
	}
	acc := Unknown
	for _, fact := range facts {
		acc = Update(acc, fact)
	}
	actual, err := UnifyAndVerify(acc)
	assert.NoError(t, err)
	assertType(t, Record(field("age", U8), field("name", Str), field("tags", List(Str))), actual)
}
