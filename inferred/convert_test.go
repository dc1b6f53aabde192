package inferred

import (
	"testing"

	"github.com/golemcloud/rib/analysed"
	"github.com/stretchr/testify/assert"
)

func TestFromAnalysed(t *testing.T) {
	testCases := []struct {
		name     string
		typ      analysed.Type
		expected *Type
	}{
		{"bool", analysed.Bool{}, Bool},
		{"s8", analysed.S8{}, S8},
		{"u64", analysed.U64{}, U64},
		{"f32", analysed.F32{}, F32},
		{"char", analysed.Chr{}, Chr},
		{"string", analysed.Str{}, Str},
		{"list", analysed.List{Inner: analysed.U8{}}, List(U8)},
		{"tuple", analysed.Tuple{Items: []analysed.Type{analysed.U8{}, analysed.Str{}}}, Tuple(U8, Str)},
		{
			"record keeps the field order",
			analysed.Record{Fields: []analysed.NameType{{Name: "z", Typ: analysed.Bool{}}, {Name: "a", Typ: analysed.S32{}}}},
			Record(field("z", Bool), field("a", S32)),
		},
		{"flags", analysed.Flags{Names: []string{"r", "w"}}, Flags("r", "w")},
		{"enum", analysed.Enum{Cases: []string{"low", "high"}}, Enum("low", "high")},
		{"option", analysed.Option{Inner: analysed.F64{}}, Option(F64)},
		{"result", analysed.Result{Ok: analysed.U16{}}, Result(U16, nil)},
		{"result with both arms", analysed.Result{Ok: analysed.U16{}, Err: analysed.Str{}}, Result(U16, Str)},
		{
			"variant",
			analysed.Variant{Cases: []analysed.NameOptionType{{Name: "none"}, {Name: "some", Typ: analysed.S16{}}}},
			Variant(field("none", nil), field("some", S16)),
		},
		{"owned handle", analysed.Handle{ResourceID: 4}, Resource(4, Owned)},
		{"borrowed handle", analysed.Handle{ResourceID: 4, Mode: analysed.Borrowed}, Resource(4, Borrowed)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := FromAnalysed(tc.typ)
			assertType(t, tc.expected, actual)
			_, unresolved := UnResolved(actual)
			assert.False(t, unresolved)
		})
	}
}

func TestFromFunction(t *testing.T) {
	fn := analysed.Function{
		Name: "get-user",
		Params: []analysed.Parameter{
			{Name: "id", Typ: analysed.U64{}},
			{Name: "verbose", Typ: analysed.Bool{}},
		},
		Results: []analysed.FunctionResult{
			{Typ: analysed.Option{Inner: analysed.Str{}}},
		},
	}
	assertTypes(t, []*Type{U64, Bool}, FromFunctionParams(fn))
	assertType(t, Sequence(Option(Str)), FromFunctionResults(fn))

	assert.True(t, FromFunctionResults(analysed.Function{Name: "noop"}).IsUnit())
	assert.Empty(t, FromFunctionParams(analysed.Function{Name: "noop"}))
}
