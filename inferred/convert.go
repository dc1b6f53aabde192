package inferred

import (
	"fmt"

	"github.com/golemcloud/rib/analysed"
)

// FromAnalysed converts a concrete component type. The result never holds
// unknown, one-of or all-of.
func FromAnalysed(at analysed.Type) *Type {
	switch at := at.(type) {
	case analysed.Bool:
		return Bool
	case analysed.S8:
		return S8
	case analysed.U8:
		return U8
	case analysed.S16:
		return S16
	case analysed.U16:
		return U16
	case analysed.S32:
		return S32
	case analysed.U32:
		return U32
	case analysed.S64:
		return S64
	case analysed.U64:
		return U64
	case analysed.F32:
		return F32
	case analysed.F64:
		return F64
	case analysed.Chr:
		return Chr
	case analysed.Str:
		return Str
	case analysed.List:
		return List(FromAnalysed(at.Inner))
	case analysed.Tuple:
		items := make([]*Type, len(at.Items))
		for i, item := range at.Items {
			items[i] = FromAnalysed(item)
		}
		return Tuple(items...)
	case analysed.Record:
		fields := make([]Field, len(at.Fields))
		for i, f := range at.Fields {
			fields[i] = Field{Name: f.Name, T: FromAnalysed(f.Typ)}
		}
		return Record(fields...)
	case analysed.Flags:
		return Flags(at.Names...)
	case analysed.Enum:
		return Enum(at.Cases...)
	case analysed.Option:
		return Option(FromAnalysed(at.Inner))
	case analysed.Result:
		return Result(fromOptional(at.Ok), fromOptional(at.Err))
	case analysed.Variant:
		cases := make([]Field, len(at.Cases))
		for i, c := range at.Cases {
			cases[i] = Field{Name: c.Name, T: fromOptional(c.Typ)}
		}
		return Variant(cases...)
	case analysed.Handle:
		mode := Owned
		if at.Mode == analysed.Borrowed {
			mode = Borrowed
		}
		return Resource(ResourceID(at.ResourceID), mode)
	}
	panic(fmt.Sprintf("unexpected analysed type %T", at))
}

func fromOptional(at analysed.Type) *Type {
	if at == nil {
		return nil
	}
	return FromAnalysed(at)
}

// FromFunctionResults returns the sequence of the types returned by fn,
// the unit type when fn returns nothing.
func FromFunctionResults(fn analysed.Function) *Type {
	values := make([]*Type, len(fn.Results))
	for i, r := range fn.Results {
		values[i] = FromAnalysed(r.Typ)
	}
	return Sequence(values...)
}

// FromFunctionParams returns the types of the arguments of fn, in order.
func FromFunctionParams(fn analysed.Function) []*Type {
	params := make([]*Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = FromAnalysed(p.Typ)
	}
	return params
}
