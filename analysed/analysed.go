// Package analysed describes the fully concrete types found when
// introspecting the exports of a WebAssembly component.
//
// Values of this package never carry partial knowledge: every type is
// resolved. They are the inbound side of type inference, see
// inferred.FromAnalysed.
package analysed

// Type is one of the concrete component interface types below.
type Type interface {
	isAnalysedType()
}

type (
	Bool struct{}
	S8   struct{}
	U8   struct{}
	S16  struct{}
	U16  struct{}
	S32  struct{}
	U32  struct{}
	S64  struct{}
	U64  struct{}
	F32  struct{}
	F64  struct{}
	Chr  struct{}
	Str  struct{}
)

type List struct {
	Inner Type
}

type Tuple struct {
	Items []Type
}

// NameType is a named record field.
type NameType struct {
	Name string
	Typ  Type
}

type Record struct {
	Fields []NameType
}

// Flags names are positional: a flags value is encoded as a vector of
// booleans zipped with Names.
type Flags struct {
	Names []string
}

type Enum struct {
	Cases []string
}

type Option struct {
	Inner Type
}

// Result arms are nil when absent.
type Result struct {
	Ok  Type
	Err Type
}

// NameOptionType is a variant case, Typ is nil for payload-less cases.
type NameOptionType struct {
	Name string
	Typ  Type
}

type Variant struct {
	Cases []NameOptionType
}

type ResourceID uint64

type ResourceMode uint8

const (
	Owned ResourceMode = iota
	Borrowed
)

// Handle refers to a resource exported by the component.
type Handle struct {
	ResourceID ResourceID
	Mode       ResourceMode
}

func (Bool) isAnalysedType()    {}
func (S8) isAnalysedType()      {}
func (U8) isAnalysedType()      {}
func (S16) isAnalysedType()     {}
func (U16) isAnalysedType()     {}
func (S32) isAnalysedType()     {}
func (U32) isAnalysedType()     {}
func (S64) isAnalysedType()     {}
func (U64) isAnalysedType()     {}
func (F32) isAnalysedType()     {}
func (F64) isAnalysedType()     {}
func (Chr) isAnalysedType()     {}
func (Str) isAnalysedType()     {}
func (List) isAnalysedType()    {}
func (Tuple) isAnalysedType()   {}
func (Record) isAnalysedType()  {}
func (Flags) isAnalysedType()   {}
func (Enum) isAnalysedType()    {}
func (Option) isAnalysedType()  {}
func (Result) isAnalysedType()  {}
func (Variant) isAnalysedType() {}
func (Handle) isAnalysedType()  {}

// Parameter is a named function argument.
type Parameter struct {
	Name string
	Typ  Type
}

// FunctionResult is one of the (possibly several) values a function returns.
// Name is empty for unnamed results.
type FunctionResult struct {
	Name string
	Typ  Type
}

// Function is an exported component function.
type Function struct {
	Name    string
	Params  []Parameter
	Results []FunctionResult
}
