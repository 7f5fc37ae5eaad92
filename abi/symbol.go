package abi

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// Pointer is the WIT type of a handle on the wire.
var Pointer wit.Type = wit.U32{}

// Scalar is the WIT type of every record field.
var Scalar wit.Type = wit.F32{}

// Op identifies what a symbol does to a record.
type Op uint8

const (
	OpNew Op = iota
	OpIdentity
	OpGet
	OpFree
	OpSet
	OpSwizzle
)

func (o Op) String() string {
	switch o {
	case OpNew:
		return "new"
	case OpIdentity:
		return "identity"
	case OpGet:
		return "get"
	case OpFree:
		return "free"
	case OpSet:
		return "set"
	case OpSwizzle:
		return "swizzle"
	default:
		return "unknown"
	}
}

// Symbol is one exported engine function.
type Symbol struct {
	Name    string
	Record  string
	Field   string // set for getters and setters
	Params  []wit.Type
	Results []wit.Type
	Perm    []int // source field of each result field, for swizzles
	Op      Op
	Index   int // field index for getters and setters
}

// CoreParams returns the core wasm parameter types.
func (s Symbol) CoreParams() []api.ValueType {
	return coreTypes(s.Params)
}

// CoreResults returns the core wasm result types.
func (s Symbol) CoreResults() []api.ValueType {
	return coreTypes(s.Results)
}

// Signature formats the core signature as "(f32,f32) -> i32".
func (s Symbol) Signature() string {
	return FormatSignature(s.CoreParams(), s.CoreResults())
}

// String returns the symbol with its WIT signature.
func (s Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(TypeName(p))
	}
	b.WriteByte(')')
	if len(s.Results) > 0 {
		b.WriteString(" -> ")
		b.WriteString(TypeName(s.Results[0]))
	}
	return b.String()
}

// Matches reports whether the given core signature equals the symbol's.
func (s Symbol) Matches(params, results []api.ValueType) bool {
	return equalTypes(s.CoreParams(), params) && equalTypes(s.CoreResults(), results)
}

// CoreType maps a primitive WIT type to its core wasm value type.
func CoreType(t wit.Type) (api.ValueType, bool) {
	switch t.(type) {
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
		return api.ValueTypeI32, true
	case wit.U64, wit.S64:
		return api.ValueTypeI64, true
	case wit.F32:
		return api.ValueTypeF32, true
	case wit.F64:
		return api.ValueTypeF64, true
	default:
		return 0, false
	}
}

// TypeName returns the WIT spelling of a primitive type.
func TypeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return "?"
	}
}

// FormatSignature formats core parameter and result types.
func FormatSignature(params, results []api.ValueType) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteString(") -> (")
	for i, r := range results {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(api.ValueTypeName(r))
	}
	b.WriteByte(')')
	return b.String()
}

func coreTypes(ts []wit.Type) []api.ValueType {
	out := make([]api.ValueType, 0, len(ts))
	for _, t := range ts {
		if vt, ok := CoreType(t); ok {
			out = append(out, vt)
		}
	}
	return out
}

func equalTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
