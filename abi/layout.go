package abi

import "go.bytecodealliance.org/wit"

const freePrefix = "__wbg_"

// Record describes one handle type exported by the engine.
type Record struct {
	// Name is the exported type name, e.g. "rawvector".
	Name string
	// Fields lists the getters in storage order.
	Fields []string
	// Ctor is the suffix of the value constructor ("new" or "fromAngle").
	Ctor string
	// IdentityCtor is the suffix of the constructor taking no arguments.
	IdentityCtor string
	// Identity holds the field values IdentityCtor produces.
	Identity []float32
	// Swizzles lists the optional component reorderings, e.g. "yxz".
	Swizzles []string
	// Mutable records export optional per-field setters.
	Mutable bool
}

func (r Record) symbol(suffix string) string {
	return r.Name + "_" + suffix
}

// New returns the value constructor, taking one f32 per field.
func (r Record) New() Symbol {
	params := make([]wit.Type, len(r.Fields))
	for i := range params {
		params[i] = Scalar
	}
	return Symbol{
		Name:    r.symbol(r.Ctor),
		Record:  r.Name,
		Op:      OpNew,
		Params:  params,
		Results: []wit.Type{Pointer},
	}
}

// IdentityNew returns the argumentless constructor.
func (r Record) IdentityNew() Symbol {
	return Symbol{
		Name:    r.symbol(r.IdentityCtor),
		Record:  r.Name,
		Op:      OpIdentity,
		Results: []wit.Type{Pointer},
	}
}

// Getters returns one getter per field, in field order.
func (r Record) Getters() []Symbol {
	out := make([]Symbol, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = Symbol{
			Name:    r.symbol(f),
			Record:  r.Name,
			Field:   f,
			Index:   i,
			Op:      OpGet,
			Params:  []wit.Type{Pointer},
			Results: []wit.Type{Scalar},
		}
	}
	return out
}

// Free returns the destructor.
func (r Record) Free() Symbol {
	return Symbol{
		Name:   freePrefix + r.Name + "_free",
		Record: r.Name,
		Op:     OpFree,
		Params: []wit.Type{Pointer},
	}
}

// Setters returns the optional per-field setters, nil for immutable
// records.
func (r Record) Setters() []Symbol {
	if !r.Mutable {
		return nil
	}
	out := make([]Symbol, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = Symbol{
			Name:   r.symbol("set_" + f),
			Record: r.Name,
			Field:  f,
			Index:  i,
			Op:     OpSet,
			Params: []wit.Type{Pointer, Scalar},
		}
	}
	return out
}

// SwizzleSymbols returns the optional reordering constructors. Each takes
// a handle and returns a new one.
func (r Record) SwizzleSymbols() []Symbol {
	out := make([]Symbol, 0, len(r.Swizzles))
	for _, sw := range r.Swizzles {
		perm, ok := r.perm(sw)
		if !ok {
			continue
		}
		out = append(out, Symbol{
			Name:    r.symbol(sw),
			Record:  r.Name,
			Op:      OpSwizzle,
			Perm:    perm,
			Params:  []wit.Type{Pointer},
			Results: []wit.Type{Pointer},
		})
	}
	return out
}

// perm maps a swizzle such as "zxy" to field indices. Each field must
// appear exactly once.
func (r Record) perm(order string) ([]int, bool) {
	if len(order) != len(r.Fields) {
		return nil, false
	}
	perm := make([]int, len(order))
	seen := make([]bool, len(r.Fields))
	for i, c := range order {
		idx := -1
		for j, f := range r.Fields {
			if f == string(c) {
				idx = j
				break
			}
		}
		if idx < 0 || seen[idx] {
			return nil, false
		}
		seen[idx] = true
		perm[i] = idx
	}
	return perm, true
}

// Optional returns the exports an engine may omit.
func (r Record) Optional() []Symbol {
	return append(r.Setters(), r.SwizzleSymbols()...)
}

// Symbols returns every required export of the record.
func (r Record) Symbols() []Symbol {
	out := make([]Symbol, 0, len(r.Fields)+3)
	out = append(out, r.New(), r.IdentityNew())
	out = append(out, r.Getters()...)
	return append(out, r.Free())
}

// Size returns the number of bytes the fields occupy in guest memory.
func (r Record) Size() uint32 {
	return uint32(len(r.Fields)) * 4
}

// Layout is the export set for one dimensionality.
type Layout struct {
	Vector   Record
	Rotation Record
	Dim      int
}

// Records returns the vector and rotation records.
func (l Layout) Records() []Record {
	return []Record{l.Vector, l.Rotation}
}

// Symbols returns every export the engine must provide.
func (l Layout) Symbols() []Symbol {
	var out []Symbol
	for _, r := range l.Records() {
		out = append(out, r.Symbols()...)
	}
	return out
}

// OptionalSymbols returns the exports an engine may omit.
func (l Layout) OptionalSymbols() []Symbol {
	var out []Symbol
	for _, r := range l.Records() {
		out = append(out, r.Optional()...)
	}
	return out
}

// Lookup finds a required or optional symbol by export name.
func (l Layout) Lookup(name string) (Symbol, bool) {
	for _, s := range append(l.Symbols(), l.OptionalSymbols()...) {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// Layout2D returns the exports of the 2D engine.
func Layout2D() Layout {
	return Layout{
		Dim: 2,
		Vector: Record{
			Name:         "rawvector",
			Fields:       []string{"x", "y"},
			Ctor:         "new",
			IdentityCtor: "zero",
			Identity:     []float32{0, 0},
			Mutable:      true,
		},
		Rotation: Record{
			Name:         "rawrotation",
			Fields:       []string{"angle"},
			Ctor:         "fromAngle",
			IdentityCtor: "identity",
			Identity:     []float32{0},
		},
	}
}

// Layout3D returns the exports of the 3D engine.
func Layout3D() Layout {
	return Layout{
		Dim: 3,
		Vector: Record{
			Name:         "rawvector",
			Fields:       []string{"x", "y", "z"},
			Ctor:         "new",
			IdentityCtor: "zero",
			Identity:     []float32{0, 0, 0},
			Mutable:      true,
			Swizzles:     []string{"xyz", "yxz", "zxy", "xzy", "yzx", "zyx"},
		},
		Rotation: Record{
			Name:         "rawrotation",
			Fields:       []string{"x", "y", "z", "w"},
			Ctor:         "new",
			IdentityCtor: "identity",
			Identity:     []float32{0, 0, 0, 1},
		},
	}
}

// ForDim returns the layout for dim, or false if dim is neither 2 nor 3.
func ForDim(dim int) (Layout, bool) {
	switch dim {
	case 2:
		return Layout2D(), true
	case 3:
		return Layout3D(), true
	default:
		return Layout{}, false
	}
}
