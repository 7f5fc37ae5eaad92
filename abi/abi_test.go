package abi

import (
	"testing"

	"github.com/tetratelabs/wazero/api"
)

func TestLayout3D_Symbols(t *testing.T) {
	l := Layout3D()

	want := []string{
		"rawvector_new", "rawvector_zero", "rawvector_x", "rawvector_y", "rawvector_z", "__wbg_rawvector_free",
		"rawrotation_new", "rawrotation_identity", "rawrotation_x", "rawrotation_y", "rawrotation_z", "rawrotation_w", "__wbg_rawrotation_free",
	}
	got := l.Symbols()
	if len(got) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("symbol %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestLayout2D_Symbols(t *testing.T) {
	l := Layout2D()

	tests := []struct {
		name    string
		params  []api.ValueType
		results []api.ValueType
	}{
		{"rawvector_new", []api.ValueType{api.ValueTypeF32, api.ValueTypeF32}, []api.ValueType{api.ValueTypeI32}},
		{"rawvector_zero", nil, []api.ValueType{api.ValueTypeI32}},
		{"rawrotation_fromAngle", []api.ValueType{api.ValueTypeF32}, []api.ValueType{api.ValueTypeI32}},
		{"rawrotation_identity", nil, []api.ValueType{api.ValueTypeI32}},
		{"rawrotation_angle", []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeF32}},
		{"__wbg_rawrotation_free", []api.ValueType{api.ValueTypeI32}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := l.Lookup(tt.name)
			if !ok {
				t.Fatalf("%s not in layout", tt.name)
			}
			if !s.Matches(tt.params, tt.results) {
				t.Errorf("%s signature %s", tt.name, s.Signature())
			}
		})
	}

	if _, ok := l.Lookup("rawrotation_new"); ok {
		t.Error("2D layout must not export rawrotation_new")
	}
}

func TestSymbol_String(t *testing.T) {
	s, _ := Layout3D().Lookup("rawrotation_new")
	if got := s.String(); got != "rawrotation_new(f32, f32, f32, f32) -> u32" {
		t.Errorf("String() = %q", got)
	}
	if got := s.Signature(); got != "(f32,f32,f32,f32) -> (i32)" {
		t.Errorf("Signature() = %q", got)
	}
}

func TestRecord_Getters(t *testing.T) {
	r := Layout3D().Rotation
	for i, g := range r.Getters() {
		if g.Index != i || g.Field != r.Fields[i] || g.Op != OpGet {
			t.Errorf("getter %d = %+v", i, g)
		}
	}
	if r.Size() != 16 {
		t.Errorf("Size() = %d", r.Size())
	}
}

func TestForDim(t *testing.T) {
	for _, dim := range []int{2, 3} {
		l, ok := ForDim(dim)
		if !ok || l.Dim != dim {
			t.Errorf("ForDim(%d) = %v, %v", dim, l.Dim, ok)
		}
	}
	if _, ok := ForDim(4); ok {
		t.Error("ForDim(4) should fail")
	}
	if d := Default(); d.Dim != 2 && d.Dim != 3 {
		t.Errorf("Default().Dim = %d", d.Dim)
	}
}

func TestRecord_Optional(t *testing.T) {
	v := Layout3D().Vector

	setters := v.Setters()
	if len(setters) != 3 || setters[2].Name != "rawvector_set_z" {
		t.Fatalf("setters = %+v", setters)
	}
	if !setters[0].Matches([]api.ValueType{api.ValueTypeI32, api.ValueTypeF32}, nil) {
		t.Errorf("setter signature %s", setters[0].Signature())
	}

	sw := v.SwizzleSymbols()
	if len(sw) != 6 {
		t.Fatalf("got %d swizzles", len(sw))
	}
	s, ok := Layout3D().Lookup("rawvector_zxy")
	if !ok {
		t.Fatal("rawvector_zxy not found")
	}
	if want := []int{2, 0, 1}; s.Perm[0] != want[0] || s.Perm[1] != want[1] || s.Perm[2] != want[2] {
		t.Errorf("zxy perm = %v", s.Perm)
	}

	if got := Layout3D().Rotation.Optional(); len(got) != 0 {
		t.Errorf("rotation has optional exports %v", got)
	}
	if got := Layout2D().Vector.SwizzleSymbols(); len(got) != 0 {
		t.Errorf("2D vector swizzles %v", got)
	}
}

func TestRecord_InvalidSwizzle(t *testing.T) {
	r := Layout3D().Vector
	r.Swizzles = []string{"xxz", "xy", "xyw"}
	if got := r.SwizzleSymbols(); len(got) != 0 {
		t.Errorf("invalid swizzles accepted: %v", got)
	}
}
