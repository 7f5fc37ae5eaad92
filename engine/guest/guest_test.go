package guest

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/rapier-go/abi"
)

func instantiate(t *testing.T, l abi.Layout, opts Options) api.Module {
	t.Helper()
	ctx := context.Background()

	bin, err := Build(l, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	return mod
}

func call(t *testing.T, mod api.Module, name string, params ...uint64) []uint64 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("export %s missing", name)
	}
	res, err := fn.Call(context.Background(), params...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func live(t *testing.T, mod api.Module) uint32 {
	return api.DecodeU32(call(t, mod, LiveCount)[0])
}

func TestBuild_ExportsMatchLayout(t *testing.T) {
	for _, l := range []abi.Layout{abi.Layout2D(), abi.Layout3D()} {
		mod := instantiate(t, l, Options{})
		defs := mod.ExportedFunctionDefinitions()

		for _, s := range append(l.Symbols(), l.OptionalSymbols()...) {
			def, ok := defs[s.Name]
			if !ok {
				t.Errorf("dim %d: %s not exported", l.Dim, s.Name)
				continue
			}
			if !s.Matches(def.ParamTypes(), def.ResultTypes()) {
				t.Errorf("dim %d: %s has %s, want %s", l.Dim, s.Name,
					abi.FormatSignature(def.ParamTypes(), def.ResultTypes()), s.Signature())
			}
		}
		if mod.ExportedMemory("memory") == nil {
			t.Errorf("dim %d: memory not exported", l.Dim)
		}
	}
}

func TestBuild_VectorRoundTrip3D(t *testing.T) {
	mod := instantiate(t, abi.Layout3D(), Options{})

	ptr := call(t, mod, "rawvector_new", api.EncodeF32(1), api.EncodeF32(-2), api.EncodeF32(3.5))[0]
	if ptr == 0 {
		t.Fatal("constructor returned the absent handle")
	}

	for name, want := range map[string]float32{"rawvector_x": 1, "rawvector_y": -2, "rawvector_z": 3.5} {
		if got := api.DecodeF32(call(t, mod, name, ptr)[0]); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	if n := live(t, mod); n != 1 {
		t.Fatalf("live = %d", n)
	}

	call(t, mod, "__wbg_rawvector_free", ptr)
	if n := live(t, mod); n != 0 {
		t.Fatalf("live after free = %d", n)
	}
}

func TestBuild_Setters(t *testing.T) {
	mod := instantiate(t, abi.Layout3D(), Options{})

	ptr := call(t, mod, "rawvector_zero")[0]
	call(t, mod, "rawvector_set_y", ptr, api.EncodeF32(7))
	call(t, mod, "rawvector_set_z", ptr, api.EncodeF32(-1))

	for name, want := range map[string]float32{"rawvector_x": 0, "rawvector_y": 7, "rawvector_z": -1} {
		if got := api.DecodeF32(call(t, mod, name, ptr)[0]); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestBuild_Swizzle(t *testing.T) {
	mod := instantiate(t, abi.Layout3D(), Options{})

	src := call(t, mod, "rawvector_new", api.EncodeF32(1), api.EncodeF32(2), api.EncodeF32(3))[0]

	tests := []struct {
		name string
		want [3]float32
	}{
		{"rawvector_xyz", [3]float32{1, 2, 3}},
		{"rawvector_yxz", [3]float32{2, 1, 3}},
		{"rawvector_zxy", [3]float32{3, 1, 2}},
		{"rawvector_xzy", [3]float32{1, 3, 2}},
		{"rawvector_yzx", [3]float32{2, 3, 1}},
		{"rawvector_zyx", [3]float32{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := call(t, mod, tt.name, src)[0]
			if dst == 0 || dst == src {
				t.Fatalf("swizzle returned %d for source %d", dst, src)
			}
			for i, getter := range []string{"rawvector_x", "rawvector_y", "rawvector_z"} {
				if got := api.DecodeF32(call(t, mod, getter, dst)[0]); got != tt.want[i] {
					t.Errorf("%s = %v, want %v", getter, got, tt.want[i])
				}
			}
			call(t, mod, "__wbg_rawvector_free", dst)
		})
	}

	if n := live(t, mod); n != 1 {
		t.Errorf("live = %d, want 1", n)
	}
}

func TestBuild_Identity(t *testing.T) {
	mod := instantiate(t, abi.Layout3D(), Options{})

	ptr := call(t, mod, "rawrotation_identity")[0]
	want := []float32{0, 0, 0, 1}
	for i, g := range []string{"rawrotation_x", "rawrotation_y", "rawrotation_z", "rawrotation_w"} {
		if got := api.DecodeF32(call(t, mod, g, ptr)[0]); got != want[i] {
			t.Errorf("%s = %v, want %v", g, got, want[i])
		}
	}

	mod2 := instantiate(t, abi.Layout2D(), Options{})
	ptr = call(t, mod2, "rawrotation_fromAngle", api.EncodeF32(1.5708))[0]
	if got := api.DecodeF32(call(t, mod2, "rawrotation_angle", ptr)[0]); got != 1.5708 {
		t.Errorf("angle = %v", got)
	}
}

func TestBuild_FreeListReuse(t *testing.T) {
	mod := instantiate(t, abi.Layout3D(), Options{})

	a := call(t, mod, "rawvector_zero")[0]
	b := call(t, mod, "rawvector_zero")[0]
	if a == b {
		t.Fatal("live blocks share a pointer")
	}
	if a != HeapBase {
		t.Errorf("first pointer = %d, want %d", a, HeapBase)
	}

	call(t, mod, "__wbg_rawvector_free", a)
	c := call(t, mod, "rawrotation_identity")[0]
	if c != a {
		t.Errorf("freed block not reused: got %d, want %d", c, a)
	}
}

func TestBuild_FreeNullIsNoop(t *testing.T) {
	mod := instantiate(t, abi.Layout2D(), Options{})
	call(t, mod, "__wbg_rawvector_free", 0)
	if n := live(t, mod); n != 0 {
		t.Fatalf("live = %d", n)
	}
}

func TestBuild_ExhaustionTraps(t *testing.T) {
	mod := instantiate(t, abi.Layout2D(), Options{})
	fn := mod.ExportedFunction("rawvector_zero")
	ctx := context.Background()

	for i := 0; i < Capacity(1); i++ {
		if _, err := fn.Call(ctx); err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
	}
	if _, err := fn.Call(ctx); err == nil {
		t.Fatal("allocation past capacity should trap")
	}
}

func TestBuild_InvalidOptions(t *testing.T) {
	if _, err := Build(abi.Layout3D(), Options{Pages: MaxPages + 1}); err == nil {
		t.Error("expected error for oversized memory")
	}

	l := abi.Layout3D()
	l.Rotation.Fields = append(l.Rotation.Fields, "extra")
	if _, err := Build(l, Options{}); err == nil {
		t.Error("expected error for record larger than a block")
	}
}

func TestModule_Cached(t *testing.T) {
	a, b := Module(), Module()
	if len(a) == 0 || &a[0] != &b[0] {
		t.Fatal("Module should build once")
	}
}

func TestCapacity(t *testing.T) {
	if got := Capacity(0); got != Capacity(1) {
		t.Errorf("Capacity(0) = %d", got)
	}
	if got := Capacity(1); got != 4095 {
		t.Errorf("Capacity(1) = %d", got)
	}
}
