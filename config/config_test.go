package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	rerrors "github.com/wippyai/rapier-go/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty uses defaults",
			input: "",
			want:  *Default(),
		},
		{
			name: "wasm backend",
			input: `
backend: wasm
module: engine.wasm
memory_limit_pages: 256
checked: false
log:
  level: debug
  development: true
`,
			want: Config{
				Backend:          BackendWasm,
				Module:           "engine.wasm",
				MemoryLimitPages: 256,
				Checked:          false,
				Log:              Log{Level: "debug", Development: true},
			},
		},
		{
			name:  "dylib backend keeps default log",
			input: "backend: dylib\nlibrary: ./librapier3d.so\n",
			want: Config{
				Backend: BackendDylib,
				Library: "./librapier3d.so",
				Checked: true,
				Log:     Log{Level: "info"},
			},
		},
		{name: "wasm without module", input: "backend: wasm\n", wantErr: true},
		{name: "dylib without library", input: "backend: dylib\n", wantErr: true},
		{name: "unknown backend", input: "backend: cuda\n", wantErr: true},
		{name: "unknown key", input: "backend: reference\nthreads: 4\n", wantErr: true},
		{name: "bad level", input: "log:\n  level: loud\n", wantErr: true},
		{name: "too much memory", input: "memory_limit_pages: 70000\n", wantErr: true},
		{name: "malformed", input: "backend: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				var rerr *rerrors.Error
				if !errors.As(err, &rerr) || rerr.Phase != rerrors.PhaseConfig {
					t.Fatalf("expected config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marshal.yaml")
	if err := os.WriteFile(path, []byte("backend: reference\nchecked: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Backend != BackendReference || c.Checked {
		t.Errorf("got %+v", *c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Backend = BackendWasm
	c.Module = "rapier.wasm"

	data, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(%s): %v", data, err)
	}
	if *back != *c {
		t.Errorf("got %+v, want %+v", *back, *c)
	}
}

func TestLogger(t *testing.T) {
	for _, dev := range []bool{false, true} {
		c := Default()
		c.Log = Log{Level: "warn", Development: dev}

		l, err := c.Logger()
		if err != nil {
			t.Fatal(err)
		}
		if l.Core().Enabled(-1) {
			t.Errorf("development=%v: debug enabled at warn level", dev)
		}
		_ = l.Sync()
	}

	c := Default()
	c.Log.Level = "nope"
	if _, err := c.Logger(); err == nil {
		t.Error("expected error for invalid level")
	}
}
