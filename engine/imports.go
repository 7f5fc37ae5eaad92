package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/rapier-go/errors"
)

// wasm-bindgen host import module
const (
	bindgenModule = "wbg"
	bindgenThrow  = "__wbindgen_throw"
)

// ThrowError is the panic value a guest raises through __wbindgen_throw.
type ThrowError struct {
	Message string
}

func (e *ThrowError) Error() string {
	return "guest threw: " + e.Message
}

// provideImports instantiates the host functions the module imports. Only
// the wasm-bindgen throw hook is supported; any other import is an error.
func (e *Engine) provideImports(ctx context.Context, compiled wazero.CompiledModule) error {
	var needThrow bool
	var unsupported []string

	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if module == bindgenModule && name == bindgenThrow {
			needThrow = true
			continue
		}
		unsupported = append(unsupported, module+"."+name)
	}

	if len(unsupported) > 0 {
		return errors.Unsupported(errors.PhaseLoad,
			fmt.Sprintf("host imports: %s", strings.Join(unsupported, ", ")))
	}
	if !needThrow {
		return nil
	}

	_, err := e.runtime.NewHostModuleBuilder(bindgenModule).
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, size uint32) {
			msg, ok := m.Memory().Read(ptr, size)
			if !ok {
				panic(&ThrowError{Message: fmt.Sprintf("<unreadable %d bytes at %d>", size, ptr)})
			}
			panic(&ThrowError{Message: string(msg)})
		}).
		Export(bindgenThrow).
		Instantiate(ctx)
	if err != nil {
		return errors.Load("instantiate host imports", err)
	}
	return nil
}
