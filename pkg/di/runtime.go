// Package di wires shared dependencies into command handlers via samber/do.
//
// A Runtime holds the base modules every command needs. Each Invoke creates a
// fresh injector scope, applies the base modules plus any extras, runs the
// handler, and shuts the scope down, so commands never share service state.
package di

import (
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency injection scope handed to command handlers.
type Injector = do.Injector

// Module registers one or more dependencies on an injector.
type Module func(Injector) error

// Runtime owns the base modules shared by root command and tests.
type Runtime struct {
	modules []Module
}

// New creates a runtime seeded with the given base modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the handler against a fresh injector. Base modules run first,
// then any extra modules, in order; nil modules are skipped. The injector is
// shut down when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer injector.Shutdown()

	for _, module := range r.modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	for _, module := range extra {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts an injector-aware handler into a cobra RunE.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
