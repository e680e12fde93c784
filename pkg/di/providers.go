package di

import (
	"github.com/devantler-tech/kubedrift/pkg/svc/collector"
	"github.com/devantler-tech/kubedrift/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers default implementations for timer and cluster collector factory.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideCollectorFactory,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideCollectorFactory registers the cluster collector factory dependency.
func provideCollectorFactory(i Injector) error {
	do.Provide(i, func(Injector) (collector.Factory, error) {
		return collector.DefaultFactory{}, nil
	})

	return nil
}
