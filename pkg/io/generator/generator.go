// Package generator defines the contract for configuration file generators.
package generator

// Generator is implemented by configuration generators. The Options type
// parameter allows each implementation to define its own options structure.
type Generator[T any, Options any] interface {
	Generate(model T, opts Options) (string, error)
}
