// Package marshaller converts configuration models to and from their
// serialized representation.
package marshaller

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Marshaller converts models to and from a serialized representation.
type Marshaller[T any] interface {
	// Marshal serializes the model.
	Marshal(model T) (string, error)
	// Unmarshal deserializes data into the model.
	Unmarshal(data []byte, model *T) error
	// UnmarshalString deserializes a string into the model.
	UnmarshalString(data string, model *T) error
}

// YAMLMarshaller marshals models as YAML through their JSON field names, so
// the output matches the Kubernetes serialization of the same types.
type YAMLMarshaller[T any] struct{}

// NewYAMLMarshaller creates a YAML marshaller for the given model type.
func NewYAMLMarshaller[T any]() *YAMLMarshaller[T] {
	return &YAMLMarshaller[T]{}
}

// Marshal serializes the model as YAML.
func (m *YAMLMarshaller[T]) Marshal(model T) (string, error) {
	out, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal yaml: %w", err)
	}

	return string(out), nil
}

// Unmarshal deserializes YAML data into the model.
func (m *YAMLMarshaller[T]) Unmarshal(data []byte, model *T) error {
	err := yaml.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return nil
}

// UnmarshalString deserializes a YAML string into the model.
func (m *YAMLMarshaller[T]) UnmarshalString(data string, model *T) error {
	return m.Unmarshal([]byte(data), model)
}
