package validate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yannh/kubeconform/pkg/validator"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// Options configures schema validation.
type Options struct {
	// Strict rejects properties that are not part of the schema.
	Strict bool

	// IgnoreMissingSchemas treats records without a known schema as valid
	// instead of reporting them.
	IgnoreMissingSchemas bool

	// SkipKinds lists kinds that are never validated.
	SkipKinds []string

	// SchemaLocations lists schema registries to resolve schemas from.
	// An empty list uses the default registry.
	SchemaLocations []string
}

// Finding reports a single record that failed validation.
type Finding struct {
	// Source names the rendered path the record came from.
	Source string

	// Subject identifies the record, such as "ConfigMap default/settings".
	Subject string

	// Message explains why validation failed.
	Message string
}

// Service validates rendered records against their schemas.
type Service struct {
	validator validator.Validator
}

// NewService creates a validation service for the given options.
func NewService(opts Options) (*Service, error) {
	skipKinds := make(map[string]struct{}, len(opts.SkipKinds))
	for _, kind := range opts.SkipKinds {
		skipKinds[kind] = struct{}{}
	}

	schemaValidator, err := validator.New(opts.SchemaLocations, validator.Opts{
		Strict:               opts.Strict,
		IgnoreMissingSchemas: opts.IgnoreMissingSchemas,
		SkipKinds:            skipKinds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schema validator: %w", err)
	}

	return &Service{validator: schemaValidator}, nil
}

// ValidateRecords checks every record against its schema and returns one
// finding per failure. The source labels findings for display.
func (s *Service) ValidateRecords(source string, records []*unstructured.Unstructured) ([]Finding, error) {
	stream, err := encodeRecords(records)
	if err != nil {
		return nil, err
	}

	results := s.validator.Validate(source, io.NopCloser(bytes.NewReader(stream)))

	var findings []Finding

	for _, result := range results {
		if result.Status != validator.Invalid && result.Status != validator.Error {
			continue
		}

		findings = append(findings, Finding{
			Source:  source,
			Subject: resultSubject(result),
			Message: resultMessage(result),
		})
	}

	return findings, nil
}

// encodeRecords serializes records into a multi-document YAML stream.
func encodeRecords(records []*unstructured.Unstructured) ([]byte, error) {
	var stream bytes.Buffer

	for index, record := range records {
		document, err := yaml.Marshal(record.Object)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize record %s: %w", record.GetName(), err)
		}

		if index > 0 {
			stream.WriteString("---\n")
		}

		stream.Write(document)
	}

	return stream.Bytes(), nil
}

func resultSubject(result validator.Result) string {
	signature, err := result.Resource.Signature()
	if err != nil || signature == nil {
		return "unknown"
	}

	if signature.Namespace != "" {
		return fmt.Sprintf("%s %s/%s", signature.Kind, signature.Namespace, signature.Name)
	}

	return fmt.Sprintf("%s %s", signature.Kind, signature.Name)
}

func resultMessage(result validator.Result) string {
	if result.Err == nil {
		return "validation failed"
	}

	return result.Err.Error()
}
