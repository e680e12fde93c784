package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

const decodeBufferSize = 4096

// Decode reads a stream of YAML or JSON documents from reader and returns
// the contained records in document order. Empty documents are skipped. List
// wrappers are returned as-is; callers flatten them with Flatten when they
// want the contained items.
//
// Numbers are decoded the way the Kubernetes API machinery decodes them,
// integers as int64 and fractions as float64, so decoded records compare
// cleanly against records served by a cluster.
func Decode(reader io.Reader) ([]*unstructured.Unstructured, error) {
	documents := utilyaml.NewYAMLReader(bufio.NewReaderSize(reader, decodeBufferSize))

	var records []*unstructured.Unstructured

	for {
		document, err := documents.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read manifest document: %w", err)
		}

		record, err := decodeDocument(document)
		if err != nil {
			return nil, err
		}

		if record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}

// decodeDocument decodes a single YAML or JSON document, returning nil for
// empty documents.
func decodeDocument(document []byte) (*unstructured.Unstructured, error) {
	jsonBytes, err := utilyaml.ToJSON(document)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest document: %w", err)
	}

	object := map[string]any{}

	err = utiljson.Unmarshal(jsonBytes, &object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest document: %w", err)
	}

	if len(object) == 0 {
		return nil, nil
	}

	return &unstructured.Unstructured{Object: object}, nil
}
