package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/orgforge/orgforge/pkg/engine"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a batch document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engine.NewConfigurationError(fmt.Sprintf("failed to read batch document %s", path), err)
	}
	return Parse(data)
}

// Parse decodes and validates a batch document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty document is a valid, empty batch.
			return &Document{}, nil
		}
		return nil, engine.NewConfigurationError("failed to parse batch document", err)
	}

	if doc.EinsteinActivityCapture != nil && doc.ActivityCapture != nil {
		return nil, engine.NewConfigurationError(
			"einsteinActivityCapture and activityCapture are mutually exclusive", nil)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, engine.NewConfigurationError("batch document failed validation", err)
	}

	return &doc, nil
}
