// Package seed loads documents into indexes from YAML files and keeps them
// in sync when the files change.
package seed

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is the content of one seed file.
type File struct {
	Index string `yaml:"index" validate:"required"`
	// Backend is used when the file creates the index. Empty means the loader default.
	Backend   string     `yaml:"backend" validate:"omitempty,oneof=linear_map inverted_index"`
	Documents []Document `yaml:"documents" validate:"dive"`
}

// Document is a seeded document. Empty tags delete the document.
type Document struct {
	ID   string   `yaml:"id"`
	Tags []string `yaml:"tags"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates seed file content.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("validate seed: %w", err)
	}
	return f, nil
}

// ReadFile reads and parses a seed file.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
