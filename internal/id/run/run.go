// Package run provides scrape run identifiers.
package run

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates UUID v7 strings used to correlate the log lines of a
// single scrape run.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a UUID7 string.
func (Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid7: %w", err)
	}
	return id.String(), nil
}
