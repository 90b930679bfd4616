package jsonld

import (
	"fmt"

	"schemagen/internal/config"
	"schemagen/internal/models"
)

// Processor validates a row and builds its document.
type Processor struct {
	validator *Validator
	builder   *Builder
}

// NewProcessor creates a new processor instance.
func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{
		validator: NewValidator(),
		builder:   NewBuilder(cfg),
	}
}

// Process transforms one row into a ProductGroup document.
func (p *Processor) Process(row *models.ProductRow) (*models.ProductGroup, error) {
	// 1. Validate the input row
	if err := p.validator.Validate(row); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Build the document
	doc, err := p.builder.Build(row)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	return doc, nil
}
