package mcp

import (
	"github.com/paperchat/paperchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Querier answers grounded questions over ingested documents.
	Querier driving.Querier

	// Ingestor runs the PDF ingestion pipeline.
	Ingestor driving.Ingestor

	// Documents exposes the document catalog.
	Documents driving.DocumentManager
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Querier == nil {
		return ErrMissingQuerier
	}
	// Ingestor and Documents are optional; their tools degrade gracefully.
	return nil
}
