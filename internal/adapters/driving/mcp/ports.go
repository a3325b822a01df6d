package mcp

import (
	"github.com/traceleaf/docrag/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline answers questions and rebuilds the index.
	Pipeline driving.Pipeline
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipeline
	}
	return nil
}
