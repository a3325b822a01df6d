// Package mcp provides an MCP (Model Context Protocol) server adapter
// for docrag. It lets AI assistants ask questions against the indexed
// documentation corpus.
package mcp

import "errors"

// ErrMissingPipeline is returned when the pipeline is not provided.
var ErrMissingPipeline = errors.New("mcp: pipeline is required")
