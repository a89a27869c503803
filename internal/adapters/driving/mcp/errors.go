// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Paperchat. It lets AI assistants ingest PDFs and ask grounded questions
// over them.
package mcp

import "errors"

// ErrMissingQuerier is returned when the query service is not provided.
var ErrMissingQuerier = errors.New("mcp: query service is required")
