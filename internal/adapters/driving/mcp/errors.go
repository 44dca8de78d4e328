// Package mcp provides an MCP (Model Context Protocol) server adapter for brandloop.
// It lets AI assistants run campaigns, record review decisions and inspect brand drift.
package mcp

import "errors"

var (
	// ErrMissingOrchestrators is returned when the orchestrator factory is not provided.
	ErrMissingOrchestrators = errors.New("mcp: orchestrator factory is required")

	// ErrMissingCampaignService is returned when the campaign service is not provided.
	ErrMissingCampaignService = errors.New("mcp: campaign service is required")

	// ErrServiceUnavailable is returned by tools whose optional service is not configured.
	ErrServiceUnavailable = errors.New("mcp: service not configured")
)
