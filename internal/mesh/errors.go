package mesh

import "errors"

// Sentinel errors surfaced during hydration and graph access.
var (
	// ErrMalformedGraph is returned when a port references an unknown
	// region, or a region lacks a usable boundary for polygon operations.
	ErrMalformedGraph = errors.New("mesh: malformed graph")

	// ErrMissingRegion is returned when a connection references a region
	// id that is not in the graph.
	ErrMissingRegion = errors.New("mesh: missing region")

	// ErrInvalidConnection is returned for connections without usable
	// start or end regions.
	ErrInvalidConnection = errors.New("mesh: invalid connection")
)
