// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "strings"

// Route identifies which execution path handles a turn.
type Route string

const (
	// RouteRAG retrieves from the therapeutic knowledge base before generating.
	RouteRAG Route = "RAG"
	// RouteWeb performs a web search for current or local information.
	RouteWeb Route = "WEB"
	// RouteDirect generates from the model alone.
	RouteDirect Route = "DIRECT"
)

// DefaultRoute is used whenever routing fails or produces an unknown label.
// DIRECT is the only path with no external dependency beyond the generator,
// which makes it the safest degradation target.
const DefaultRoute = RouteDirect

// ParseRoute normalizes a routing decision into one of the three closed
// routes. Whitespace and case are ignored. Anything unrecognized coerces to
// DefaultRoute; the bool reports whether the input was an exact match, so
// callers can record the coercion in turn metadata.
func ParseRoute(s string) (Route, bool) {
	switch Route(strings.ToUpper(strings.TrimSpace(s))) {
	case RouteRAG:
		return RouteRAG, true
	case RouteWeb:
		return RouteWeb, true
	case RouteDirect:
		return RouteDirect, true
	default:
		return DefaultRoute, false
	}
}
