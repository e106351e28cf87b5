// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package search provides the web search collaborator for the WEB path.
package search

import "context"

// Searcher runs a web search and returns the results as one formatted text
// block ready to embed in a generator prompt.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}
