// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package retrieval fetches knowledge base passages for the RAG path.
package retrieval

import "context"

// Retriever returns up to topK passage texts relevant to the query, most
// relevant first. An empty slice with a nil error means the store had nothing
// relevant; the caller decides how to represent that to the generator.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}
