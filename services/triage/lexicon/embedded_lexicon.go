// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

/*
This file serves as the bridge between the build system and the runtime logic. It uses the Go
embed package to bake the emotion_lexicon.yaml file directly into the compiled binary. The
crisis keyword lists are safety-critical; embedding them guarantees they travel with the
executable and cannot be edited on the host filesystem without recompiling.
*/

package lexicon

import (
	_ "embed"
)

// EmotionLexicon holds the raw byte content of the 'emotion_lexicon.yaml' file.
//
// This variable is populated at compile-time using the Go 'embed' directive.
//
// Usage:
//
//	// Pass these bytes directly to yaml.Unmarshal
//	err := yaml.Unmarshal(lexicon.EmotionLexicon, &targetStruct)
//
//go:embed emotion_lexicon.yaml
var EmotionLexicon []byte
