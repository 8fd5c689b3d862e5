package level

import (
	"encoding/json"
	"fmt"
	"io"

	"cavern/pkg/engine/autotile"
)

// patternEntry is the on-disk form of a dictionary entry.
// Pattern rows use '#' wall, '.' revealed ground, ':' concealed ground, '?' any.
type patternEntry struct {
	Pattern    []string `json:"pattern"`
	Descriptor string   `json:"descriptor"`
}

// ParsePatterns reads a pattern dictionary. Entry order is kept.
func ParsePatterns(r io.Reader) (autotile.PatternMap, error) {
	var entries []patternEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding pattern dictionary: %w", err)
	}

	m := make(autotile.PatternMap, 0, len(entries))
	for i, e := range entries {
		p, err := autotile.ParsePattern(e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern entry %d (%s): %w", i, e.Descriptor, err)
		}
		m = append(m, autotile.Entry{Pattern: p, Descriptor: e.Descriptor})
	}
	if err := autotile.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}
