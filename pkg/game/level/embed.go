package level

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cavern/pkg/engine/autotile"
)

//go:embed data/default.txt
var defaultLevel []byte

//go:embed data/patterns.json
var defaultPatterns []byte

// DefaultLevel returns the built-in landing site
func DefaultLevel() *Level {
	lvl, err := ParseLevel(bytes.NewReader(defaultLevel))
	if err != nil {
		panic("built-in level is invalid: " + err.Error())
	}
	lvl.Name = "default"
	return lvl
}

// DefaultPatterns returns the built-in pattern dictionary. It covers every
// wall topology, so it never reports an incomplete dictionary.
func DefaultPatterns() autotile.PatternMap {
	m, err := ParsePatterns(bytes.NewReader(defaultPatterns))
	if err != nil {
		panic("built-in pattern dictionary is invalid: " + err.Error())
	}
	return m
}

// LoadLevelFile reads a layout from disk
func LoadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level: %w", err)
	}
	defer f.Close()

	lvl, err := ParseLevel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lvl.Name = path
	return lvl, nil
}

// LoadPatternsFile reads a pattern dictionary from disk
func LoadPatternsFile(path string) (autotile.PatternMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pattern dictionary: %w", err)
	}
	defer f.Close()

	m, err := ParsePatterns(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
