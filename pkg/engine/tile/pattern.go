package tile

// Pattern is one position of a pattern dictionary entry.
// It is either a concrete Tile or the Any wildcard.
type Pattern struct {
	any  bool
	tile Tile
}

// AnyPattern returns the wildcard pattern
func AnyPattern() Pattern {
	return Pattern{any: true}
}

// PatternOf returns a pattern that stands for the given tile
func PatternOf(t Tile) Pattern {
	return Pattern{tile: t}
}

// IsAny returns true for the wildcard
func (p Pattern) IsAny() bool {
	return p.any
}

// Tile returns the concrete tile of a non-wildcard pattern
func (p Pattern) Tile() (Tile, bool) {
	if p.any {
		return Tile{}, false
	}
	return p.tile, true
}

// Matches compares the pattern against a live tile with Eq
func (p Pattern) Matches(t Tile) bool {
	return Eq(p, PatternOf(t))
}

func (p Pattern) String() string {
	if p.any {
		return "Any"
	}
	return p.tile.String()
}

// rock reports whether the tile renders as solid rock.
// Concealed ground looks like a wall until it is revealed.
func rock(t Tile) bool {
	return t.IsWall() || t.IsConcealed()
}

// Eq is the pattern equality used by autotiling. It is not value equality:
// walls match walls whatever their breakable/ore data, concealed ground
// matches walls, and Any matches everything. Two concealed grounds never
// match, nor does revealed ground with anything but revealed ground.
func Eq(a, b Pattern) bool {
	if a.any || b.any {
		return true
	}
	if a.tile.IsWall() || b.tile.IsWall() {
		return rock(a.tile) && rock(b.tile)
	}
	return !a.tile.IsConcealed() && !b.tile.IsConcealed()
}
