package world

// Direction represents one of the eight neighbour offsets of a cell
type Direction int

// Direction constants. The direct directions come first, in the order
// neighbour queries report them.
const (
	North Direction = iota // (0,+1)
	South                  // (0,-1)
	East                   // (+1,0)
	West                   // (-1,0)
	SouthEast              // (+1,-1)
	NorthEast              // (+1,+1)
	NorthWest              // (-1,+1)
	SouthWest              // (-1,-1)
)

// DirectDirections returns the four directions actors may move in
func DirectDirections() []Direction {
	return []Direction{North, South, East, West}
}

// DiagonalDirections returns the four diagonal directions.
// Diagonals only matter for pattern matching, never for traversal.
func DiagonalDirections() []Direction {
	return []Direction{SouthEast, NorthEast, NorthWest, SouthWest}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	case SouthEast:
		return "SouthEast"
	case NorthEast:
		return "NorthEast"
	case NorthWest:
		return "NorthWest"
	case SouthWest:
		return "SouthWest"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight neighbour directions
func (d Direction) IsValid() bool {
	return d >= North && d <= SouthWest
}

// IsDiagonal returns true for the four diagonal directions
func (d Direction) IsDiagonal() bool {
	return d >= SouthEast && d <= SouthWest
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case SouthEast:
		return NorthWest
	case NorthWest:
		return SouthEast
	case NorthEast:
		return SouthWest
	case SouthWest:
		return NorthEast
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case SouthEast:
		return 1, -1
	case NorthEast:
		return 1, 1
	case NorthWest:
		return -1, 1
	case SouthWest:
		return -1, -1
	default:
		return 0, 0
	}
}
