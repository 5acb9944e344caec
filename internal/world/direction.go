package world

// Direction is one of the six axis-aligned unit offsets between neighbouring cells.
type Direction uint8

const (
	DirBackward Direction = iota // -Z
	DirForward                   // +Z
	DirRight                     // +X
	DirDown                      // -Y
	DirLeft                      // -X
	DirUp                        // +Y
)

// AllDirections is the fixed order used when meshing and when visiting neighbours.
var AllDirections = [6]Direction{DirBackward, DirForward, DirRight, DirDown, DirLeft, DirUp}

var directionOffsets = [6][3]int{
	DirBackward: {0, 0, -1},
	DirForward:  {0, 0, 1},
	DirRight:    {1, 0, 0},
	DirDown:     {0, -1, 0},
	DirLeft:     {-1, 0, 0},
	DirUp:       {0, 1, 0},
}

// Offset returns the unit vector of d.
func (d Direction) Offset() (dx, dy, dz int) {
	o := directionOffsets[d]
	return o[0], o[1], o[2]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case DirBackward:
		return DirForward
	case DirForward:
		return DirBackward
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	default:
		return DirDown
	}
}

func (d Direction) String() string {
	switch d {
	case DirBackward:
		return "backward"
	case DirForward:
		return "forward"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	}
	return "invalid"
}
