package patrol

// Heading is the direction the guard is facing.
type Heading uint8

const (
	North Heading = iota // ^
	East                 // >
	South                // v
	West                 // <
	headingCount         // sentinel
)

// Turn returns the next heading clockwise.
func (h Heading) Turn() Heading {
	return (h + 1) % headingCount
}

// Delta returns the (row, col) step for one move along h.
func (h Heading) Delta() (dr, dc int) {
	switch h {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Marker returns the grid character that encodes a guard facing h.
func (h Heading) Marker() byte {
	switch h {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	default:
		return '?'
	}
}

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// headingFromMarker maps a grid character to a heading.
func headingFromMarker(c byte) (Heading, bool) {
	switch c {
	case '^':
		return North, true
	case '>':
		return East, true
	case 'v':
		return South, true
	case '<':
		return West, true
	default:
		return 0, false
	}
}
