package tileset

// Edge names a side of a cell. Top points toward increasing j.
type Edge int

const (
	// None means no side; used to propagate in all four directions.
	None   Edge = -1
	Right  Edge = 0
	Top    Edge = 1
	Left   Edge = 2
	Bottom Edge = 3
)

// Sides lists the four sides in propagation order.
var Sides = [4]Edge{Right, Top, Left, Bottom}

// Opposite returns the side facing e across a shared edge.
func (e Edge) Opposite() Edge {
	if e == None {
		return None
	}
	return (e + 2) & 3
}

// Offset returns the cell delta toward the neighbour on side e.
func (e Edge) Offset() (di, dj int) {
	switch e {
	case Right:
		return 1, 0
	case Top:
		return 0, 1
	case Left:
		return -1, 0
	case Bottom:
		return 0, -1
	default:
		return 0, 0
	}
}

func (e Edge) String() string {
	switch e {
	case Right:
		return "right"
	case Top:
		return "top"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}
