package projection

import (
	"fmt"
	"strings"
)

// Direction is the viewing direction of the projection pyramid
type Direction int

const (
	// Up places the upright frame at the top of the canvas
	Up Direction = iota + 1
	// Down places the upright frame at the bottom of the canvas
	Down
)

// ParseDirection parses "up" or "down" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, fmt.Errorf("invalid direction %q: expected up or down", s)
	}
}

// String returns "up" or "down"
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
