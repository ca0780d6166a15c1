// Package notation converts between twist indices (0-17, as used by the
// movetable, fullcube and solver packages) and standard cube notation
// strings such as "R", "U'", "F2".
package notation

import (
	"fmt"
	"strings"
)

// faceLetters is indexed by twist%6: the face-axis-pole ordering the
// movetable package's symmetry tables use (F, R, U, B, L, D).
var faceLetters = [6]byte{'F', 'R', 'U', 'B', 'L', 'D'}

// faceIndex maps a face letter back to its twist%6 value.
var faceIndex = map[byte]uint8{
	'F': 0, 'R': 1, 'U': 2, 'B': 3, 'L': 4, 'D': 5,
}

// FormatTwist renders a twist index (0-17) in standard cube notation.
func FormatTwist(twist uint8) string {
	face := faceLetters[twist%6]
	switch twist / 6 {
	case 0:
		return string(face)
	case 1:
		return string(face) + "'"
	default:
		return string(face) + "2"
	}
}

// ParseTwist parses one notation token ("R", "U'", "F2") into a twist index.
func ParseTwist(s string) (uint8, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, false
	}

	face, ok := faceIndex[s[0]]
	if !ok {
		return 0, false
	}

	if len(s) == 1 {
		return face, true
	}

	switch s[1:] {
	case "'", "`":
		return face + 6, true
	case "2":
		return face + 12, true
	default:
		return 0, false
	}
}

// FormatSequence renders a slice of twists as a space-separated string.
func FormatSequence(twists []uint8) string {
	parts := make([]string, len(twists))
	for i, t := range twists {
		parts[i] = FormatTwist(t)
	}
	return strings.Join(parts, " ")
}

// ParseSequence parses a space-separated sequence of notation tokens.
// It returns an error naming the first unrecognized token rather than
// silently dropping it, since a scramble with a dropped move would no
// longer reproduce the state the caller intended.
func ParseSequence(s string) ([]uint8, error) {
	fields := strings.Fields(s)
	twists := make([]uint8, 0, len(fields))
	for _, f := range fields {
		twist, ok := ParseTwist(f)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, f)
		}
		twists = append(twists, twist)
	}
	return twists, nil
}
