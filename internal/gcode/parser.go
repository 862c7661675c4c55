package gcode

import (
	"bufio"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: positioning, no cutting
	MoveFeed                    // G1 in the XY plane: cutting
	MovePlunge                  // G1 with Z decreasing
	MoveRetract                 // Z increasing
)

func (m MoveType) String() string {
	switch m {
	case MoveFeed:
		return "feed"
	case MovePlunge:
		return "plunge"
	case MoveRetract:
		return "retract"
	default:
		return "rapid"
	}
}

// Move is a single parsed G0/G1 movement.
type Move struct {
	Line     int // 1-based source line
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length returns the XY distance travelled.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var wordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// Parse reads a program and returns its moves in order. It tracks absolute
// position and ignores every command other than G0 and G1.
func Parse(code string) []Move {
	var moves []Move
	x, y, z, feed := 0.0, 0.0, 0.0, 0.0

	sc := bufio.NewScanner(strings.NewReader(code))
	line := 0
	for sc.Scan() {
		line++
		text := strings.ToUpper(stripComment(sc.Text()))
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		rapid := fields[0] == "G0" || fields[0] == "G00"
		linear := fields[0] == "G1" || fields[0] == "G01"
		if !rapid && !linear {
			continue
		}

		nx, ny, nz, nf := x, y, z, feed
		for _, m := range wordRe.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				nx = v
			case "Y":
				ny = v
			case "Z":
				nz = v
			case "F":
				nf = v
			}
		}

		moves = append(moves, Move{
			Line:     line,
			Type:     classify(rapid, x, y, z, nx, ny, nz),
			FromX:    x,
			FromY:    y,
			FromZ:    z,
			ToX:      nx,
			ToY:      ny,
			ToZ:      nz,
			FeedRate: nf,
		})
		x, y, z, feed = nx, ny, nz, nf
	}
	return moves
}

func stripComment(s string) string {
	if i := strings.Index(s, ";"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "("); i >= 0 {
		if j := strings.Index(s[i:], ")"); j >= 0 {
			s = s[:i] + s[i+j+1:]
		} else {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

func classify(rapid bool, fx, fy, fz, tx, ty, tz float64) MoveType {
	dz := tz - fz
	xy := fx != tx || fy != ty
	switch {
	case dz > 0.001 && !xy:
		return MoveRetract
	case rapid:
		return MoveRapid
	case dz < -0.001 && !xy:
		return MovePlunge
	default:
		return MoveFeed
	}
}

// Stats summarises a parsed program.
type Stats struct {
	Moves       int     `json:"moves"`
	CutLength   float64 `json:"cut_length"`   // mm travelled while cutting
	RapidLength float64 `json:"rapid_length"` // mm travelled at rapid
	Plunges     int     `json:"plunges"`
	MaxDepth    float64 `json:"max_depth"` // deepest Z below zero, positive
}

// Summarize computes travel and depth figures for a move list.
func Summarize(moves []Move) Stats {
	s := Stats{Moves: len(moves)}
	for _, m := range moves {
		switch m.Type {
		case MoveFeed:
			s.CutLength += m.Length()
		case MoveRapid:
			s.RapidLength += m.Length()
		case MovePlunge:
			s.Plunges++
		}
		if -m.ToZ > s.MaxDepth {
			s.MaxDepth = -m.ToZ
		}
	}
	return s
}
