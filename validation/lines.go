// Package validation checks routed scenes and their text drawings for defects.
package validation

import (
	"fmt"
	"strings"
)

// Line arms of a box-drawing character.
const (
	armN uint8 = 1 << iota
	armE
	armS
	armW
)

var lineArms = map[rune]uint8{
	'─': armE | armW, '│': armN | armS,
	'╶': armE, '╴': armW, '╵': armN, '╷': armS,
	'┌': armE | armS, '╭': armE | armS,
	'┐': armS | armW, '╮': armS | armW,
	'└': armN | armE, '╰': armN | armE,
	'┘': armN | armW, '╯': armN | armW,
	'├': armN | armE | armS, '┤': armN | armS | armW,
	'┬': armE | armS | armW, '┴': armN | armE | armW,
	'┼': armN | armE | armS | armW,
	// Arrowheads join the line behind them and the outline at their tip.
	'▶': armE | armW, '◀': armE | armW,
	'▲': armN | armS, '▼': armN | armS,
}

var asciiArms = map[rune]uint8{
	'-': armE | armW,
	'|': armN | armS,
	'+': armN | armE | armS | armW,
}

// LineValidator validates that rendered diagrams follow proper line drawing rules.
// A line arm may end in a space, text or any other non-line character, but when it
// reaches a line character that character must reach back.
type LineValidator struct {
	// AllowASCII treats -, | and + as line characters
	AllowASCII bool
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	X, Y    int
	Char    rune
	Context string
	Message string
}

// NewLineValidator creates a new validator with default settings.
func NewLineValidator() *LineValidator {
	return &LineValidator{}
}

func (v *LineValidator) arms(r rune) (uint8, bool) {
	if a, ok := lineArms[r]; ok {
		return a, true
	}
	if v.AllowASCII {
		a, ok := asciiArms[r]
		return a, ok
	}
	return 0, false
}

// Validate checks a rendered diagram for line drawing errors.
func (v *LineValidator) Validate(diagram string) []ValidationError {
	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	grid := make([][]rune, len(lines))
	for i, line := range lines {
		grid[i] = []rune(line)
	}
	at := func(x, y int) rune {
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			return ' '
		}
		return grid[y][x]
	}

	neighbours := []struct {
		arm, back uint8
		dx, dy    int
		name      string
	}{
		{armN, armS, 0, -1, "north"},
		{armE, armW, 1, 0, "east"},
		{armS, armN, 0, 1, "south"},
		{armW, armE, -1, 0, "west"},
	}

	var errs []ValidationError
	for y := range grid {
		for x, char := range grid[y] {
			arms, ok := v.arms(char)
			if !ok {
				continue
			}
			for _, n := range neighbours {
				if arms&n.arm == 0 {
					continue
				}
				other := at(x+n.dx, y+n.dy)
				otherArms, isLine := v.arms(other)
				if !isLine || otherArms&n.back != 0 {
					continue
				}
				errs = append(errs, ValidationError{
					X:       x,
					Y:       y,
					Char:    char,
					Context: fmt.Sprintf("%s=%c", n.name, other),
					Message: fmt.Sprintf("%s cannot connect to %c on the %s", describe(arms), other, n.name),
				})
			}
		}
	}
	return errs
}

func describe(arms uint8) string {
	switch arms {
	case armE | armW:
		return "Horizontal line"
	case armN | armS:
		return "Vertical line"
	case armN | armE | armS | armW:
		return "Cross"
	}
	switch n := countArms(arms); n {
	case 1:
		return "Line end"
	case 2:
		return "Corner"
	default:
		return "Tee"
	}
}

func countArms(arms uint8) int {
	n := 0
	for ; arms != 0; arms &= arms - 1 {
		n++
	}
	return n
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("(%d,%d) '%c' [%s]: %s", e.X, e.Y, e.Char, e.Context, e.Message)
}
