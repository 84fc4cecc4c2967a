package board

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ToA1 formats a 0-indexed (row, col) position as a spreadsheet-style
// label: bijective base-26 column letters followed by the 1-indexed row
// number, so (0,0) is "A1" and (9,26) is "AA10". Used for diagnostics and
// shell input only; nothing in the rules depends on the format.
func ToA1(row, col int) string {
	letters := ""
	n := col + 1
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return fmt.Sprintf("%s%d", letters, row+1)
}

// FromA1 parses a spreadsheet-style label back into 0-indexed coordinates.
func FromA1(pos string) (row, col int, err error) {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	i := 0
	for i < len(pos) && pos[i] >= 'A' && pos[i] <= 'Z' {
		col = col*26 + int(pos[i]-'A') + 1
		i++
	}
	if i == 0 || i == len(pos) {
		return 0, 0, fmt.Errorf("%q is not a valid coordinate (expected e.g. B3)", pos)
	}
	for j := i; j < len(pos); j++ {
		if pos[j] < '0' || pos[j] > '9' {
			return 0, 0, fmt.Errorf("%q is not a valid coordinate (expected e.g. B3)", pos)
		}
		row = row*10 + int(pos[j]-'0')
	}
	if row == 0 {
		return 0, 0, fmt.Errorf("%q is not a valid coordinate (rows start at 1)", pos)
	}
	return row - 1, col - 1, nil
}

// CoordList renders coordinates as "A1, B1, C1" for failure messages.
func CoordList(cells []Coord) string {
	return strings.Join(lo.Map(cells, func(c Coord, _ int) string {
		return ToA1(c.Row, c.Col)
	}), ", ")
}
