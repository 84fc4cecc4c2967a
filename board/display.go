package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the grid for a terminal. Seeds and committed
// fragments are uppercase, staged fragments lowercase, portal projections
// bracketed; "#" is blocked, ":x" an empty portal of group x, "*" marks
// the goal cell and "." is plain empty.
func (g *Grid) ToDisplayText() string {
	width := 3
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if l := len(g.EffectiveText(r, c)) + 2; l > width {
				width = l
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("\n    ")
	for c := 0; c < g.cols; c++ {
		letters := ToA1(0, c)
		sb.WriteString(pad(letters[:len(letters)-1], width))
	}
	sb.WriteString("\n    ")
	sb.WriteString(strings.Repeat("-", g.cols*width))
	sb.WriteString("\n")
	for r := 0; r < g.rows; r++ {
		sb.WriteString(fmt.Sprintf("%2d |", r+1))
		for c := 0; c < g.cols; c++ {
			sb.WriteString(pad(g.cellGlyph(r, c), width))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("    ")
	sb.WriteString(strings.Repeat("-", g.cols*width))
	sb.WriteString("\n")
	return sb.String()
}

func (g *Grid) cellGlyph(row, col int) string {
	cell := &g.cells[row][col]
	switch {
	case cell.special == SpecialBlocked:
		return "#"
	case cell.IsOccupied():
		if cell.kind == StagedCell {
			return strings.ToLower(cell.text)
		}
		return strings.ToUpper(cell.text)
	}
	if p := g.ProjectedText(row, col); p != "" {
		return "[" + strings.ToLower(p) + "]"
	}
	if cell.special == SpecialPortal {
		return ":" + strings.ToLower(cell.portalGroup)
	}
	if g.goal.Row == row && g.goal.Col == col {
		return "*"
	}
	return "."
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
