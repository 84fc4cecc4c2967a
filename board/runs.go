package board

import "strings"

type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// A Run is a maximal contiguous sequence of occupied-or-projected cells
// along one row or column, read as a single word. Runs are derived values:
// they are recomputed from the grid on demand and never persisted.
type Run struct {
	Text  string
	Start Coord
	Dir   Direction
	Cells []Coord
}

// Word returns the run's text. It satisfies lexicon.Worded.
func (r Run) Word() string { return r.Text }

// ContainsCell reports whether the coordinate lies within the run's span.
func (r Run) ContainsCell(row, col int) bool {
	for _, c := range r.Cells {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// ExtractRuns scans every row left-to-right and every column top-to-bottom
// and returns all runs of two or more cells, then a length-1 run for every
// node cell that landed in none of them. Lone tiles need their own run so
// the "must itself be an allowed word" rule has something to check, but
// emitting singletons from both scan directions would double them up.
func (g *Grid) ExtractRuns() []Run {
	var runs []Run
	inRun := make(map[Coord]bool)

	flush := func(span []Coord, dir Direction) {
		if len(span) < 2 {
			return
		}
		var sb strings.Builder
		for _, c := range span {
			sb.WriteString(g.EffectiveText(c.Row, c.Col))
			inRun[c] = true
		}
		runs = append(runs, Run{
			Text:  strings.ToLower(sb.String()),
			Start: span[0],
			Dir:   dir,
			Cells: append([]Coord(nil), span...),
		})
	}

	for r := 0; r < g.rows; r++ {
		var span []Coord
		for c := 0; c < g.cols; c++ {
			if g.IsNode(r, c) {
				span = append(span, Coord{r, c})
				continue
			}
			flush(span, Horizontal)
			span = span[:0]
		}
		flush(span, Horizontal)
	}

	for c := 0; c < g.cols; c++ {
		var span []Coord
		for r := 0; r < g.rows; r++ {
			if g.IsNode(r, c) {
				span = append(span, Coord{r, c})
				continue
			}
			flush(span, Vertical)
			span = span[:0]
		}
		flush(span, Vertical)
	}

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.IsNode(r, c) && !inRun[Coord{r, c}] {
				runs = append(runs, Run{
					Text:  strings.ToLower(g.EffectiveText(r, c)),
					Start: Coord{r, c},
					Dir:   Horizontal,
					Cells: []Coord{{r, c}},
				})
			}
		}
	}

	return runs
}

// RunContainsPlacement reports whether a placement at the given cell is
// carried by the run. Besides direct span membership, a placement on a
// portal cell counts as contained when its group has a member inside the
// run; the portal aliases the placement into the run's word.
func (g *Grid) RunContainsPlacement(run Run, row, col int) bool {
	if run.ContainsCell(row, col) {
		return true
	}
	cell := &g.cells[row][col]
	if cell.special != SpecialPortal {
		return false
	}
	for _, m := range g.portalGroups[cell.portalGroup] {
		if run.ContainsCell(m.Row, m.Col) {
			return true
		}
	}
	return false
}

// CoversGoal reports whether some run passes through the goal cell.
func (g *Grid) CoversGoal() bool {
	for _, run := range g.ExtractRuns() {
		if run.ContainsCell(g.goal.Row, g.goal.Col) {
			return true
		}
	}
	return false
}
