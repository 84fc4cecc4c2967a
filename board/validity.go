package board

import (
	"fmt"

	"github.com/mariogerardi/wordgrid/lexicon"
)

// maxCitedCells caps how many disconnected cells a failure message names.
const maxCitedCells = 6

// Validate is the authoritative whole-board check. It returns nil when the
// board is valid, else an error whose message cites A1 coordinates. Checks
// run in a fixed order (disallowed words first, then lone tiles, then
// connectivity) and the first failure is returned, so callers surface one
// problem at a time.
func (g *Grid) Validate(words *lexicon.Allowlist) error {
	runs := g.ExtractRuns()

	covered := make(map[Coord]bool)
	for _, run := range runs {
		if len(run.Cells) < 2 {
			continue
		}
		if !words.Contains(run.Text) {
			return fmt.Errorf("%q is not an allowed word (%s)", run.Text, CoordList(run.Cells))
		}
		for _, c := range run.Cells {
			covered[c] = true
		}
	}

	// Every real tile outside a valid multi-cell run must itself read as
	// an allowed word.
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := &g.cells[r][c]
			if !cell.IsOccupied() || covered[Coord{r, c}] {
				continue
			}
			if !words.Contains(cell.text) {
				return fmt.Errorf("%q at %s is not allowed to stand alone", cell.text, ToA1(r, c))
			}
		}
	}

	if stranded := g.Disconnected(); len(stranded) > 0 {
		cited := stranded
		ellipsis := ""
		if len(cited) > maxCitedCells {
			cited = cited[:maxCitedCells]
			ellipsis = ", ..."
		}
		return fmt.Errorf("tiles at %s%s are not connected to a seed", CoordList(cited), ellipsis)
	}

	return nil
}

// Disconnected returns the occupied cells with no path to any seed. The
// traversal walks node cells (real fragments and portal projections) via
// 4-adjacency, and standing on a portal cell additionally reaches every
// other node-bearing member of its group, so portals bridge components
// that never touch. Boards with no seeds skip the check entirely.
func (g *Grid) Disconnected() []Coord {
	var seeds []Coord
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].kind == SeedCell {
				seeds = append(seeds, Coord{r, c})
			}
		}
	}
	if len(seeds) == 0 {
		return nil
	}

	reached := make(map[Coord]bool)
	queue := append([]Coord(nil), seeds...)
	for _, s := range seeds {
		reached[s] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		var adj []Coord
		for _, n := range [4]Coord{
			{cur.Row - 1, cur.Col}, {cur.Row + 1, cur.Col},
			{cur.Row, cur.Col - 1}, {cur.Row, cur.Col + 1},
		} {
			if g.InBounds(n.Row, n.Col) {
				adj = append(adj, n)
			}
		}
		if group := g.cells[cur.Row][cur.Col].portalGroup; group != "" {
			adj = append(adj, g.portalGroups[group]...)
		}
		for _, n := range adj {
			if !reached[n] && g.IsNode(n.Row, n.Col) {
				reached[n] = true
				queue = append(queue, n)
			}
		}
	}

	// Only real tiles are worth reporting; an unreached projection is
	// always in the same group as an unreached real tile.
	var stranded []Coord
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].IsOccupied() && !reached[Coord{r, c}] {
				stranded = append(stranded, Coord{r, c})
			}
		}
	}
	return stranded
}
