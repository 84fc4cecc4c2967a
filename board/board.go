// Package board implements the puzzle grid: fragment-bearing cells,
// blocked and portal specials, run extraction, and whole-board validity.
// Fragments occupy exactly one cell each, no matter how many letters they
// carry, so a three-cell run can easily read as a six-letter word.
package board

// A SpecialType marks a cell as something other than a plain square.
type SpecialType uint8

const (
	SpecialNone SpecialType = iota
	// SpecialBlocked cells never hold a fragment.
	SpecialBlocked
	// SpecialPortal cells belong to a named group; one occupied member
	// projects its text onto the empty members of the same group.
	SpecialPortal
)

// A CellKind says what kind of occupant a cell has. Carrying this
// explicitly is much cheaper than re-deriving it from id patterns and the
// staged-action list on every query.
type CellKind uint8

const (
	EmptyCell CellKind = iota
	// SeedCell holds an immutable pre-placed fragment.
	SeedCell
	// StagedCell holds a tentatively placed, not yet committed fragment.
	StagedCell
	// CommittedCell holds a permanently placed fragment.
	CommittedCell
)

// A Coord is a 0-indexed (row, col) grid position.
type Coord struct {
	Row, Col int
}

// A Cell is a single square of the grid.
type Cell struct {
	text        string
	tileID      string
	kind        CellKind
	special     SpecialType
	portalGroup string
}

// Text returns the fragment occupying the cell, or "" if empty. Portal
// projections are not real occupants; see Grid.ProjectedText.
func (c *Cell) Text() string { return c.text }

// TileID returns the id of the occupying tile, or "".
func (c *Cell) TileID() string { return c.tileID }

func (c *Cell) Kind() CellKind { return c.kind }

func (c *Cell) Special() SpecialType { return c.special }

// PortalGroup returns the portal group id, or "" for non-portal cells.
func (c *Cell) PortalGroup() string { return c.portalGroup }

// IsOccupied reports whether a real fragment sits on the cell.
func (c *Cell) IsOccupied() bool { return c.text != "" }

// A Grid is the rows × cols matrix of cells for one level session, plus
// the portal topology and the goal coordinate. It holds no pool or turn
// state; that lives in the game package.
type Grid struct {
	rows, cols   int
	cells        [][]Cell
	portalGroups map[string][]Coord
	goal         Coord
}

// NewGrid allocates an empty grid with the given goal cell.
func NewGrid(rows, cols int, goal Coord) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{
		rows:         rows,
		cols:         cols,
		cells:        cells,
		portalGroups: make(map[string][]Coord),
		goal:         goal,
	}
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Goal() Coord { return g.goal }

// Cell returns the cell at the given position. The caller must ensure the
// position is in bounds.
func (g *Grid) Cell(row, col int) *Cell {
	return &g.cells[row][col]
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Fits reports whether a tile can geometrically sit at the given position.
// Tiles occupy exactly one cell, so this is the same as InBounds; it
// exists so callers express intent ("does the tile fit here") rather than
// geometry.
func (g *Grid) Fits(row, col int) bool {
	return g.InBounds(row, col)
}

// TouchesExisting reports whether the cell or any 4-neighbor holds a real
// fragment. This is an adjacency heuristic for hosts that want to hint at
// sensible drop targets; the commit path does not gate on it.
func (g *Grid) TouchesExisting(row, col int) bool {
	if g.InBounds(row, col) && g.cells[row][col].IsOccupied() {
		return true
	}
	for _, n := range [4]Coord{{row - 1, col}, {row + 1, col}, {row, col - 1}, {row, col + 1}} {
		if g.InBounds(n.Row, n.Col) && g.cells[n.Row][n.Col].IsOccupied() {
			return true
		}
	}
	return false
}

// MarkBlocked flags a cell as blocked. Blocked cells never hold text; the
// level loader guarantees blocked specials do not overlap seeds or goal.
func (g *Grid) MarkBlocked(row, col int) {
	g.cells[row][col].special = SpecialBlocked
}

// AddPortal registers a cell as a member of the named portal group, in
// both the per-cell map and the per-group member list.
func (g *Grid) AddPortal(row, col int, group string) {
	g.cells[row][col].special = SpecialPortal
	g.cells[row][col].portalGroup = group
	g.portalGroups[group] = append(g.portalGroups[group], Coord{row, col})
}

// PortalMembers returns the member coordinates of a portal group.
func (g *Grid) PortalMembers(group string) []Coord {
	return g.portalGroups[group]
}

// PlaceFragment writes an occupant into a cell, preserving any special
// flag already there. Callers are responsible for legality checks.
func (g *Grid) PlaceFragment(row, col int, text, tileID string, kind CellKind) {
	c := &g.cells[row][col]
	c.text = text
	c.tileID = tileID
	c.kind = kind
}

// RemoveFragment clears the cell currently occupied by the given tile id.
// It is a no-op if no cell holds that exact id, which guards against stale
// references. Returns whether anything was removed.
func (g *Grid) RemoveFragment(tileID string) bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := &g.cells[r][c]
			if cell.tileID == tileID && cell.text != "" {
				cell.text = ""
				cell.tileID = ""
				cell.kind = EmptyCell
				return true
			}
		}
	}
	return false
}

// SetKind retags the occupant kind of a cell, e.g. staged → committed.
func (g *Grid) SetKind(row, col int, kind CellKind) {
	g.cells[row][col].kind = kind
}

// ProjectedText returns the text a portal cell currently projects: the
// fragment of the first occupied member elsewhere in its group. A cell
// with a real occupant projects nothing; real text takes precedence. The
// overlay is recomputed on every call on purpose: groups are tiny and a
// cache here would need invalidation on every board mutation.
func (g *Grid) ProjectedText(row, col int) string {
	c := &g.cells[row][col]
	if c.special != SpecialPortal || c.text != "" {
		return ""
	}
	for _, m := range g.portalGroups[c.portalGroup] {
		if m.Row == row && m.Col == col {
			continue
		}
		if t := g.cells[m.Row][m.Col].text; t != "" {
			return t
		}
	}
	return ""
}

// EffectiveText is the text a cell contributes to runs: its real fragment
// if occupied, otherwise its portal projection, otherwise "".
func (g *Grid) EffectiveText(row, col int) string {
	if t := g.cells[row][col].text; t != "" {
		return t
	}
	return g.ProjectedText(row, col)
}

// IsNode reports whether a cell participates in words and connectivity:
// it holds a real fragment or exhibits a portal projection.
func (g *Grid) IsNode(row, col int) bool {
	return g.EffectiveText(row, col) != ""
}
