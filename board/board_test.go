package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestGeometry(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 5, Coord{Row: 1, Col: 4})

	is.True(g.InBounds(0, 0))
	is.True(g.InBounds(2, 4))
	is.True(!g.InBounds(3, 0))
	is.True(!g.InBounds(0, 5))
	is.True(!g.InBounds(-1, 0))
	is.Equal(g.Fits(2, 4), true)

	g.PlaceFragment(1, 1, "ca", "t1", CommittedCell)
	is.True(g.TouchesExisting(1, 1)) // the cell itself
	is.True(g.TouchesExisting(0, 1))
	is.True(g.TouchesExisting(1, 2))
	is.True(!g.TouchesExisting(2, 3))
	is.True(!g.TouchesExisting(0, 0)) // diagonal does not count
}

func TestPlaceAndRemoveFragment(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})

	g.PlaceFragment(1, 1, "go", "t1", StagedCell)
	is.Equal(g.Cell(1, 1).Text(), "go")
	is.Equal(g.Cell(1, 1).Kind(), StagedCell)

	// A stale id must not clear the cell.
	is.True(!g.RemoveFragment("t2"))
	is.Equal(g.Cell(1, 1).Text(), "go")

	is.True(g.RemoveFragment("t1"))
	is.Equal(g.Cell(1, 1).Text(), "")
	is.Equal(g.Cell(1, 1).Kind(), EmptyCell)
}

func TestPortalProjection(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.AddPortal(0, 1, "A")
	g.AddPortal(2, 1, "A")

	is.Equal(g.ProjectedText(0, 1), "") // all members empty

	g.PlaceFragment(2, 1, "go", "t1", CommittedCell)
	is.Equal(g.ProjectedText(0, 1), "go")
	is.Equal(g.EffectiveText(0, 1), "go")
	is.True(g.IsNode(0, 1))

	// A real occupant suppresses the cell's own overlay.
	is.Equal(g.ProjectedText(2, 1), "")
	is.Equal(g.EffectiveText(2, 1), "go")

	g.RemoveFragment("t1")
	is.Equal(g.ProjectedText(0, 1), "")
	is.True(!g.IsNode(0, 1))
}

func TestExtractRuns(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.PlaceFragment(1, 0, "ca", "seed-1", SeedCell)
	g.PlaceFragment(1, 1, "t", "t1", StagedCell)

	runs := g.ExtractRuns()
	is.Equal(len(runs), 1)
	is.Equal(runs[0].Text, "cat")
	is.Equal(runs[0].Dir, Horizontal)
	is.Equal(runs[0].Start, Coord{Row: 1, Col: 0})
	is.Equal(len(runs[0].Cells), 2)
}

func TestExtractRunsEmitsSingletons(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.PlaceFragment(0, 0, "go", "t1", CommittedCell)
	g.PlaceFragment(2, 2, "zo", "t2", CommittedCell)

	runs := g.ExtractRuns()
	// Two isolated tiles: one length-1 run each, not one per direction.
	is.Equal(len(runs), 2)
	for _, run := range runs {
		is.Equal(len(run.Cells), 1)
	}
}

func TestExtractRunsDeterministic(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.AddPortal(0, 2, "A")
	g.AddPortal(2, 2, "A")
	g.PlaceFragment(1, 0, "ca", "seed-1", SeedCell)
	g.PlaceFragment(1, 1, "t", "t1", CommittedCell)
	g.PlaceFragment(2, 2, "go", "t2", CommittedCell)

	first := g.ExtractRuns()
	second := g.ExtractRuns()
	is.Equal(first, second)
}

func TestExtractRunsThroughPortal(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.AddPortal(0, 1, "A")
	g.AddPortal(2, 1, "A")
	g.PlaceFragment(0, 0, "ne", "t1", CommittedCell)
	g.PlaceFragment(2, 1, "go", "t2", CommittedCell)

	runs := g.ExtractRuns()
	var texts []string
	for _, run := range runs {
		texts = append(texts, run.Text)
	}
	// Row 0 reads "ne" + the projected "go"; the projecting tile also
	// stands alone at (2,1).
	is.Equal(texts, []string{"nego", "go"})
}

func TestRunContainsPlacementViaPortal(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{})
	g.AddPortal(0, 1, "A")
	g.AddPortal(2, 1, "A")
	g.PlaceFragment(0, 0, "ne", "t1", CommittedCell)
	g.PlaceFragment(2, 1, "go", "t2", StagedCell)

	runs := g.ExtractRuns()
	is.Equal(runs[0].Text, "nego")
	// (2,1) is outside the run's span but aliased into it by the portal.
	is.True(g.RunContainsPlacement(runs[0], 2, 1))
	is.True(!g.RunContainsPlacement(runs[0], 2, 0))
}

func TestCoversGoal(t *testing.T) {
	is := is.New(t)
	g := NewGrid(3, 3, Coord{Row: 1, Col: 1})
	is.True(!g.CoversGoal())

	g.PlaceFragment(1, 0, "ca", "seed-1", SeedCell)
	is.True(!g.CoversGoal())

	g.PlaceFragment(1, 1, "t", "t1", CommittedCell)
	is.True(g.CoversGoal())
}
