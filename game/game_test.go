package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/mariogerardi/wordgrid/board"
	"github.com/mariogerardi/wordgrid/level"
)

// catLevel is the canonical tiny fixture: a seed "CA" with the goal right
// where the T lands.
func catLevel() *level.Level {
	return &level.Level{
		Name: "cat", Rows: 3, Cols: 3, Par: 1,
		Goal:         level.Coord{Row: 1, Col: 1},
		Seeds:        []level.Seed{{Text: "ca", Row: 1, Col: 0}},
		Deck:         []string{"t", "s"},
		AllowedWords: []string{"ca", "t", "cat", "cats"},
	}
}

// openLevel has no seeds, so everything connects, and every fragment is a
// word on its own.
func openLevel() *level.Level {
	return &level.Level{
		Name: "open", Rows: 3, Cols: 3, Par: 5,
		Goal:         level.Coord{Row: 2, Col: 2},
		Deck:         []string{"a", "b", "c", "d", "e", "f"},
		AllowedWords: []string{"a", "b", "c", "d", "e", "f", "ab", "ba"},
	}
}

func TestNewSessionDeals(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(openLevel())
	is.NoErr(err)

	is.Equal(len(s.Hand()), 4)
	is.Equal(s.DeckSize(), 2)
	is.Equal(len(s.Reserve()), 0)
	is.Equal(s.Turn(), 1)
	is.Equal(s.UsedTurns(), 0)
	is.True(!s.Won())

	hand := s.Hand()
	is.Equal(hand[0].Text, "a")
	is.Equal(hand[0].ID, "t1")
}

func TestNewSessionShortDeck(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(catLevel())
	is.NoErr(err)

	// Deck smaller than the hand limit: deal what there is.
	is.Equal(len(s.Hand()), 2)
	is.Equal(s.DeckSize(), 0)
}

func TestNewSessionPlacesSeeds(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(catLevel())
	is.NoErr(err)

	tile, kind, ok := s.TileAt(1, 0)
	is.True(ok)
	is.Equal(tile.Text, "ca")
	is.Equal(kind, board.SeedCell)

	// Seeds never appear in the ledger, so they can never be recalled.
	_, committed := s.Committed(tile.ID)
	is.True(!committed)
	is.True(s.StageRecall(tile.ID) != nil)
}

func TestStartingHandPullsExactFragments(t *testing.T) {
	is := is.New(t)
	lvl := openLevel()
	lvl.StartingHand = []string{"d", "f"}
	s, err := NewSession(lvl)
	is.NoErr(err)

	hand := s.Hand()
	is.Equal(len(hand), 4)
	is.Equal(hand[0].Text, "d")
	is.Equal(hand[1].Text, "f")
	// The rest of the hand fills from the front of the deck.
	is.Equal(hand[2].Text, "a")
	is.Equal(hand[3].Text, "b")
}

func TestStartingHandMissingFragmentIsNonFatal(t *testing.T) {
	is := is.New(t)
	lvl := openLevel()
	lvl.StartingHand = []string{"zz"}
	s, err := NewSession(lvl)
	is.NoErr(err)
	is.Equal(len(s.Hand()), 4)
}

func TestTileForSelector(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(openLevel())
	is.NoErr(err)

	byID, ok := s.TileFor("t2")
	is.True(ok)
	is.Equal(byID.Text, "b")

	byText, ok := s.TileFor("c")
	is.True(ok)
	is.Equal(byText.ID, "t3")

	_, ok = s.TileFor("nope")
	is.True(!ok)
}
