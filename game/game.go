// Package game encapsulates one puzzle session: the grid, the tile pools,
// the committed-tile ledger, and the turn state machine that stages,
// commits, and rolls back placements and recalls. A Session is a plain
// value owned by one caller; hosts that want concurrency must serialize
// access themselves.
package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/mariogerardi/wordgrid/board"
	"github.com/mariogerardi/wordgrid/level"
	"github.com/mariogerardi/wordgrid/lexicon"
)

const (
	// HandLimit is the hand pool capacity; the deal tops the hand back up
	// to this after every successful placement commit.
	HandLimit = 4
	// ReserveLimit caps the reserve pool. It is enforced at commit time,
	// not at recall-staging time.
	ReserveLimit = 2
)

// seedIDPrefix is the reserved id pattern for seed pseudo-tiles. Seeds
// never enter a pool, the ledger, or a staged action; cell kinds carry
// the authoritative tag.
const seedIDPrefix = "seed-"

// A Pool names a tile's off-board location.
type Pool uint8

const (
	PoolNone Pool = iota
	PoolDeck
	PoolHand
	PoolReserve
)

func (p Pool) String() string {
	switch p {
	case PoolDeck:
		return "deck"
	case PoolHand:
		return "hand"
	case PoolReserve:
		return "reserve"
	}
	return "none"
}

// A Tile is an identity plus its immutable fragment text (lowercase).
type Tile struct {
	ID   string
	Text string
}

// A PlacedTile is a ledger entry for a committed tile.
type PlacedTile struct {
	Text string
	Row  int
	Col  int
}

type actionKind uint8

const (
	actionPlace actionKind = iota
	actionRecall
)

// A stagedAction records one tentative change this turn: a placement with
// its origin pool, or a recall holding the full snapshot needed to restore
// the tile on cancel or rollback.
type stagedAction struct {
	kind   actionKind
	tile   Tile
	row    int
	col    int
	origin Pool
}

// A Session is the single source of truth for one level in play.
type Session struct {
	level *level.Level
	board *board.Grid
	words *lexicon.Allowlist

	deck    []Tile
	hand    []Tile
	reserve []Tile

	committed map[string]PlacedTile
	staged    []stagedAction

	// turn is the upcoming turn number; it starts at 1 and advances only
	// on successful commits. Used turns for scoring is turn-1.
	turn int
	won  bool
}

// NewSession initializes a session from an already-validated level: seeds
// are placed first, then specials applied, then the starting hand pulled,
// then the hand dealt up to its limit.
func NewSession(lvl *level.Level) (*Session, error) {
	s := &Session{
		level:     lvl,
		board:     board.NewGrid(lvl.Rows, lvl.Cols, board.Coord{Row: lvl.Goal.Row, Col: lvl.Goal.Col}),
		words:     lexicon.NewAllowlist(lvl.AllowedWords),
		committed: make(map[string]PlacedTile),
		turn:      1,
	}

	for i, seed := range lvl.Seeds {
		id := fmt.Sprintf("%s%d", seedIDPrefix, i+1)
		s.board.PlaceFragment(seed.Row, seed.Col, seed.Text, id, board.SeedCell)
	}
	for _, sp := range lvl.Specials {
		switch sp.Type {
		case level.TypeBlocked:
			s.board.MarkBlocked(sp.Row, sp.Col)
		case level.TypePortal:
			s.board.AddPortal(sp.Row, sp.Col, sp.Group)
		}
	}

	s.deck = make([]Tile, len(lvl.Deck))
	for i, frag := range lvl.Deck {
		s.deck[i] = Tile{ID: fmt.Sprintf("t%d", i+1), Text: frag}
	}
	if lvl.Shuffle {
		frand.Shuffle(len(s.deck), func(i, j int) {
			s.deck[i], s.deck[j] = s.deck[j], s.deck[i]
		})
	}

	for _, frag := range lvl.StartingHand {
		if !s.pullFromDeck(frag) {
			// Authoring slip, not a runtime failure: the level still
			// loads, the hand just fills from the deck instead.
			log.Warn().Str("level", lvl.Name).Str("fragment", frag).
				Msg("starting-hand fragment not found in deck")
		}
	}
	s.deal()

	log.Debug().Str("level", lvl.Name).Int("deck", len(s.deck)).
		Int("hand", len(s.hand)).Msg("session started")
	return s, nil
}

// pullFromDeck moves the first deck tile with the given text into the
// hand. Returns false if no deck tile matches.
func (s *Session) pullFromDeck(text string) bool {
	for i, t := range s.deck {
		if t.Text == text {
			s.hand = append(s.hand, t)
			s.deck = append(s.deck[:i], s.deck[i+1:]...)
			return true
		}
	}
	return false
}

// deal tops the hand up to HandLimit from the front of the deck.
func (s *Session) deal() {
	for len(s.hand) < HandLimit && len(s.deck) > 0 {
		s.hand = append(s.hand, s.deck[0])
		s.deck = s.deck[1:]
	}
}

// Board exposes the grid for rendering and read-only queries. Hosts must
// not mutate it directly; gating logic lives entirely in this package.
func (s *Session) Board() *board.Grid { return s.board }

// Words exposes the level's allowlist.
func (s *Session) Words() *lexicon.Allowlist { return s.words }

func (s *Session) Level() *level.Level { return s.level }

// Turn is the upcoming turn number, starting at 1.
func (s *Session) Turn() int { return s.turn }

// UsedTurns is the number of successfully committed turns.
func (s *Session) UsedTurns() int { return s.turn - 1 }

// Won reports whether a committed board has covered the goal. It latches:
// once won, always won.
func (s *Session) Won() bool { return s.won }

// Hand returns a copy of the hand pool.
func (s *Session) Hand() []Tile { return append([]Tile(nil), s.hand...) }

// Reserve returns a copy of the reserve pool.
func (s *Session) Reserve() []Tile { return append([]Tile(nil), s.reserve...) }

func (s *Session) DeckSize() int { return len(s.deck) }

// Committed returns the ledger entry for a tile id, if present.
func (s *Session) Committed(tileID string) (PlacedTile, bool) {
	pt, ok := s.committed[tileID]
	return pt, ok
}

// StagedCount returns how many actions are staged this turn.
func (s *Session) StagedCount() int { return len(s.staged) }

func (s *Session) stagedPlacements() []*stagedAction {
	var out []*stagedAction
	for i := range s.staged {
		if s.staged[i].kind == actionPlace {
			out = append(out, &s.staged[i])
		}
	}
	return out
}

func (s *Session) stagedRecalls() []*stagedAction {
	var out []*stagedAction
	for i := range s.staged {
		if s.staged[i].kind == actionRecall {
			out = append(out, &s.staged[i])
		}
	}
	return out
}

// TileFor resolves a shell-style tile selector: an exact id in the hand or
// reserve, or the first pool tile whose text matches.
func (s *Session) TileFor(selector string) (Tile, bool) {
	for _, pool := range [][]Tile{s.hand, s.reserve} {
		for _, t := range pool {
			if t.ID == selector {
				return t, true
			}
		}
	}
	for _, pool := range [][]Tile{s.hand, s.reserve} {
		for _, t := range pool {
			if t.Text == selector {
				return t, true
			}
		}
	}
	return Tile{}, false
}

// TileAt returns the tile occupying a cell, with its kind.
func (s *Session) TileAt(row, col int) (Tile, board.CellKind, bool) {
	if !s.board.InBounds(row, col) {
		return Tile{}, board.EmptyCell, false
	}
	cell := s.board.Cell(row, col)
	if !cell.IsOccupied() {
		return Tile{}, board.EmptyCell, false
	}
	return Tile{ID: cell.TileID(), Text: cell.Text()}, cell.Kind(), true
}

// StagedRecallAt finds a staged recall by the recalled tile's original
// cell.
func (s *Session) StagedRecallAt(row, col int) (Tile, bool) {
	for _, a := range s.stagedRecalls() {
		if a.row == row && a.col == col {
			return a.tile, true
		}
	}
	return Tile{}, false
}
