package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mariogerardi/wordgrid/board"
)

// Commit atomically applies this turn's staged actions. On success the
// turn counter advances and the staged list clears; on failure placements
// stay staged for correction, while a failed recall commit rolls the whole
// turn back so the player is never stranded in a half-broken state.
func (s *Session) Commit() error {
	places := s.stagedPlacements()
	recalls := s.stagedRecalls()

	if len(places) == 0 && len(recalls) == 0 {
		return errors.New("nothing to submit")
	}
	// Structurally impossible given the staging guards, but re-checked so
	// a future staging bug cannot corrupt a commit.
	if len(places) > 0 && len(recalls) > 0 {
		return errors.New("a turn may place or recall, not both")
	}

	if len(places) > 0 {
		return s.commitPlacements(places)
	}
	return s.commitRecalls(recalls)
}

func (s *Session) commitPlacements(places []*stagedAction) error {
	runs := s.board.ExtractRuns()

	// Carrier runs: multi-cell runs whose span contains every staged
	// placement, where a placement on a portal cell also counts when its
	// group reaches into the run.
	var carriers []board.Run
	for _, run := range runs {
		if len(run.Cells) < 2 {
			continue
		}
		all := true
		for _, p := range places {
			if !s.board.RunContainsPlacement(run, p.row, p.col) {
				all = false
				break
			}
		}
		if all {
			carriers = append(carriers, run)
		}
	}

	if len(places) == 1 {
		p := places[0]
		if len(carriers) > 0 {
			for _, run := range carriers {
				if !s.words.Contains(run.Text) {
					return fmt.Errorf("%q is not an allowed word (%s)",
						run.Text, board.CoordList(run.Cells))
				}
			}
		} else if !s.words.Contains(p.tile.Text) {
			return fmt.Errorf("%q at %s is not an allowed word on its own",
				p.tile.Text, board.ToA1(p.row, p.col))
		}
	} else {
		if len(carriers) != 1 {
			return errors.New("placements must form one continuous word")
		}
		if !s.words.Contains(carriers[0].Text) {
			return fmt.Errorf("%q is not an allowed word (%s)",
				carriers[0].Text, board.CoordList(carriers[0].Cells))
		}
	}

	if err := s.board.Validate(s.words); err != nil {
		return err
	}

	for _, p := range places {
		s.committed[p.tile.ID] = PlacedTile{Text: p.tile.Text, Row: p.row, Col: p.col}
		s.board.SetKind(p.row, p.col, board.CommittedCell)
	}
	s.staged = nil
	s.turn++
	s.deal()
	if s.board.CoversGoal() {
		s.won = true
	}
	log.Debug().Int("turn", s.turn).Bool("won", s.won).Msg("placement commit")
	return nil
}

func (s *Session) commitRecalls(recalls []*stagedAction) error {
	if len(s.reserve)+len(recalls) > ReserveLimit {
		// Leave the player at a clean committed state rather than with a
		// recall they can never submit.
		s.Rollback()
		return fmt.Errorf("reserve is full (%d tile limit); recall undone", ReserveLimit)
	}
	// The cells were vacated at staging time, so the grid already shows
	// the board as it would be after this recall.
	if err := s.board.Validate(s.words); err != nil {
		s.Rollback()
		return fmt.Errorf("recall would break the board (%v); recall undone", err)
	}

	for _, a := range recalls {
		delete(s.committed, a.tile.ID)
		s.reserve = append(s.reserve, a.tile)
	}
	s.staged = nil
	s.turn++
	log.Debug().Int("turn", s.turn).Int("reserve", len(s.reserve)).Msg("recall commit")
	return nil
}

// Rollback undoes every staged action without validity checks: recalled
// tiles go back on their original cells (still committed), placed tiles
// come off the grid and back to their origin pools. It never fails and is
// a no-op on an idle turn.
func (s *Session) Rollback() {
	for i := range s.staged {
		a := &s.staged[i]
		switch a.kind {
		case actionRecall:
			s.board.PlaceFragment(a.row, a.col, a.tile.Text, a.tile.ID, board.CommittedCell)
		case actionPlace:
			s.board.RemoveFragment(a.tile.ID)
			if a.origin == PoolReserve {
				s.reserve = append(s.reserve, a.tile)
			} else {
				s.hand = append(s.hand, a.tile)
			}
		}
	}
	s.staged = nil
}
