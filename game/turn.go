package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mariogerardi/wordgrid/board"
)

// Staging operations. A turn's staged actions are either all placements or
// all recalls; every operation here rejects a would-be mix before touching
// any state.

// StagePlace tentatively places a hand or reserve tile at (row, col). All
// placements of one turn must line up on a single row or column.
func (s *Session) StagePlace(tileID string, row, col int) error {
	if len(s.stagedRecalls()) > 0 {
		return errors.New("cannot place while a recall is staged; cancel it or submit first")
	}
	tile, origin, err := s.poolTile(tileID)
	if err != nil {
		return err
	}
	if err := s.targetCellErr(row, col); err != nil {
		return err
	}
	if err := s.axisErr(row, col, ""); err != nil {
		return err
	}

	s.board.PlaceFragment(row, col, tile.Text, tile.ID, board.StagedCell)
	s.removeFromPool(tile.ID, origin)
	s.staged = append(s.staged, stagedAction{
		kind: actionPlace, tile: tile, row: row, col: col, origin: origin,
	})
	log.Debug().Str("tile", tile.ID).Str("cell", board.ToA1(row, col)).Msg("staged placement")
	return nil
}

// MoveStaged moves an already-staged placement to another cell, under the
// same target and axis rules, with the axis computed from the other staged
// placements.
func (s *Session) MoveStaged(tileID string, row, col int) error {
	var act *stagedAction
	for i := range s.staged {
		if s.staged[i].kind == actionPlace && s.staged[i].tile.ID == tileID {
			act = &s.staged[i]
			break
		}
	}
	if act == nil {
		return fmt.Errorf("tile %s is not staged on the board", tileID)
	}
	if act.row == row && act.col == col {
		return nil
	}
	if err := s.targetCellErr(row, col); err != nil {
		return err
	}
	if err := s.axisErr(row, col, tileID); err != nil {
		return err
	}

	s.board.RemoveFragment(tileID)
	s.board.PlaceFragment(row, col, act.tile.Text, act.tile.ID, board.StagedCell)
	act.row, act.col = row, col
	return nil
}

// ReturnStaged takes the staged tile at (row, col) off the board and back
// into the named pool. Only the hand accepts returns, and only while it
// has room; the reserve is fed exclusively by recalls, so a reserve-origin
// tile with a full hand must be restored via Rollback.
func (s *Session) ReturnStaged(row, col int, pool Pool) error {
	if pool != PoolHand {
		return errors.New("staged tiles can only be returned to your hand")
	}
	idx := -1
	for i := range s.staged {
		if s.staged[i].kind == actionPlace && s.staged[i].row == row && s.staged[i].col == col {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no staged tile at %s", board.ToA1(row, col))
	}
	if len(s.hand) >= HandLimit {
		return fmt.Errorf("your hand is full (%d tile limit); rollback to restore the tile instead", HandLimit)
	}
	tile := s.staged[idx].tile
	s.board.RemoveFragment(tile.ID)
	s.staged = append(s.staged[:idx], s.staged[idx+1:]...)
	s.hand = append(s.hand, tile)
	return nil
}

// StageRecall lifts a committed tile off the grid and stages its return to
// the reserve. The cell goes vacant immediately; the ledger entry stays
// until commit, and the reserve capacity is checked only then.
func (s *Session) StageRecall(tileID string) error {
	if len(s.stagedPlacements()) > 0 {
		return errors.New("cannot recall while placements are staged; return them or submit first")
	}
	for _, a := range s.stagedRecalls() {
		if a.tile.ID == tileID {
			return fmt.Errorf("tile %s is already staged for recall", tileID)
		}
	}
	pt, ok := s.committed[tileID]
	if !ok {
		return fmt.Errorf("tile %s is not a committed tile", tileID)
	}

	s.board.RemoveFragment(tileID)
	s.staged = append(s.staged, stagedAction{
		kind: actionRecall,
		tile: Tile{ID: tileID, Text: pt.Text},
		row:  pt.Row, col: pt.Col,
	})
	log.Debug().Str("tile", tileID).Str("cell", board.ToA1(pt.Row, pt.Col)).Msg("staged recall")
	return nil
}

// CancelRecall puts a staged recall's tile back on its original cell. The
// tile never left the ledger, so it simply becomes the occupant again.
func (s *Session) CancelRecall(tileID string) error {
	for i := range s.staged {
		a := &s.staged[i]
		if a.kind == actionRecall && a.tile.ID == tileID {
			s.board.PlaceFragment(a.row, a.col, a.tile.Text, a.tile.ID, board.CommittedCell)
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("tile %s is not staged for recall", tileID)
}

// poolTile finds a tile in the hand or reserve.
func (s *Session) poolTile(tileID string) (Tile, Pool, error) {
	for _, t := range s.hand {
		if t.ID == tileID {
			return t, PoolHand, nil
		}
	}
	for _, t := range s.reserve {
		if t.ID == tileID {
			return t, PoolReserve, nil
		}
	}
	return Tile{}, PoolNone, fmt.Errorf("tile %s is not in your hand or reserve", tileID)
}

func (s *Session) removeFromPool(tileID string, pool Pool) {
	target := &s.hand
	if pool == PoolReserve {
		target = &s.reserve
	}
	for i, t := range *target {
		if t.ID == tileID {
			*target = append((*target)[:i], (*target)[i+1:]...)
			return
		}
	}
}

// targetCellErr checks the legality of a placement target.
func (s *Session) targetCellErr(row, col int) error {
	if !s.board.Fits(row, col) {
		return fmt.Errorf("cell (%d,%d) is out of bounds", row, col)
	}
	cell := s.board.Cell(row, col)
	if cell.Special() == board.SpecialBlocked {
		return fmt.Errorf("cell %s is blocked", board.ToA1(row, col))
	}
	if cell.IsOccupied() {
		return fmt.Errorf("cell %s is already occupied", board.ToA1(row, col))
	}
	if s.board.ProjectedText(row, col) != "" {
		return fmt.Errorf("cell %s is showing a portal projection", board.ToA1(row, col))
	}
	return nil
}

// axisErr enforces the single-row-or-column rule against the staged
// placements, excluding the tile being moved (if any).
func (s *Session) axisErr(row, col int, excludeTileID string) error {
	var coords []board.Coord
	for _, a := range s.stagedPlacements() {
		if a.tile.ID == excludeTileID {
			continue
		}
		coords = append(coords, board.Coord{Row: a.row, Col: a.col})
	}
	switch len(coords) {
	case 0:
		return nil
	case 1:
		if row == coords[0].Row || col == coords[0].Col {
			return nil
		}
		return fmt.Errorf("placement must share a row or column with the tile at %s",
			board.ToA1(coords[0].Row, coords[0].Col))
	}

	sameRow := true
	for _, c := range coords[1:] {
		if c.Row != coords[0].Row {
			sameRow = false
			break
		}
	}
	if sameRow {
		if row == coords[0].Row {
			return nil
		}
		return fmt.Errorf("this turn's placements are locked to row %d", coords[0].Row+1)
	}
	if col == coords[0].Col {
		return nil
	}
	colA1 := board.ToA1(0, coords[0].Col)
	return fmt.Errorf("this turn's placements are locked to column %s", colA1[:len(colA1)-1])
}
