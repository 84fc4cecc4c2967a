// Package shell is an interactive readline harness for playing levels. It
// only ever calls the game package's public operations and re-reads state
// to redraw; every rule lives in the core.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/mariogerardi/wordgrid/board"
	"github.com/mariogerardi/wordgrid/config"
	"github.com/mariogerardi/wordgrid/game"
	"github.com/mariogerardi/wordgrid/level"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	sess    *game.Session
	curPath string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mwordgrid>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stdout(), msg)
	io.WriteString(sc.l.Stdout(), "\n")
}

func (sc *ShellController) showError(err error) {
	io.WriteString(sc.l.Stderr(), "Error: "+err.Error()+"\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <path/to/level.yaml> - start a level\n")
	io.WriteString(w, "levels - list levels in the configured level directory\n")
	io.WriteString(w, "show (or s) - redraw the board and pools\n")
	io.WriteString(w, "runs - list the words currently read off the board\n")
	io.WriteString(w, "place <tile> <coord> - stage a hand/reserve tile, e.g. place go B2\n")
	io.WriteString(w, "move <tile> <coord> - move a staged tile\n")
	io.WriteString(w, "return <coord> - put a staged tile back in your hand\n")
	io.WriteString(w, "recall <coord> - stage the recall of a committed tile\n")
	io.WriteString(w, "cancel <coord> - cancel a staged recall\n")
	io.WriteString(w, "commit - submit the staged turn\n")
	io.WriteString(w, "rollback - undo everything staged this turn\n")
	io.WriteString(w, "restart - reload the current level from scratch\n")
	io.WriteString(w, "exit - leave the shell\n")
}

func (sc *ShellController) loadLevel(path string) error {
	lvl, err := level.Cached(path)
	if err != nil {
		return err
	}
	sess, err := game.NewSession(lvl)
	if err != nil {
		return err
	}
	sc.sess = sess
	sc.curPath = path
	return nil
}

func (sc *ShellController) statusText() string {
	s := sc.sess
	var sb strings.Builder
	sb.WriteString(s.Board().ToDisplayText())
	sb.WriteString("hand:    " + poolText(s.Hand()) + "\n")
	sb.WriteString("reserve: " + poolText(s.Reserve()) + "\n")
	sb.WriteString(fmt.Sprintf("deck: %d tiles   turn: %d   par: %d\n",
		s.DeckSize(), s.Turn(), s.Level().Par))
	if s.Won() {
		sb.WriteString(fmt.Sprintf("*** solved in %d turns ***\n", s.UsedTurns()))
	}
	return sb.String()
}

func poolText(tiles []game.Tile) string {
	if len(tiles) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = fmt.Sprintf("%s(%s)", strings.ToUpper(t.Text), t.ID)
	}
	return strings.Join(parts, " ")
}

func (sc *ShellController) requireSession() error {
	if sc.sess == nil {
		return errors.New("please load a level first with the `load` command")
	}
	return nil
}

// coordArg parses an A1-style argument.
func coordArg(arg string) (int, int, error) {
	return board.FromA1(arg)
}

func (sc *ShellController) executeLine(line string, sig chan os.Signal) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "load":
		if len(args) != 1 {
			sc.showError(errors.New("usage: load <path>"))
			break
		}
		if err := sc.loadLevel(args[0]); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "restart":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if err := sc.loadLevel(sc.curPath); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "levels":
		levels, err := level.LoadDir(sc.cfg.LevelDirectory)
		if err != nil {
			sc.showError(err)
			break
		}
		for _, lvl := range levels {
			sc.showMessage(fmt.Sprintf("%-20s %dx%d  par %d", lvl.Name, lvl.Rows, lvl.Cols, lvl.Par))
		}

	case "show", "s":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "runs":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		for _, run := range sc.sess.Board().ExtractRuns() {
			sc.showMessage(fmt.Sprintf("%-12s %s from %s (%d cells)",
				strings.ToUpper(run.Text), run.Dir, board.ToA1(run.Start.Row, run.Start.Col), len(run.Cells)))
		}

	case "place", "move":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if len(args) != 2 {
			sc.showError(fmt.Errorf("usage: %s <tile> <coord>", cmd))
			break
		}
		row, col, err := coordArg(args[1])
		if err != nil {
			sc.showError(err)
			break
		}
		if cmd == "place" {
			tile, ok := sc.sess.TileFor(args[0])
			if !ok {
				sc.showError(fmt.Errorf("no tile %q in your hand or reserve", args[0]))
				break
			}
			err = sc.sess.StagePlace(tile.ID, row, col)
		} else {
			err = sc.sess.MoveStaged(args[0], row, col)
		}
		if err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "return":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if len(args) != 1 {
			sc.showError(errors.New("usage: return <coord>"))
			break
		}
		row, col, err := coordArg(args[0])
		if err != nil {
			sc.showError(err)
			break
		}
		if err := sc.sess.ReturnStaged(row, col, game.PoolHand); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "recall":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if len(args) != 1 {
			sc.showError(errors.New("usage: recall <coord>"))
			break
		}
		row, col, err := coordArg(args[0])
		if err != nil {
			sc.showError(err)
			break
		}
		tile, kind, ok := sc.sess.TileAt(row, col)
		if !ok || kind != board.CommittedCell {
			sc.showError(fmt.Errorf("no committed tile at %s", board.ToA1(row, col)))
			break
		}
		if err := sc.sess.StageRecall(tile.ID); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "cancel":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if len(args) != 1 {
			sc.showError(errors.New("usage: cancel <coord>"))
			break
		}
		row, col, err := coordArg(args[0])
		if err != nil {
			sc.showError(err)
			break
		}
		tile, ok := sc.sess.StagedRecallAt(row, col)
		if !ok {
			sc.showError(fmt.Errorf("no staged recall at %s", board.ToA1(row, col)))
			break
		}
		if err := sc.sess.CancelRecall(tile.ID); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "commit", "submit":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		if err := sc.sess.Commit(); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage(sc.statusText())

	case "rollback", "reset":
		if err := sc.requireSession(); err != nil {
			sc.showError(err)
			break
		}
		sc.sess.Rollback()
		sc.showMessage(sc.statusText())

	case "help":
		usage(sc.l.Stderr())

	case "bye", "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	default:
		log.Debug().Str("line", line).Msg("unrecognized command")
		sc.showError(fmt.Errorf("unrecognized command %q; try `help`", cmd))
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.executeLine(line, sig); err != nil {
			break
		}
	}
	log.Debug().Msg("exiting readline loop...")
}
